// Package session owns one asset's playback lifecycle: the transport and
// buffering state machines, seek arbitration and the scrub protocol. All
// session state is owned by a single run-loop goroutine; public methods post
// commands onto it and engine/resolver callbacks are re-dispatched onto it
// before touching any field. That single-writer rule replaces locks entirely.
package session

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/8secz-johndpope/Community-App-sub000/internal/asset"
	"github.com/8secz-johndpope/Community-App-sub000/internal/engine"
)

// Options configures a session.
type Options struct {
	AutoPlay        bool
	Loop            bool
	FreezeLastFrame bool
	Render          RenderTarget
	Logger          *zerolog.Logger
}

// Snapshot is the read-model published by the run loop after every mutation.
type Snapshot struct {
	Transport     TransportState
	Buffering     BufferingState
	FailureKind   FailureKind
	Position      time.Duration
	Duration      time.Duration
	Buffered      time.Duration
	ItemReady     bool
	Completed     bool
	Scrubbing     bool
	ScrubFraction float64
	PendingSeek   bool
	Title         string
	Artist        string
	Album         string
	SourceURL     string
}

type scrubState struct {
	baseline float64
	fraction float64
	resume   bool
}

// pendingSeekAction tracks an asynchronous engine seek whose completion
// carries a transport side effect. Matched by sequence token at delivery.
type pendingSeekAction struct {
	seq    uint64
	resume bool
}

// Session is a playback session for a single content item.
type Session struct {
	engine   engine.Interface
	resolver asset.Resolver
	opts     Options
	render   RenderTarget
	log      zerolog.Logger

	cmds chan func()
	quit chan struct{}
	wg   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	// Owned by the run loop.
	asset       *asset.Asset
	transport   TransportState
	failureKind FailureKind
	failureErr  error
	buffering   BufferingState
	itemReady   bool
	started     bool
	autoStarted bool
	completed   bool
	position    time.Duration
	duration    time.Duration
	buffered    time.Duration
	pendingSeek *time.Duration
	gen         uint64
	seekSeq     uint64
	scrub       *scrubState
	commit      *pendingSeekAction
	stopSeek    *pendingSeekAction

	subs   []*Subscription
	subsMu sync.Mutex

	snap   Snapshot
	snapMu sync.RWMutex

	closeOnce sync.Once
}

// New creates a session over the given engine and resolver and starts its
// run loop. Call Load to attach a source.
func New(eng engine.Interface, res asset.Resolver, opts Options) *Session {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	render := opts.Render
	if render == nil {
		render = NoSurface{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		engine:   eng,
		resolver: res,
		opts:     opts,
		render:   render,
		log:      log,
		cmds:     make(chan func()),
		quit:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Session) run() {
	defer s.wg.Done()
	events := s.engine.Events()
	for {
		select {
		case <-s.quit:
			return
		case cmd := <-s.cmds:
			cmd()
			s.publish()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.handleEngineEvent(ev)
			s.publish()
		}
	}
}

// do posts a command onto the run loop. Dropped once the session is closed,
// which is how callbacks from a torn-down session die silently.
func (s *Session) do(fn func()) {
	select {
	case s.cmds <- fn:
	case <-s.quit:
	}
}

// Load resolves url and attaches the resulting item. Calling Load again
// supersedes the previous resolution: its terminal callback is dropped by
// generation token, never by luck.
func (s *Session) Load(url string) {
	s.do(func() { s.load(url) })
}

func (s *Session) load(url string) {
	s.gen++
	gen := s.gen
	s.asset = nil
	s.itemReady = false
	s.autoStarted = false
	s.started = false
	s.completed = false
	s.buffering = BufferingUnknown
	s.position = 0
	s.duration = 0
	s.buffered = 0
	s.pendingSeek = nil
	s.scrub = nil
	s.commit = nil
	s.stopSeek = nil
	s.failureKind = FailureNone
	s.failureErr = nil
	s.setTransport(TransportStopped)

	go func() {
		a, err := s.resolver.Resolve(s.ctx, url)
		s.do(func() { s.resolved(gen, a, err) })
	}()
}

func (s *Session) resolved(gen uint64, a asset.Asset, err error) {
	if gen != s.gen {
		// Superseded resolution, dropped silently.
		return
	}
	if err != nil {
		s.fail(classifyResolution(err), err)
		return
	}
	if !a.Playable {
		s.fail(FailureNotPlayable, asset.ErrNotPlayable)
		return
	}
	s.asset = &a
	s.duration = a.Duration
	s.engine.Load(gen, a.SourceURL, a.Duration)
}

func (s *Session) handleEngineEvent(ev engine.Event) {
	if ev.Gen != s.gen {
		// Event for a replaced item.
		return
	}
	switch ev.Kind {
	case engine.ItemReady:
		s.itemBecameReady()
	case engine.BufferEmpty:
		s.setBuffering(BufferingDelayed)
	case engine.BufferLikelyToKeepUp:
		s.setBuffering(BufferingReady)
		s.maybeAutoStart()
	case engine.PositionTick:
		s.position = ev.Position
		s.broadcast(func(sub *Subscription) {
			sub.sendPosition(PositionChange{Position: ev.Position, Duration: s.duration})
		})
	case engine.BufferedRange:
		s.buffered = ev.Buffered
		s.broadcast(func(sub *Subscription) {
			sub.sendBuffered(BufferedRangeChange{Buffered: ev.Buffered})
		})
	case engine.SeekCompleted:
		s.seekCompleted(ev)
	case engine.EndOfMedia:
		s.endOfMedia()
	case engine.Stalled:
		// Surfaced as a rebuffering signal; no transport action.
		s.log.Warn().Str("url", s.sourceURL()).Msg("playback stalled near end of stream")
		s.setBuffering(BufferingDelayed)
	case engine.PlaybackFailed:
		err := ev.Err
		if err == nil {
			err = ErrEnginePlayback
		}
		s.fail(FailureEnginePlayback, err)
	}
}

func (s *Session) itemBecameReady() {
	if s.itemReady {
		return
	}
	s.itemReady = true
	if s.pendingSeek != nil {
		pos := s.clampPos(*s.pendingSeek)
		s.pendingSeek = nil
		s.engine.SeekTo(s.gen, 0, pos)
		s.position = pos
	}
	s.broadcast(func(sub *Subscription) {
		sub.sendReady(ReadyEvent{Duration: s.duration})
	})
	s.maybeAutoStart()
}

// maybeAutoStart begins playback the first time the item is ready and the
// buffer is sufficient. Later buffering fluctuations only drive the spinner.
func (s *Session) maybeAutoStart() {
	if !s.opts.AutoPlay || s.autoStarted || !s.itemReady {
		return
	}
	if s.buffering != BufferingReady || s.transport != TransportStopped {
		return
	}
	s.autoStarted = true
	s.engine.Play()
	s.setTransport(TransportPlaying)
}

// Play starts or resumes playback. From Stopped this is "play from
// beginning"; from Paused it resumes at the current time.
func (s *Session) Play() {
	s.do(s.play)
}

func (s *Session) play() {
	switch s.transport {
	case TransportPlaying, TransportFailed:
		return
	case TransportPaused:
		s.engine.Play()
		s.setTransport(TransportPlaying)
	case TransportStopped:
		if !s.itemReady {
			return
		}
		s.completed = false
		s.engine.SeekTo(s.gen, 0, 0)
		s.position = 0
		s.engine.Play()
		s.setTransport(TransportPlaying)
	}
}

// Pause pauses playback. Lifecycle and interruption handling route through
// here as well, so the FSM has one transition path regardless of trigger.
func (s *Session) Pause() {
	s.do(s.pause)
}

func (s *Session) pause() {
	if s.transport != TransportPlaying {
		return
	}
	s.engine.Pause()
	s.setTransport(TransportPaused)
}

// Stop stops playback and rewinds to zero.
func (s *Session) Stop() {
	s.do(s.stop)
}

func (s *Session) stop() {
	if s.transport == TransportFailed || s.transport == TransportStopped {
		return
	}
	s.engine.Stop()
	s.position = 0
	s.setTransport(TransportStopped)
}

// Seek seeks to an absolute position. Queued until the item is ready and
// consumed exactly once when it becomes so. Negative positions are rejected.
func (s *Session) Seek(to time.Duration) {
	s.do(func() { s.seek(to) })
}

func (s *Session) seek(to time.Duration) {
	if to < 0 || s.transport == TransportFailed {
		return
	}
	if !s.itemReady {
		s.pendingSeek = &to
		return
	}
	s.completed = false
	pos := s.clampPos(to)
	s.engine.SeekTo(s.gen, 0, pos)
	s.position = pos
}

// SeekToFraction seeks to a fraction of the duration. Degenerate fractions
// (NaN, ±Inf) are rejected as no-ops rather than forwarded to the engine.
func (s *Session) SeekToFraction(f float64) {
	if degenerate(f) {
		return
	}
	s.do(func() {
		if s.duration <= 0 {
			return
		}
		s.seek(time.Duration(lo.Clamp(f, 0, 1) * float64(s.duration)))
	})
}

// BeginScrub captures the current progress as the scrub baseline and pauses
// playback for the duration of the gesture.
func (s *Session) BeginScrub() {
	s.do(s.beginScrub)
}

func (s *Session) beginScrub() {
	if s.transport == TransportFailed || !s.itemReady {
		return
	}
	resume := s.transport == TransportPlaying
	if resume {
		s.engine.Pause()
		s.setTransport(TransportPaused)
	}
	frac := s.fraction(s.position)
	s.scrub = &scrubState{baseline: frac, fraction: frac, resume: resume}
	// A live scrub invalidates any in-flight commit: its completion callback
	// must not resume playback after the fact.
	s.commit = nil
}

// UpdateScrub moves the visual progress signal by delta from the baseline.
// No engine seek is issued.
func (s *Session) UpdateScrub(delta float64) {
	if degenerate(delta) {
		return
	}
	s.do(func() { s.updateScrub(delta) })
}

func (s *Session) updateScrub(delta float64) {
	if s.scrub == nil {
		return
	}
	f := lo.Clamp(s.scrub.baseline+delta, 0, 1)
	s.scrub.fraction = f
	s.broadcast(func(sub *Subscription) {
		sub.sendScrub(ScrubMove{Fraction: f})
	})
}

// CommitScrub issues exactly one engine seek to fraction*duration and, once
// that seek lands, resumes playback if the gesture interrupted it.
func (s *Session) CommitScrub(fraction float64) {
	if degenerate(fraction) {
		return
	}
	s.do(func() { s.commitScrub(fraction) })
}

func (s *Session) commitScrub(fraction float64) {
	if s.scrub == nil {
		return
	}
	resume := s.scrub.resume
	s.scrub = nil
	s.completed = false
	f := lo.Clamp(fraction, 0, 1)
	pos := time.Duration(f * float64(s.duration))
	s.seekSeq++
	s.commit = &pendingSeekAction{seq: s.seekSeq, resume: resume}
	s.engine.SeekTo(s.gen, s.seekSeq, pos)
	s.position = pos
}

func (s *Session) seekCompleted(ev engine.Event) {
	if s.stopSeek != nil && ev.Seq == s.stopSeek.seq {
		// Freeze-last-frame rewind landed; now the transition can happen.
		s.stopSeek = nil
		s.position = 0
		s.engine.Stop()
		s.setTransport(TransportStopped)
		return
	}
	if s.commit == nil || ev.Seq != s.commit.seq || s.scrub != nil {
		return
	}
	resume := s.commit.resume
	s.commit = nil
	s.position = ev.Position
	s.broadcast(func(sub *Subscription) {
		sub.sendScrub(ScrubMove{Fraction: s.fraction(ev.Position), Committed: true})
	})
	if resume && s.transport == TransportPaused {
		s.engine.Play()
		s.setTransport(TransportPlaying)
	}
}

func (s *Session) endOfMedia() {
	if s.transport != TransportPlaying {
		return
	}
	if s.opts.Loop {
		s.engine.SeekTo(s.gen, 0, 0)
		s.position = 0
		s.engine.Play()
		return
	}
	// The transport rewinds to zero, but the item was consumed in full; the
	// snapshot keeps that fact so progress saves record completion, not the
	// rewound position.
	s.completed = true
	if s.opts.FreezeLastFrame {
		// Transition to Stopped only after the async rewind completes, so the
		// final frame stays visible in the meantime.
		s.seekSeq++
		s.stopSeek = &pendingSeekAction{seq: s.seekSeq}
		s.engine.SeekTo(s.gen, s.seekSeq, 0)
		return
	}
	s.engine.Stop()
	s.position = 0
	s.setTransport(TransportStopped)
}

func (s *Session) fail(kind FailureKind, err error) {
	if s.transport == TransportFailed {
		// Failed states compare equal by kind; no duplicate callbacks.
		return
	}
	s.failureKind = kind
	s.failureErr = err
	s.engine.Stop()
	s.setTransport(TransportFailed)
	s.log.Error().Err(err).Stringer("kind", kind).Str("url", s.sourceURL()).Msg("playback failed")
	s.broadcast(func(sub *Subscription) {
		sub.sendFailed(FailureEvent{Kind: kind, Err: err})
	})
}

func (s *Session) setTransport(next TransportState) {
	if s.transport == next {
		return
	}
	prev := s.transport
	s.transport = next
	if next == TransportPlaying {
		s.started = true
	}
	s.broadcast(func(sub *Subscription) {
		sub.sendTransport(TransportChange{Previous: prev, Current: next})
	})
}

func (s *Session) setBuffering(next BufferingState) {
	if s.buffering == next {
		return
	}
	prev := s.buffering
	s.buffering = next
	s.broadcast(func(sub *Subscription) {
		sub.sendBuffering(BufferingChange{
			Previous:    prev,
			Current:     next,
			Rebuffering: next == BufferingDelayed && s.started,
		})
	})
}

// AttachSurface reattaches the render target, e.g. on app foreground.
func (s *Session) AttachSurface() {
	s.do(func() { s.render.Attach() })
}

// DetachSurface detaches the render target while audio routing stays alive.
func (s *Session) DetachSurface() {
	s.do(func() { s.render.Detach() })
}

// Subscribe creates a new event subscription. Cancel it with Unsubscribe.
func (s *Session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes and closes a subscription.
func (s *Session) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

func (s *Session) broadcast(send func(*Subscription)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

// publish refreshes the read-model after every loop iteration.
func (s *Session) publish() {
	snap := Snapshot{
		Transport:   s.transport,
		Buffering:   s.buffering,
		FailureKind: s.failureKind,
		Position:    s.position,
		Duration:    s.duration,
		Buffered:    s.buffered,
		ItemReady:   s.itemReady,
		Completed:   s.completed,
		PendingSeek: s.pendingSeek != nil,
	}
	if s.scrub != nil {
		snap.Scrubbing = true
		snap.ScrubFraction = s.scrub.fraction
	}
	if s.asset != nil {
		snap.Title = s.asset.Title
		snap.Artist = s.asset.Artist
		snap.Album = s.asset.Album
		snap.SourceURL = s.asset.SourceURL
	}
	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()
}

// Snapshot returns the current read-model.
func (s *Session) Snapshot() Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}

// State returns the current transport state.
func (s *Session) State() TransportState { return s.Snapshot().Transport }

// Buffering returns the current buffering state.
func (s *Session) Buffering() BufferingState { return s.Snapshot().Buffering }

// Position returns the current playback position.
func (s *Session) Position() time.Duration { return s.Snapshot().Position }

// Duration returns the resolved item duration, zero if unknown.
func (s *Session) Duration() time.Duration { return s.Snapshot().Duration }

// Progress returns the current position as a fraction of the duration. An
// item played through to end-of-media reports 1 even though the transport
// rewound to zero.
func (s *Session) Progress() float64 {
	snap := s.Snapshot()
	if snap.Completed {
		return 1
	}
	if snap.Duration <= 0 {
		return 0
	}
	return lo.Clamp(float64(snap.Position)/float64(snap.Duration), 0, 1)
}

// Close tears the session down: the run loop exits, pending callbacks are
// dropped, the engine is released and subscriptions are closed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.quit)
		s.wg.Wait()
		s.engine.Close()
		s.subsMu.Lock()
		for _, sub := range s.subs {
			sub.close()
		}
		s.subs = nil
		s.subsMu.Unlock()
	})
}

func (s *Session) sourceURL() string {
	if s.asset == nil {
		return ""
	}
	return s.asset.SourceURL
}

func (s *Session) clampPos(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if s.duration > 0 && pos > s.duration {
		return s.duration
	}
	return pos
}

func (s *Session) fraction(pos time.Duration) float64 {
	if s.duration <= 0 {
		return 0
	}
	return lo.Clamp(float64(pos)/float64(s.duration), 0, 1)
}

func degenerate(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
