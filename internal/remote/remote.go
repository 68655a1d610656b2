// Package remote translates hardware and lock-screen media commands into
// session calls and publishes now-playing metadata for the OS to display.
package remote

import (
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/8secz-johndpope/Community-App-sub000/internal/session"
)

// NowPlaying is the metadata surface published to the OS. Publication is
// best-effort and never blocks playback on artwork availability.
type NowPlaying struct {
	Title      string
	Artist     string
	Album      string
	Elapsed    time.Duration
	Duration   time.Duration
	SourceURL  string
	ArtworkURL string
}

// Publisher receives now-playing updates. Implementations must not block.
type Publisher interface {
	Publish(NowPlaying)
}

var (
	// ErrNotBound is returned for commands arriving with no active session.
	ErrNotBound = errors.New("no playback session bound")
	// ErrDurationUnknown is returned for skip commands before the asset
	// resolved; seeking to an invalid time would be worse than refusing.
	ErrDurationUnknown = errors.New("item duration not yet known")
	// ErrSessionFailed is returned for transport commands on a failed session.
	ErrSessionFailed = errors.New("playback session failed")
)

// Binding routes OS media commands to the currently bound session. It holds
// no playback state of its own; rebind it whenever the active session changes.
type Binding struct {
	mu      sync.Mutex
	session *session.Session
	artwork string
	sub     *session.Subscription
	stop    chan struct{}

	skip time.Duration
	pub  Publisher
}

// NewBinding creates an unbound binding with the given skip interval.
func NewBinding(skip time.Duration, pub Publisher) *Binding {
	return &Binding{skip: skip, pub: pub}
}

// Bind attaches the binding to a session and starts publishing metadata on
// duration discovery and every position update. Any previous binding is
// released first.
func (b *Binding) Bind(s *session.Session, artworkURL string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.session = s
	b.artwork = artworkURL
	if s == nil || b.pub == nil {
		return
	}
	b.sub = s.Subscribe()
	b.stop = make(chan struct{})
	go b.pump(s, b.sub, b.stop, artworkURL)
}

// Unbind detaches the current session.
func (b *Binding) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.session = nil
	b.artwork = ""
}

func (b *Binding) releaseLocked() {
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	if b.sub != nil && b.session != nil {
		b.session.Unsubscribe(b.sub)
		b.sub = nil
	}
}

func (b *Binding) pump(s *session.Session, sub *session.Subscription, stop <-chan struct{}, artwork string) {
	for {
		select {
		case <-stop:
			return
		case <-sub.Done:
			return
		case <-sub.Ready:
			b.publish(s, artwork)
		case <-sub.PositionChanged:
			b.publish(s, artwork)
		}
	}
}

func (b *Binding) publish(s *session.Session, artwork string) {
	snap := s.Snapshot()
	b.pub.Publish(NowPlaying{
		Title:      snap.Title,
		Artist:     snap.Artist,
		Album:      snap.Album,
		Elapsed:    snap.Position,
		Duration:   snap.Duration,
		SourceURL:  snap.SourceURL,
		ArtworkURL: artwork,
	})
}

func (b *Binding) bound() *session.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// SkipBack seeks backwards by the skip interval, clamped to the item bounds.
func (b *Binding) SkipBack() error {
	return b.skipBy(-b.skip)
}

// SkipForward seeks forwards by the skip interval, clamped to the item bounds.
func (b *Binding) SkipForward() error {
	return b.skipBy(b.skip)
}

func (b *Binding) skipBy(delta time.Duration) error {
	s := b.bound()
	if s == nil {
		return ErrNotBound
	}
	snap := s.Snapshot()
	if snap.Duration <= 0 {
		return ErrDurationUnknown
	}
	s.Seek(lo.Clamp(snap.Position+delta, 0, snap.Duration))
	return nil
}

// Play handles the OS play command.
func (b *Binding) Play() error {
	s := b.bound()
	if s == nil {
		return ErrNotBound
	}
	if s.State() == session.TransportFailed {
		return ErrSessionFailed
	}
	s.Play()
	return nil
}

// Pause handles the OS pause command.
func (b *Binding) Pause() error {
	s := b.bound()
	if s == nil {
		return ErrNotBound
	}
	if s.State() == session.TransportFailed {
		return ErrSessionFailed
	}
	s.Pause()
	return nil
}

// Close releases the binding.
func (b *Binding) Close() {
	b.Unbind()
}
