// Package lifecycle reacts to app foreground/background transitions and
// audio interruptions. It is the only place transport state changes without
// a direct user action or an engine failure, and it always routes pauses
// through the session's own Pause entry point.
package lifecycle

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/8secz-johndpope/Community-App-sub000/internal/session"
)

// Signal is an app lifecycle or audio-routing event.
type Signal int

const (
	Background Signal = iota
	Foreground
	InterruptionBegan
	InterruptionEnded
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case Background:
		return "Background"
	case Foreground:
		return "Foreground"
	case InterruptionBegan:
		return "InterruptionBegan"
	case InterruptionEnded:
		return "InterruptionEnded"
	default:
		return "Unknown"
	}
}

// Options configures guard behaviour.
type Options struct {
	// BackgroundAudio keeps audio routing alive while backgrounded; only the
	// render surface is detached.
	BackgroundAudio bool
	Logger          *zerolog.Logger
}

// Guard pauses and resumes a session across lifecycle transitions.
type Guard struct {
	session *session.Session
	opts    Options
	log     zerolog.Logger

	mu             sync.Mutex
	pausedBySignal bool
	interrupted    bool
	backgrounded   bool
}

// NewGuard creates a guard over the session.
func NewGuard(s *session.Session, opts Options) *Guard {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Guard{session: s, opts: opts, log: log}
}

// Handle applies one lifecycle signal.
func (g *Guard) Handle(sig Signal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.log.Debug().Stringer("signal", sig).Msg("lifecycle signal")

	switch sig {
	case Background:
		g.backgrounded = true
		g.session.DetachSurface()
		if !g.opts.BackgroundAudio {
			g.pauseLocked()
		}
	case Foreground:
		g.backgrounded = false
		g.session.AttachSurface()
		g.resumeLocked()
	case InterruptionBegan:
		g.interrupted = true
		g.pauseLocked()
	case InterruptionEnded:
		g.interrupted = false
		if !g.backgrounded || g.opts.BackgroundAudio {
			g.resumeLocked()
		}
	}
}

// pauseLocked pauses through the session's normal entry point and remembers
// whether this guard caused it, so resume never overrides a user's pause.
func (g *Guard) pauseLocked() {
	if g.session.State() != session.TransportPlaying {
		return
	}
	g.session.Pause()
	g.pausedBySignal = true
}

func (g *Guard) resumeLocked() {
	if g.interrupted || !g.pausedBySignal {
		return
	}
	g.pausedBySignal = false
	g.session.Play()
}

// Run drains signals until the channel closes or ctx is done.
func (g *Guard) Run(ctx context.Context, signals <-chan Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			g.Handle(sig)
		}
	}
}
