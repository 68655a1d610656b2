package lifecycle

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/8secz-johndpope/Community-App-sub000/internal/asset"
	"github.com/8secz-johndpope/Community-App-sub000/internal/engine"
	"github.com/8secz-johndpope/Community-App-sub000/internal/session"
)

type countingSurface struct {
	mu       sync.Mutex
	attaches int
	detaches int
}

func (c *countingSurface) Attach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attaches++
}

func (c *countingSurface) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detaches++
}

func (c *countingSurface) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attaches, c.detaches
}

// newPlayingSession builds a session over mocks, resolved and playing.
func newPlayingSession(t *testing.T, surface *countingSurface) (*session.Session, *engine.Mock) {
	t.Helper()
	eng := engine.NewMock()
	res := asset.NewMock()
	res.SetAsset(asset.Asset{Playable: true, Duration: 100 * time.Second})
	opts := session.Options{}
	if surface != nil {
		opts.Render = surface
	}
	s := session.New(eng, res, opts)
	t.Cleanup(s.Close)
	s.Load("/content/a.mp3")
	synctest.Wait()
	eng.Emit(engine.Event{Kind: engine.ItemReady, Gen: 1})
	synctest.Wait()
	s.Play()
	synctest.Wait()
	if s.State() != session.TransportPlaying {
		t.Fatalf("setup: state = %v, want Playing", s.State())
	}
	return s, eng
}

func TestGuard_BackgroundPausesWithoutBackgroundAudio(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		surface := &countingSurface{}
		s, _ := newPlayingSession(t, surface)
		g := NewGuard(s, Options{BackgroundAudio: false})

		g.Handle(Background)
		synctest.Wait()
		if s.State() != session.TransportPaused {
			t.Fatalf("state = %v, want Paused", s.State())
		}
		if _, detaches := surface.counts(); detaches != 1 {
			t.Errorf("detaches = %d, want 1", detaches)
		}

		g.Handle(Foreground)
		synctest.Wait()
		if s.State() != session.TransportPlaying {
			t.Fatalf("state = %v, want Playing after foreground", s.State())
		}
		if attaches, _ := surface.counts(); attaches != 1 {
			t.Errorf("attaches = %d, want 1", attaches)
		}
	})
}

func TestGuard_BackgroundAudioKeepsPlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		surface := &countingSurface{}
		s, _ := newPlayingSession(t, surface)
		g := NewGuard(s, Options{BackgroundAudio: true})

		g.Handle(Background)
		synctest.Wait()
		if s.State() != session.TransportPlaying {
			t.Fatalf("state = %v, want Playing while backgrounded", s.State())
		}
		if _, detaches := surface.counts(); detaches != 1 {
			t.Errorf("detaches = %d, want 1", detaches)
		}
	})
}

func TestGuard_NeverOverridesUserPause(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := newPlayingSession(t, nil)
		g := NewGuard(s, Options{BackgroundAudio: false})

		s.Pause()
		synctest.Wait()

		g.Handle(Background)
		synctest.Wait()
		g.Handle(Foreground)
		synctest.Wait()

		if s.State() != session.TransportPaused {
			t.Fatalf("state = %v, want Paused preserved across lifecycle", s.State())
		}
	})
}

func TestGuard_InterruptionPausesAndResumes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := newPlayingSession(t, nil)
		g := NewGuard(s, Options{BackgroundAudio: true})

		g.Handle(InterruptionBegan)
		synctest.Wait()
		if s.State() != session.TransportPaused {
			t.Fatalf("state = %v, want Paused during interruption", s.State())
		}

		g.Handle(InterruptionEnded)
		synctest.Wait()
		if s.State() != session.TransportPlaying {
			t.Fatalf("state = %v, want Playing after interruption", s.State())
		}
	})
}

func TestGuard_InterruptionEndWhileBackgroundedStaysPaused(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := newPlayingSession(t, nil)
		g := NewGuard(s, Options{BackgroundAudio: false})

		g.Handle(InterruptionBegan)
		g.Handle(Background)
		synctest.Wait()
		g.Handle(InterruptionEnded)
		synctest.Wait()

		if s.State() != session.TransportPaused {
			t.Fatalf("state = %v, want Paused while still backgrounded", s.State())
		}
	})
}

func TestGuard_RunDrainsSignals(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := newPlayingSession(t, nil)
		g := NewGuard(s, Options{BackgroundAudio: false})

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		signals := make(chan Signal)
		go g.Run(ctx, signals)

		signals <- Background
		synctest.Wait()
		if s.State() != session.TransportPaused {
			t.Fatalf("state = %v, want Paused", s.State())
		}

		signals <- Foreground
		synctest.Wait()
		if s.State() != session.TransportPlaying {
			t.Fatalf("state = %v, want Playing", s.State())
		}
	})
}

func TestSignal_String(t *testing.T) {
	tests := []struct {
		sig  Signal
		want string
	}{
		{Background, "Background"},
		{Foreground, "Foreground"},
		{InterruptionBegan, "InterruptionBegan"},
		{InterruptionEnded, "InterruptionEnded"},
		{Signal(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.sig.String(); got != tt.want {
			t.Errorf("Signal(%d).String() = %q, want %q", tt.sig, got, tt.want)
		}
	}
}
