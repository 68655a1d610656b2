package session

import "github.com/rs/zerolog"

// RenderTarget is the capability a session renders into. Audio-only sessions
// use NoSurface; video sessions supply a surface the lifecycle guard can
// detach while the app is backgrounded.
type RenderTarget interface {
	Attach()
	Detach()
}

// NoSurface is the render target for audio-only sessions.
type NoSurface struct{}

func (NoSurface) Attach() {}
func (NoSurface) Detach() {}

// Verify NoSurface implements RenderTarget at compile time.
var _ RenderTarget = NoSurface{}

// LogSurface stands in for a video surface where none exists; it logs the
// attach/detach transitions the lifecycle guard drives.
type LogSurface struct {
	Log zerolog.Logger
}

func (s LogSurface) Attach() {
	s.Log.Info().Msg("render surface attached")
}

func (s LogSurface) Detach() {
	s.Log.Info().Msg("render surface detached")
}

// Verify LogSurface implements RenderTarget at compile time.
var _ RenderTarget = LogSurface{}
