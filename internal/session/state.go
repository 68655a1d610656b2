// internal/session/state.go
package session

// TransportState represents the transport state machine.
//
// The machine has three live states plus an absorbing failure state:
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                            │ ▲
//	     │ end of media         pause │ │ play
//	     │                            ▼ │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	              stop           └──────────┘
//
//	any state ──item check fails──▶ Failed (absorbing)
//
// Play from Stopped seeks to zero first ("play from beginning"); play from
// Paused resumes at the current time. Re-entering the current state is a
// no-op. Two Failed states compare equal regardless of their error payloads,
// so duplicate failure callbacks are suppressed by state kind alone.
type TransportState int

const (
	TransportStopped TransportState = iota
	TransportPlaying
	TransportPaused
	TransportFailed
)

// String returns the state name.
func (s TransportState) String() string {
	switch s {
	case TransportStopped:
		return "Stopped"
	case TransportPlaying:
		return "Playing"
	case TransportPaused:
		return "Paused"
	case TransportFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s TransportState) IsActive() bool {
	return s == TransportPlaying || s == TransportPaused
}

// BufferingState represents decoder buffer health. It evolves independently
// of the transport state, driven by buffer-empty and likely-to-keep-up
// signals from the engine.
type BufferingState int

const (
	BufferingUnknown BufferingState = iota
	BufferingReady
	BufferingDelayed
)

// String returns the buffering state name.
func (s BufferingState) String() string {
	switch s {
	case BufferingUnknown:
		return "Unknown"
	case BufferingReady:
		return "Ready"
	case BufferingDelayed:
		return "Delayed"
	default:
		return "Invalid"
	}
}
