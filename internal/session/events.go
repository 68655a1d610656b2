package session

import "time"

// ReadyEvent is emitted once per loaded item, when the engine reports the
// item can start playback and the duration is known.
type ReadyEvent struct {
	Duration time.Duration
}

// TransportChange is emitted when the transport state machine moves to a
// different state kind. Re-entering the current kind does not emit; in
// particular two failures with different errors produce one event.
type TransportChange struct {
	Previous TransportState
	Current  TransportState
}

// BufferingChange is emitted when buffer health changes. Rebuffering is the
// spinner signal: true whenever the buffer is delayed after playback has
// already started. It never restarts playback by itself.
type BufferingChange struct {
	Previous    BufferingState
	Current     BufferingState
	Rebuffering bool
}

// PositionChange is emitted on every periodic position callback.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// BufferedRangeChange is emitted when the buffered-ahead range moves.
type BufferedRangeChange struct {
	Buffered time.Duration
}

// ScrubMove is emitted while a scrub gesture is live and once more when a
// committed scrub's seek lands. Committed is the signal for chrome to restart
// its auto-hide controls timer.
type ScrubMove struct {
	Fraction  float64
	Committed bool
}

// FailureEvent is emitted exactly once when the session enters
// TransportFailed.
type FailureEvent struct {
	Kind FailureKind
	Err  error
}
