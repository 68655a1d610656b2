// Package engine abstracts the platform media stack behind a small command
// surface and an event stream. The engine decodes and renders; it knows
// nothing about sessions, scrubbing or persistence.
package engine

import "time"

// EventKind identifies an engine event.
type EventKind int

const (
	// ItemReady fires once a loaded item can start playback.
	ItemReady EventKind = iota
	// BufferEmpty fires when the playback buffer drains.
	BufferEmpty
	// BufferLikelyToKeepUp fires when the buffer is healthy again.
	BufferLikelyToKeepUp
	// PositionTick fires periodically (~10 Hz) while an item exists.
	PositionTick
	// BufferedRange reports how far ahead of the playhead data is buffered.
	BufferedRange
	// SeekCompleted fires when an asynchronous seek lands.
	SeekCompleted
	// EndOfMedia fires when playback reaches the end of the item.
	EndOfMedia
	// Stalled fires when playback stalls near the end of the stream.
	Stalled
	// PlaybackFailed fires when the decoder gives up on the item.
	PlaybackFailed
)

// String returns the event kind name for logging.
func (k EventKind) String() string {
	switch k {
	case ItemReady:
		return "ItemReady"
	case BufferEmpty:
		return "BufferEmpty"
	case BufferLikelyToKeepUp:
		return "BufferLikelyToKeepUp"
	case PositionTick:
		return "PositionTick"
	case BufferedRange:
		return "BufferedRange"
	case SeekCompleted:
		return "SeekCompleted"
	case EndOfMedia:
		return "EndOfMedia"
	case Stalled:
		return "Stalled"
	case PlaybackFailed:
		return "PlaybackFailed"
	default:
		return "Unknown"
	}
}

// Event is a single engine callback. Gen carries the generation token of the
// item the event belongs to; consumers drop events whose generation no longer
// matches the item they own. Seq is set on SeekCompleted and echoes the
// sequence passed to SeekTo.
type Event struct {
	Kind     EventKind
	Gen      uint64
	Seq      uint64
	Position time.Duration
	Buffered time.Duration
	Err      error
}

// Interface defines the decoder contract. All methods are non-blocking;
// outcomes arrive on Events. Load replaces the current item and cancels the
// periodic callbacks attached to the previous one.
type Interface interface {
	Load(gen uint64, url string, duration time.Duration)
	Play()
	Pause()
	Stop()
	SeekTo(gen, seq uint64, pos time.Duration)
	Position() time.Duration
	Events() <-chan Event
	Close()
}
