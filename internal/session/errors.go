package session

import (
	"errors"
	"fmt"

	"github.com/8secz-johndpope/Community-App-sub000/internal/asset"
)

// FailureKind classifies why a session entered TransportFailed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotPlayable
	FailurePropertyResolution
	FailureEnginePlayback
	FailureStalledAtEnd
	FailureUnknown
)

// String returns the failure kind name.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "None"
	case FailureNotPlayable:
		return "AssetNotPlayable"
	case FailurePropertyResolution:
		return "PropertyResolutionFailed"
	case FailureEnginePlayback:
		return "EnginePlaybackFailed"
	case FailureStalledAtEnd:
		return "PlaybackStalledAtEndOfStream"
	case FailureUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// ErrEnginePlayback reports a decoder-level playback failure.
var ErrEnginePlayback = fmt.Errorf("engine playback failed")

// classifyResolution maps a resolver error onto a failure kind.
func classifyResolution(err error) FailureKind {
	var propErr *asset.PropertyResolutionError
	switch {
	case errors.Is(err, asset.ErrNotPlayable):
		return FailureNotPlayable
	case errors.As(err, &propErr):
		return FailurePropertyResolution
	default:
		return FailureUnknown
	}
}
