// Package asset resolves opaque media URLs into playable assets with
// validated duration and playability.
package asset

import (
	"context"
	"fmt"
	"time"
)

// Asset is a media source plus the metadata resolved for it. Immutable once
// Resolved is set; a session discards it wholesale when a new source replaces it.
type Asset struct {
	SourceURL string
	Title     string
	Artist    string
	Album     string
	Playable  bool
	Duration  time.Duration
	Resolved  bool
}

// Resolver validates a URL into a playable Asset. Resolution runs on the
// caller's goroutine; callers that need it off-thread wrap the call themselves.
// Exactly one terminal outcome per call: a resolved asset or an error.
type Resolver interface {
	Resolve(ctx context.Context, url string) (Asset, error)
}

// ErrNotPlayable reports an asset whose properties resolved but which the
// media stack cannot play.
var ErrNotPlayable = fmt.Errorf("asset is not playable")

// PropertyResolutionError reports a required asset property (tracks, duration,
// playability) that failed to resolve.
type PropertyResolutionError struct {
	Property string
	Err      error
}

func (e *PropertyResolutionError) Error() string {
	return fmt.Sprintf("resolve asset property %q: %v", e.Property, e.Err)
}

func (e *PropertyResolutionError) Unwrap() error { return e.Err }
