package remote

import "github.com/rs/zerolog"

// LogPublisher writes now-playing updates to the log. Used by the demo
// binary and anywhere no OS metadata surface is available.
type LogPublisher struct {
	Log zerolog.Logger
}

func (p LogPublisher) Publish(np NowPlaying) {
	p.Log.Debug().
		Str("title", np.Title).
		Str("artist", np.Artist).
		Dur("elapsed", np.Elapsed).
		Dur("duration", np.Duration).
		Msg("now playing")
}

// Verify LogPublisher implements Publisher at compile time.
var _ Publisher = LogPublisher{}

// MultiPublisher fans one update out to several publishers.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(np NowPlaying) {
	for _, p := range m {
		p.Publish(np)
	}
}

// Verify MultiPublisher implements Publisher at compile time.
var _ Publisher = MultiPublisher{}
