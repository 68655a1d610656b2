package notify

import (
	"fmt"
	"sync"

	"github.com/8secz-johndpope/Community-App-sub000/internal/remote"
)

const notificationTimeout = 5000 // ms

// NowPlayingPublisher surfaces item changes as desktop notifications. It
// receives every metadata update the binding publishes but only notifies when
// the item itself changes; position ticks never reach the notification daemon.
type NowPlayingPublisher struct {
	notifier Notifier

	mu     sync.Mutex
	lastID uint32
	source string
}

// NewNowPlayingPublisher wraps a notifier as a now-playing publisher.
func NewNowPlayingPublisher(n Notifier) *NowPlayingPublisher {
	return &NowPlayingPublisher{notifier: n}
}

// Publish sends a notification if the item changed since the last update,
// replacing the previous notification rather than stacking a new one.
func (p *NowPlayingPublisher) Publish(np remote.NowPlaying) {
	if np.Title == "" && np.SourceURL == "" {
		return
	}

	p.mu.Lock()
	if np.SourceURL == p.source {
		p.mu.Unlock()
		return
	}
	p.source = np.SourceURL
	replaces := p.lastID
	p.mu.Unlock()

	body := np.Artist
	if np.Album != "" {
		body = fmt.Sprintf("%s\n%s", np.Artist, np.Album)
	}

	id, err := p.notifier.Notify(Notification{
		Title:      np.Title,
		Body:       body,
		Icon:       np.ArtworkURL,
		Timeout:    notificationTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		return
	}

	p.mu.Lock()
	p.lastID = id
	p.mu.Unlock()
}

// Verify NowPlayingPublisher implements remote.Publisher at compile time.
var _ remote.Publisher = (*NowPlayingPublisher)(nil)
