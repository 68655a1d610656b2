//go:build linux

package remote

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/8secz-johndpope/Community-App-sub000/internal/session"
)

// MPRISAdapter exposes the binding over D-Bus so desktop media keys and
// lock-screen widgets control the session.
type MPRISAdapter struct {
	binding *Binding
	server  *server.Server
}

// NewMPRIS creates and starts an MPRIS adapter over the binding.
func NewMPRIS(binding *Binding) (*MPRISAdapter, error) {
	a := &MPRISAdapter{binding: binding}
	a.server = server.NewServer("community-app", &rootAdapter{}, &playerAdapter{binding: binding})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *MPRISAdapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Community App", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp4", "video/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	binding *Binding
}

func (p *playerAdapter) Next() error {
	return p.binding.SkipForward()
}

func (p *playerAdapter) Previous() error {
	return p.binding.SkipBack()
}

func (p *playerAdapter) Pause() error {
	return p.binding.Pause()
}

func (p *playerAdapter) PlayPause() error {
	s := p.binding.bound()
	if s == nil {
		return ErrNotBound
	}
	if s.State() == session.TransportPlaying {
		return p.binding.Pause()
	}
	return p.binding.Play()
}

func (p *playerAdapter) Stop() error {
	s := p.binding.bound()
	if s == nil {
		return ErrNotBound
	}
	s.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	return p.binding.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	s := p.binding.bound()
	if s == nil {
		return ErrNotBound
	}
	snap := s.Snapshot()
	if snap.Duration <= 0 {
		return ErrDurationUnknown
	}
	s.Seek(snap.Position + time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	s := p.binding.bound()
	if s == nil {
		return ErrNotBound
	}
	s.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s := p.binding.bound()
	if s == nil {
		return types.PlaybackStatusStopped, nil
	}
	switch s.State() {
	case session.TransportPlaying:
		return types.PlaybackStatusPlaying, nil
	case session.TransportPaused:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.binding.bound()
	if s == nil {
		return types.Metadata{}, nil
	}
	snap := s.Snapshot()

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.SourceURL)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Title,
		Artist:  []string{snap.Artist},
		Album:   snap.Album,
	}
	p.binding.mu.Lock()
	if p.binding.artwork != "" {
		meta.ArtUrl = p.binding.artwork
	}
	p.binding.mu.Unlock()
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed via the session
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	s := p.binding.bound()
	if s == nil {
		return 0, nil
	}
	return s.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil // Mapped to skip-forward
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil // Mapped to skip-back
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.binding.bound() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
