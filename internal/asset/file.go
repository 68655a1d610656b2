package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abema/go-mp4"
	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
)

// FileResolver probes local media files. Tags are read with dhowden/tag, MP3
// durations are computed by walking the frame headers, and MP4 containers are
// probed for their movie-header duration.
type FileResolver struct{}

// Verify FileResolver implements Resolver at compile time.
var _ Resolver = FileResolver{}

var playableExtensions = map[string]struct{}{
	".mp3": {},
	".m4a": {},
	".mp4": {},
}

// Resolve stats and probes the file at url. A missing or unreadable file is a
// property-resolution failure; an unrecognized format is ErrNotPlayable.
func (FileResolver) Resolve(ctx context.Context, url string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	if _, err := os.Stat(url); err != nil {
		return Asset{}, &PropertyResolutionError{Property: "tracks", Err: err}
	}

	ext := strings.ToLower(filepath.Ext(url))
	if _, ok := playableExtensions[ext]; !ok {
		return Asset{}, ErrNotPlayable
	}

	a := Asset{
		SourceURL: url,
		Playable:  true,
		Resolved:  true,
	}
	a.Title, a.Artist, a.Album = readTags(url)
	if a.Title == "" {
		a.Title = strings.TrimSuffix(filepath.Base(url), ext)
	}

	// Duration is a required property; an item whose duration cannot be
	// resolved never becomes ready.
	var dur time.Duration
	var err error
	switch ext {
	case ".mp3":
		dur, err = mp3Duration(url)
	case ".m4a", ".mp4":
		dur, err = mp4Duration(url)
	}
	if err != nil {
		return Asset{}, &PropertyResolutionError{Property: "duration", Err: err}
	}
	a.Duration = dur

	return a, nil
}

func readTags(path string) (title, artist, album string) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", ""
	}
	return strings.TrimSpace(meta.Title()), strings.TrimSpace(meta.Artist()), strings.TrimSpace(meta.Album())
}

func mp3Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total time.Duration

	for {
		err := decoder.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration()
	}

	return total, nil
}

func mp4Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := mp4.Probe(f)
	if err != nil {
		return 0, err
	}
	if info.Timescale == 0 {
		return 0, fmt.Errorf("mp4 movie header missing timescale")
	}
	return time.Duration(info.Duration) * time.Second / time.Duration(info.Timescale), nil
}
