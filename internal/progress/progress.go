// Package progress is the durable per-item watch/listen position store. The
// full record set lives in memory and every mutation rewrites one JSON
// snapshot document atomically.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	appName          = "community-app"
	snapshotFileName = "progress.json"
	snapshotVersion  = 1

	// completionThreshold is the fraction past which an item counts as
	// fully consumed.
	completionThreshold = 0.8

	// maxTimestamp caps stored positions at five hours.
	maxTimestamp = 5 * time.Hour

	// resumeRewind is subtracted from the stored position so the viewer
	// regains context when reopening content.
	resumeRewind = 5 * time.Second
)

// MediaType distinguishes progress records for the same content id.
type MediaType string

const (
	MediaTypeAudio MediaType = "audio"
	MediaTypeVideo MediaType = "video"
)

// Record is one persisted progress entry. Keyed by (ID, Type); upserts
// replace the whole record.
type Record struct {
	ID        string    `json:"id"`
	Type      MediaType `json:"type"`
	Timestamp int64     `json:"timestamp"` // seconds
	Progress  float64   `json:"progress"`
}

type document struct {
	Version int      `json:"version"`
	Media   []Record `json:"media"`
}

type key struct {
	id        string
	mediaType MediaType
}

// ErrNotInitialized is returned when the store is used before Initialize.
var ErrNotInitialized = errors.New("progress store not initialized")

// Store holds the in-memory record set, hydrated once from the snapshot at
// startup. One mutex serializes mutations so snapshot rewrites never
// interleave.
type Store struct {
	mu          sync.Mutex
	path        string
	records     map[key]Record
	initialized bool
	log         zerolog.Logger
}

// New creates a store persisting to path. Call Initialize before first read.
func New(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// DefaultPath returns the snapshot location under the user data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, snapshotFileName))
}

// Initialize hydrates the in-memory set from the snapshot document. A missing
// or unparsable file is treated as no history, not an error.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	s.records = make(map[key]Record)
	s.initialized = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("read progress snapshot")
		}
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("corrupt progress snapshot, starting empty")
		return nil
	}
	for _, r := range doc.Media {
		s.records[key{r.ID, r.Type}] = r
	}
	return nil
}

// Shutdown releases the store. Every mutation already flushed, so there is
// nothing left to write.
func (s *Store) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = false
	s.records = nil
}

// Upsert replaces the record for (id, mediaType). Timestamp is clamped to
// [0, 5h] and progress to [0, 1]. A snapshot write failure is returned so
// callers can warn that resume state may be lost; the in-memory mutation is
// kept either way.
func (s *Store) Upsert(id string, mediaType MediaType, timestamp time.Duration, prog float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	r := Record{
		ID:        id,
		Type:      mediaType,
		Timestamp: int64(lo.Clamp(timestamp, 0, maxTimestamp) / time.Second),
		Progress:  lo.Clamp(prog, 0, 1),
	}
	s.records[key{id, mediaType}] = r
	return s.writeSnapshotLocked()
}

// Remove deletes the record for (id, mediaType), if any.
func (s *Store) Remove(id string, mediaType MediaType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	if _, ok := s.records[key{id, mediaType}]; !ok {
		return nil
	}
	delete(s.records, key{id, mediaType})
	return s.writeSnapshotLocked()
}

// ResumeTimestamp returns the stored position rewound by five seconds, floor
// zero, or false if no record exists.
func (s *Store) ResumeTimestamp(id string, mediaType MediaType) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key{id, mediaType}]
	if !ok {
		return 0, false
	}
	resume := time.Duration(r.Timestamp)*time.Second - resumeRewind
	return max(resume, 0), true
}

// Progress returns the stored fraction for (id, mediaType).
func (s *Store) Progress(id string, mediaType MediaType) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key{id, mediaType}]
	if !ok {
		return 0, false
	}
	return r.Progress, true
}

// IsComplete reports whether the stored progress crossed the completion
// threshold.
func (s *Store) IsComplete(id string, mediaType MediaType) bool {
	prog, ok := s.Progress(id, mediaType)
	return ok && prog > completionThreshold
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// writeSnapshotLocked serializes the full set and atomically replaces the
// snapshot file. In-memory and on-disk state diverge on failure; the caller
// is told, the mutation stands.
func (s *Store) writeSnapshotLocked() error {
	doc := document{Version: snapshotVersion, Media: make([]Record, 0, len(s.records))}
	for _, r := range s.records {
		doc.Media = append(doc.Media, r)
	}
	sort.Slice(doc.Media, func(i, j int) bool {
		if doc.Media[i].ID != doc.Media[j].ID {
			return doc.Media[i].ID < doc.Media[j].ID
		}
		return doc.Media[i].Type < doc.Media[j].Type
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Msg("serialize progress snapshot")
		return fmt.Errorf("serialize progress snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("create progress directory")
		return fmt.Errorf("create progress directory: %w", err)
	}

	// renameio handles temp file creation, fsync and the atomic rename.
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("write progress snapshot")
		return fmt.Errorf("write progress snapshot: %w", err)
	}
	return nil
}
