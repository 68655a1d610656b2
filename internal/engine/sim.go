package engine

import (
	"sync"
	"time"
)

const (
	tickInterval  = 100 * time.Millisecond
	bufferedAhead = 3 * time.Second
	eventBuffer   = 64
)

// Sim is a clock-driven engine for the demo binary and integration tests.
// It ticks the playhead forward in real time while playing and emits the same
// event sequence a real decoder would: ItemReady and BufferLikelyToKeepUp on
// load, PositionTick/BufferedRange while an item exists, EndOfMedia at the end.
type Sim struct {
	mu       sync.Mutex
	gen      uint64
	url      string
	duration time.Duration
	pos      time.Duration
	loaded   bool
	playing  bool

	events chan Event
	quit   chan struct{}
	wg     sync.WaitGroup
}

// Verify Sim implements Interface at compile time.
var _ Interface = (*Sim)(nil)

// NewSim creates a simulated engine and starts its tick loop.
func NewSim() *Sim {
	s := &Sim{
		events: make(chan Event, eventBuffer),
		quit:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Sim) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sim) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if s.playing {
		s.pos += tickInterval
		if s.pos >= s.duration {
			s.pos = s.duration
			s.playing = false
			s.emit(Event{Kind: PositionTick, Gen: s.gen, Position: s.pos})
			s.emit(Event{Kind: EndOfMedia, Gen: s.gen, Position: s.pos})
			return
		}
	}
	s.emit(Event{Kind: PositionTick, Gen: s.gen, Position: s.pos})
	s.emit(Event{Kind: BufferedRange, Gen: s.gen, Buffered: min(s.pos+bufferedAhead, s.duration)})
}

// emit is non-blocking; ticks are droppable when the consumer lags.
func (s *Sim) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

// Load replaces the current item. Readiness and buffer health are reported
// immediately; a real decoder would take a network round trip here.
func (s *Sim) Load(gen uint64, url string, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
	s.url = url
	s.duration = duration
	s.pos = 0
	s.loaded = true
	s.playing = false
	s.emit(Event{Kind: ItemReady, Gen: gen})
	s.emit(Event{Kind: BufferLikelyToKeepUp, Gen: gen})
}

func (s *Sim) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded && s.pos < s.duration {
		s.playing = true
	}
}

func (s *Sim) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

func (s *Sim) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.pos = 0
}

func (s *Sim) SeekTo(gen, seq uint64, pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || gen != s.gen {
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > s.duration {
		pos = s.duration
	}
	s.pos = pos
	s.emit(Event{Kind: SeekCompleted, Gen: gen, Seq: seq, Position: pos})
}

func (s *Sim) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *Sim) Events() <-chan Event { return s.events }

// Close stops the tick loop and closes the event stream.
func (s *Sim) Close() {
	s.mu.Lock()
	select {
	case <-s.quit:
		s.mu.Unlock()
		return
	default:
	}
	close(s.quit)
	s.mu.Unlock()
	s.wg.Wait()
	close(s.events)
}
