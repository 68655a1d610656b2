package engine

import (
	"sync"
	"time"
)

// SeekCall records one SeekTo invocation.
type SeekCall struct {
	Gen uint64
	Seq uint64
	Pos time.Duration
}

// LoadCall records one Load invocation.
type LoadCall struct {
	Gen      uint64
	URL      string
	Duration time.Duration
}

// Mock is a test double for the engine. It records commands and lets tests
// inject events directly.
type Mock struct {
	mu         sync.Mutex
	position   time.Duration
	loadCalls  []LoadCall
	seekCalls  []SeekCall
	playCalls  int
	pauseCalls int
	stopCalls  int

	events chan Event
	closed bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{events: make(chan Event, eventBuffer)}
}

func (m *Mock) Load(gen uint64, url string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, LoadCall{Gen: gen, URL: url, Duration: duration})
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

func (m *Mock) SeekTo(gen, seq uint64, pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, SeekCall{Gen: gen, Seq: seq, Pos: pos})
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.events)
}

// Test helpers

// Emit delivers an event to the consumer.
func (m *Mock) Emit(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.events <- e
}

// CompleteLastSeek emits SeekCompleted for the most recent SeekTo call.
func (m *Mock) CompleteLastSeek() {
	m.mu.Lock()
	if m.closed || len(m.seekCalls) == 0 {
		m.mu.Unlock()
		return
	}
	call := m.seekCalls[len(m.seekCalls)-1]
	m.mu.Unlock()
	m.Emit(Event{Kind: SeekCompleted, Gen: call.Gen, Seq: call.Seq, Position: call.Pos})
}

// SetPosition sets the value returned by Position.
func (m *Mock) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

// LoadCalls returns recorded Load invocations.
func (m *Mock) LoadCalls() []LoadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LoadCall(nil), m.loadCalls...)
}

// SeekCalls returns recorded SeekTo invocations.
func (m *Mock) SeekCalls() []SeekCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SeekCall(nil), m.seekCalls...)
}

// PlayCalls returns the number of Play invocations.
func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

// PauseCalls returns the number of Pause invocations.
func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// StopCalls returns the number of Stop invocations.
func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
