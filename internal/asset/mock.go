package asset

import (
	"context"
	"sync"
)

// Mock is a test double for Resolver.
type Mock struct {
	mu      sync.Mutex
	asset   Asset
	err     error
	calls   []string
	release chan struct{}
}

// NewMock creates a new mock resolver for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Resolve(ctx context.Context, url string) (Asset, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	release := m.release
	a, err := m.asset, m.err
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return Asset{}, ctx.Err()
		}
		// Result may have been changed while blocked.
		m.mu.Lock()
		a, err = m.asset, m.err
		m.mu.Unlock()
	}

	if err != nil {
		return Asset{}, err
	}
	if a.SourceURL == "" {
		a.SourceURL = url
	}
	a.Resolved = true
	return a, nil
}

// Test helpers

// SetAsset sets the asset returned by Resolve.
func (m *Mock) SetAsset(a Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asset = a
}

// SetError sets the error returned by Resolve.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block makes subsequent Resolve calls wait until Release is called.
func (m *Mock) Block() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release = make(chan struct{})
}

// Release unblocks pending Resolve calls.
func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.release != nil {
		close(m.release)
		m.release = nil
	}
}

// Calls returns the URLs passed to Resolve.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Verify Mock implements Resolver at compile time.
var _ Resolver = (*Mock)(nil)
