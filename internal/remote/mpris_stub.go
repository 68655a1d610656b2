//go:build !linux

package remote

// MPRISAdapter is a no-op on non-Linux platforms.
type MPRISAdapter struct{}

// NewMPRIS returns a no-op adapter on non-Linux platforms.
func NewMPRIS(_ *Binding) (*MPRISAdapter, error) {
	return &MPRISAdapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *MPRISAdapter) Close() error {
	return nil
}
