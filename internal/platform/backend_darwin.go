//go:build darwin

package platform

// DarwinBackend is a documented stub. macOS window management requires
// Accessibility API bindings this module does not carry; every window
// operation reports ErrUnsupported and display queries return a single
// placeholder display so DPI resolution still terminates in its default.
type DarwinBackend struct{}

var _ Backend = (*DarwinBackend)(nil)

// New returns the stub macOS backend.
func New() (Backend, error) {
	return &DarwinBackend{}, nil
}

// Close is a no-op.
func (b *DarwinBackend) Close() error { return nil }

// Displays returns a single unnamed display with unknown bounds.
func (b *DarwinBackend) Displays() ([]Display, error) {
	return []Display{{ID: 0, Name: "Main", Primary: true}}, nil
}

// PrimaryDisplay returns the placeholder main display.
func (b *DarwinBackend) PrimaryDisplay() (Display, error) {
	return Display{ID: 0, Name: "Main", Primary: true}, nil
}

// ActiveDisplay returns the placeholder main display.
func (b *DarwinBackend) ActiveDisplay() (Display, error) {
	return b.PrimaryDisplay()
}

// DisplayFor returns the placeholder main display.
func (b *DarwinBackend) DisplayFor(WindowID) (Display, error) {
	return b.PrimaryDisplay()
}

// ListWindows is unsupported.
func (b *DarwinBackend) ListWindows() ([]Window, error) {
	return nil, ErrUnsupported
}

// ActiveWindow is unsupported.
func (b *DarwinBackend) ActiveWindow() (WindowID, error) {
	return None, ErrUnsupported
}

// FindWindowByTitle is unsupported.
func (b *DarwinBackend) FindWindowByTitle(string) (WindowID, error) {
	return None, ErrUnsupported
}

// WindowBounds is unsupported.
func (b *DarwinBackend) WindowBounds(WindowID) (Rect, error) {
	return Rect{}, ErrUnsupported
}

// IsMaximized is unsupported.
func (b *DarwinBackend) IsMaximized(WindowID) (bool, error) {
	return false, ErrUnsupported
}

// MoveResize is unsupported.
func (b *DarwinBackend) MoveResize(WindowID, Rect) error {
	return ErrUnsupported
}

// SetMaximized is unsupported.
func (b *DarwinBackend) SetMaximized(WindowID, bool) error {
	return ErrUnsupported
}
