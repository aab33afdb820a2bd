package platform

import "errors"

// WindowID is a platform-neutral window identifier. It is wide enough to
// hold an X11 window ID on Linux and an HWND on Windows. The zero value
// means "no window" and directs window-relative queries at the primary
// display.
type WindowID uintptr

// None is the absent window handle.
const None WindowID = 0

// ErrUnsupported is returned by backends for operations the platform
// cannot perform at all (as opposed to transient failures).
var ErrUnsupported = errors.New("operation not supported on this platform")

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Intersect returns the intersection of r and o. A disjoint pair yields a
// rectangle with zero width and/or height, never negative extents; its
// position is clamped to the nearer edge of the overlap region.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)

	x2 = max(x2, x1)
	y2 = max(y2, y1)

	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID      int
	Name    string
	Primary bool
	Bounds  Rect
	Usable  Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}

// Backend abstracts window-system operations across platforms. All methods
// must be called from the thread that owns the windowing event loop.
type Backend interface {
	// Displays returns all active displays.
	Displays() ([]Display, error)
	// PrimaryDisplay returns the primary display.
	PrimaryDisplay() (Display, error)
	// ActiveDisplay returns the display containing the focused window,
	// falling back to the primary display.
	ActiveDisplay() (Display, error)
	// DisplayFor returns the display containing the window's center,
	// falling back to the primary display.
	DisplayFor(id WindowID) (Display, error)

	// ListWindows returns the normal top-level windows known to the
	// window system.
	ListWindows() ([]Window, error)
	// ActiveWindow returns the currently focused top-level window.
	ActiveWindow() (WindowID, error)
	// FindWindowByTitle returns the first top-level window whose title
	// contains the given substring.
	FindWindowByTitle(substring string) (WindowID, error)

	// WindowBounds returns the window's on-screen rectangle including
	// the position of its top-left corner in screen coordinates.
	WindowBounds(id WindowID) (Rect, error)
	// IsMaximized reports whether the window is maximized.
	IsMaximized(id WindowID) (bool, error)
	// MoveResize moves and resizes a window to the given bounds,
	// unmaximizing it first if needed.
	MoveResize(id WindowID, bounds Rect) error
	// SetMaximized maximizes or restores a window.
	SetMaximized(id WindowID, maximized bool) error

	// Close releases the backend's window-system connection.
	Close() error
}
