package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Geometry is a window's on-screen rectangle in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

const (
	stateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
)

// EWMH _NET_WM_STATE actions.
const (
	stateRemove = 0
	stateAdd    = 1
)

// WindowGeometry returns the window's rectangle translated into root
// (screen) coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get window geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// IsMaximized reports whether the window carries both EWMH maximized states.
func (c *Connection) IsMaximized(windowID xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false, fmt.Errorf("failed to get window state: %w", err)
	}

	hasMaxH := false
	hasMaxV := false
	for _, state := range states {
		switch state {
		case stateMaximizedHorz:
			hasMaxH = true
		case stateMaximizedVert:
			hasMaxV = true
		}
	}
	return hasMaxH && hasMaxV, nil
}

// SetMaximized adds or removes both EWMH maximized states.
func (c *Connection) SetMaximized(windowID xproto.Window, maximized bool) error {
	action := stateRemove
	if maximized {
		action = stateAdd
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, stateMaximizedHorz); err != nil {
		return fmt.Errorf("failed to change horizontal maximized state: %w", err)
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, stateMaximizedVert); err != nil {
		return fmt.Errorf("failed to change vertical maximized state: %w", err)
	}
	return nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
// A maximized window is restored first, otherwise most window managers
// ignore the request.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if maximized, err := c.IsMaximized(windowID); err == nil && maximized {
		// Best effort; some windows do not support state changes.
		_ = c.SetMaximized(windowID, false)
	}

	// Use EWMH MoveResize for better WM compatibility.
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height)
	if err != nil {
		// Fallback to direct window manipulation.
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// GetActiveWindow returns the focused window per _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// IsNormalWindow checks if a window is a normal application window.
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine the type, assume it's normal.
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal.
	return len(types) == 0
}

// ListClients returns the EWMH client list filtered to normal windows.
func (c *Connection) ListClients() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	normal := clients[:0]
	for _, win := range clients {
		if c.IsNormalWindow(win) {
			normal = append(normal, win)
		}
	}
	return normal, nil
}

// WindowTitle returns the window's title, preferring _NET_WM_NAME over the
// legacy ICCCM name.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	return ""
}

// WindowAppID returns the window's WM_CLASS class name.
func (c *Connection) WindowAppID(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowPID returns the window owner's process ID, or 0 if unknown.
func (c *Connection) WindowPID(windowID xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return int(pid)
}

// FindWindowByTitle searches the EWMH client list for a window whose title
// contains the given substring. Returns the first match.
func (c *Connection) FindWindowByTitle(substring string) (xproto.Window, error) {
	if substring == "" {
		return 0, fmt.Errorf("title substring must not be empty")
	}

	clients, err := c.ListClients()
	if err != nil {
		return 0, err
	}
	for _, win := range clients {
		if strings.Contains(c.WindowTitle(win), substring) {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}
