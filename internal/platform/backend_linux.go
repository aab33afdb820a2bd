//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/1broseidon/winkeep/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// New opens a fresh X11 connection and returns a Linux backend for it.
func New() (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// NewLinuxBackend creates a Linux backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Connection returns the underlying X11 connection for X11-specific
// operations such as the event loop and window hooks.
func (b *LinuxBackend) Connection() *x11.Connection {
	return b.conn
}

// XUtil returns the underlying xgbutil connection.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// Close disconnects from the X11 server.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
	return nil
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, b.displayFromMonitor(m))
	}
	return displays, nil
}

// PrimaryDisplay returns the primary display.
func (b *LinuxBackend) PrimaryDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}
	m, err := conn.GetPrimaryMonitor()
	if err != nil {
		return Display{}, err
	}
	return b.displayFromMonitor(m), nil
}

// ActiveDisplay returns the display containing the focused window.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}
	m, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}
	return b.displayFromMonitor(m), nil
}

// DisplayFor returns the display containing the window's center.
func (b *LinuxBackend) DisplayFor(id WindowID) (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}
	if id == None {
		return b.PrimaryDisplay()
	}
	m, err := conn.GetMonitorForWindow(xproto.Window(id))
	if err != nil {
		return Display{}, err
	}
	return b.displayFromMonitor(m), nil
}

// ListWindows returns the normal top-level windows on the current desktop.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ListClients()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		geom, err := conn.WindowGeometry(windowID)
		if err != nil {
			continue
		}
		windows = append(windows, Window{
			ID:     WindowID(windowID),
			PID:    conn.WindowPID(windowID),
			AppID:  conn.WindowAppID(windowID),
			Title:  conn.WindowTitle(windowID),
			Bounds: rectFromGeometry(geom),
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})
	return windows, nil
}

// ActiveWindow returns the currently focused window.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return None, err
	}
	wid, err := conn.GetActiveWindow()
	if err != nil {
		return None, err
	}
	return WindowID(wid), nil
}

// FindWindowByTitle returns the first window whose title contains substring.
func (b *LinuxBackend) FindWindowByTitle(substring string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return None, err
	}
	wid, err := conn.FindWindowByTitle(substring)
	if err != nil {
		return None, err
	}
	return WindowID(wid), nil
}

// WindowBounds returns the window's on-screen rectangle.
func (b *LinuxBackend) WindowBounds(id WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	geom, err := conn.WindowGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, err
	}
	return rectFromGeometry(geom), nil
}

// IsMaximized reports whether the window is maximized.
func (b *LinuxBackend) IsMaximized(id WindowID) (bool, error) {
	conn, err := b.connection()
	if err != nil {
		return false, err
	}
	return conn.IsMaximized(xproto.Window(id))
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(id WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(
		xproto.Window(id),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// SetMaximized maximizes or restores a window via EWMH state requests.
func (b *LinuxBackend) SetMaximized(id WindowID, maximized bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetMaximized(xproto.Window(id), maximized)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) displayFromMonitor(m x11.Monitor) Display {
	bounds := Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	usable := bounds
	if b.conn != nil {
		wa := b.conn.WorkArea(m)
		usable = Rect{X: wa.X, Y: wa.Y, Width: wa.Width, Height: wa.Height}
	}
	return Display{
		ID:      m.ID,
		Name:    m.Name,
		Primary: m.Primary,
		Bounds:  bounds,
		Usable:  usable,
	}
}

func rectFromGeometry(g x11.Geometry) Rect {
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}
