//go:build windows

package platform

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumDisplayMonitors      = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW          = user32.NewProc("GetMonitorInfoW")
	procMonitorFromWindow        = user32.NewProc("MonitorFromWindow")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procIsZoomed                 = user32.NewProc("IsZoomed")
	procMoveWindow               = user32.NewProc("MoveWindow")
	procShowWindow               = user32.NewProc("ShowWindow")
)

const (
	monitorDefaultToNearest = 2
	monitorInfoPrimary      = 1

	swRestore  = 9
	swMaximize = 3
)

type win32Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type monitorInfoEx struct {
	CbSize    uint32
	RcMonitor win32Rect
	RcWork    win32Rect
	DwFlags   uint32
	Device    [32]uint16
}

// WindowsBackend implements Backend on top of raw user32 calls.
type WindowsBackend struct{}

var _ Backend = (*WindowsBackend)(nil)

// New returns a Windows platform backend. There is no connection to open;
// the Win32 API is process-global.
func New() (Backend, error) {
	return &WindowsBackend{}, nil
}

// Close is a no-op on Windows.
func (b *WindowsBackend) Close() error {
	return nil
}

type enumeratedMonitor struct {
	handle  uintptr
	display Display
}

// Enumeration callbacks are created exactly once. The runtime never
// releases callback memory and caps how many callbacks a process may
// create, so per-call state travels through the lparam argument instead
// of a closure.
var (
	enumMonitorsCallback = windows.NewCallback(func(hMonitor, hdc, lprc, lparam uintptr) uintptr {
		acc := (*[]enumeratedMonitor)(unsafe.Pointer(lparam))

		var mi monitorInfoEx
		mi.CbSize = uint32(unsafe.Sizeof(mi))
		ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
		if ret == 0 {
			return 1 // continue enumeration
		}

		*acc = append(*acc, enumeratedMonitor{
			handle: hMonitor,
			display: Display{
				ID:      len(*acc),
				Name:    windows.UTF16ToString(mi.Device[:]),
				Primary: mi.DwFlags&monitorInfoPrimary != 0,
				Bounds:  rectFromWin32(mi.RcMonitor),
				Usable:  rectFromWin32(mi.RcWork),
			},
		})
		return 1
	})

	enumWindowsCallback = windows.NewCallback(func(hwnd, lparam uintptr) uintptr {
		acc := (*[]Window)(unsafe.Pointer(lparam))

		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1
		}

		title := windowText(hwnd)
		if title == "" {
			return 1
		}

		bounds, err := windowRect(hwnd)
		if err != nil {
			return 1
		}

		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

		*acc = append(*acc, Window{
			ID:     WindowID(hwnd),
			PID:    int(pid),
			Title:  title,
			Bounds: bounds,
		})
		return 1
	})
)

func enumMonitors() ([]enumeratedMonitor, error) {
	var monitors []enumeratedMonitor

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumMonitorsCallback, uintptr(unsafe.Pointer(&monitors)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", err)
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}
	return monitors, nil
}

// Displays returns all active displays.
func (b *WindowsBackend) Displays() ([]Display, error) {
	monitors, err := enumMonitors()
	if err != nil {
		return nil, err
	}
	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, m.display)
	}
	return displays, nil
}

// PrimaryDisplay returns the primary display.
func (b *WindowsBackend) PrimaryDisplay() (Display, error) {
	monitors, err := enumMonitors()
	if err != nil {
		return Display{}, err
	}
	for _, m := range monitors {
		if m.display.Primary {
			return m.display, nil
		}
	}
	return monitors[0].display, nil
}

// ActiveDisplay returns the display containing the foreground window.
func (b *WindowsBackend) ActiveDisplay() (Display, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return b.DisplayFor(WindowID(hwnd))
}

// DisplayFor returns the display containing the window, falling back to
// the primary display.
func (b *WindowsBackend) DisplayFor(id WindowID) (Display, error) {
	if id == None {
		return b.PrimaryDisplay()
	}

	hMonitor, _, _ := procMonitorFromWindow.Call(uintptr(id), monitorDefaultToNearest)
	if hMonitor == 0 {
		return b.PrimaryDisplay()
	}

	monitors, err := enumMonitors()
	if err != nil {
		return Display{}, err
	}
	for _, m := range monitors {
		if m.handle == hMonitor {
			return m.display, nil
		}
	}
	return b.PrimaryDisplay()
}

// ListWindows returns the visible, titled top-level windows.
func (b *WindowsBackend) ListWindows() ([]Window, error) {
	var windowsOut []Window

	ret, _, err := procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(&windowsOut)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}

	sort.Slice(windowsOut, func(i, j int) bool {
		return windowsOut[i].ID < windowsOut[j].ID
	})
	return windowsOut, nil
}

// ActiveWindow returns the foreground window.
func (b *WindowsBackend) ActiveWindow() (WindowID, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return None, fmt.Errorf("no foreground window")
	}
	return WindowID(hwnd), nil
}

// FindWindowByTitle returns the first visible window whose title contains
// the given substring.
func (b *WindowsBackend) FindWindowByTitle(substring string) (WindowID, error) {
	if substring == "" {
		return None, fmt.Errorf("title substring must not be empty")
	}

	all, err := b.ListWindows()
	if err != nil {
		return None, err
	}
	for _, w := range all {
		if strings.Contains(w.Title, substring) {
			return w.ID, nil
		}
	}
	return None, fmt.Errorf("no window found with title containing %q", substring)
}

// WindowBounds returns the window's outer rectangle in screen coordinates.
func (b *WindowsBackend) WindowBounds(id WindowID) (Rect, error) {
	return windowRect(uintptr(id))
}

// IsMaximized reports whether the window is maximized.
func (b *WindowsBackend) IsMaximized(id WindowID) (bool, error) {
	zoomed, _, _ := procIsZoomed.Call(uintptr(id))
	return zoomed != 0, nil
}

// MoveResize restores and repositions a window.
func (b *WindowsBackend) MoveResize(id WindowID, bounds Rect) error {
	if maximized, _ := b.IsMaximized(id); maximized {
		procShowWindow.Call(uintptr(id), swRestore)
	}

	const repaint = 1
	ret, _, err := procMoveWindow.Call(
		uintptr(id),
		uintptr(bounds.X),
		uintptr(bounds.Y),
		uintptr(bounds.Width),
		uintptr(bounds.Height),
		repaint,
	)
	if ret == 0 {
		return fmt.Errorf("MoveWindow failed: %w", err)
	}
	return nil
}

// SetMaximized maximizes or restores a window.
func (b *WindowsBackend) SetMaximized(id WindowID, maximized bool) error {
	cmd := uintptr(swRestore)
	if maximized {
		cmd = swMaximize
	}
	procShowWindow.Call(uintptr(id), cmd)
	return nil
}

func windowRect(hwnd uintptr) (Rect, error) {
	var r win32Rect
	ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, fmt.Errorf("GetWindowRect failed: %w", err)
	}
	return rectFromWin32(r), nil
}

func windowText(hwnd uintptr) string {
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return ""
	}

	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func rectFromWin32(r win32Rect) Rect {
	return Rect{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}
}
