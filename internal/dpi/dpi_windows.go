//go:build windows

package dpi

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/winkeep/internal/platform"
)

// Lazily loaded symbols. LazyProc memoizes the lookup (including failure)
// on first use, which also makes concurrent first calls a benign race:
// every racer computes the same address.
var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procGetDpiForWindow   = user32.NewProc("GetDpiForWindow")
	procGetDesktopWindow  = user32.NewProc("GetDesktopWindow")
	procMonitorFromWindow = user32.NewProc("MonitorFromWindow")
	procGetDC             = user32.NewProc("GetDC")
	procReleaseDC         = user32.NewProc("ReleaseDC")
	procGetDpiForMonitor  = shcore.NewProc("GetDpiForMonitor")
	procGetDeviceCaps     = gdi32.NewProc("GetDeviceCaps")
)

const (
	mdtEffectiveDPI         = 0
	monitorDefaultToNearest = 2
	logPixelsX              = 88
	sOK                     = 0
)

// targetHWND maps the abstract handle onto a concrete HWND. The desktop
// window stands in for "the primary display".
func targetHWND(win platform.WindowID) uintptr {
	if win != platform.None {
		return uintptr(win)
	}
	hwnd, _, _ := procGetDesktopWindow.Call()
	return hwnd
}

func newPlatformResolver() *Resolver {
	return NewResolver(
		// Windows 10+: per-window DPI.
		Capability{
			Name: "GetDpiForWindow",
			Probe: func() QueryFunc {
				if procGetDpiForWindow.Find() != nil {
					return nil
				}
				return func(win platform.WindowID) int {
					// GetDpiForWindow reports 0 for an invalid handle,
					// never a real density. The resolver's contract is a
					// positive integer, so 0 maps to the default instead
					// of being returned raw.
					dpi, _, _ := procGetDpiForWindow.Call(targetHWND(win))
					if dpi == 0 {
						return Default
					}
					return int(dpi)
				}
			},
		},
		// Windows 8.1: per-monitor DPI. MonitorFromWindow exists on all
		// Windows versions, so only the shcore symbol needs probing.
		Capability{
			Name: "GetDpiForMonitor",
			Probe: func() QueryFunc {
				if procGetDpiForMonitor.Find() != nil {
					return nil
				}
				return func(win platform.WindowID) int {
					monitor, _, _ := procMonitorFromWindow.Call(targetHWND(win), monitorDefaultToNearest)
					var dpiX, dpiY uint32
					hr, _, _ := procGetDpiForMonitor.Call(
						monitor,
						mdtEffectiveDPI,
						uintptr(unsafe.Pointer(&dpiX)),
						uintptr(unsafe.Pointer(&dpiY)),
					)
					if hr != sOK || dpiX == 0 {
						return Default
					}
					return int(dpiX)
				}
			},
		},
		// Older Windows: device-context pixel density.
		Capability{
			Name: "GetDeviceCaps",
			Probe: func() QueryFunc {
				if procGetDC.Find() != nil || procGetDeviceCaps.Find() != nil {
					return nil
				}
				return func(win platform.WindowID) int {
					hwnd := targetHWND(win)
					hdc, _, _ := procGetDC.Call(hwnd)
					if hdc == 0 {
						return Default
					}
					defer procReleaseDC.Call(hwnd, hdc)

					dpi, _, _ := procGetDeviceCaps.Call(hdc, logPixelsX)
					if dpi == 0 {
						return Default
					}
					return int(dpi)
				}
			},
		},
	)
}
