package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display.
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	X       int
	Y       int
	Width   int
	Height  int
}

// GetMonitors retrieves all active monitors using XRandR.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	primaryOutput := randr.Output(0)
	if prim, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = prim.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		primary := false
		for _, out := range crtcInfo.Outputs {
			if out == primaryOutput {
				primary = true
			}
		}
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    name,
			Primary: primary,
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	// When RandR does not report a primary output, treat the monitor at the
	// screen origin (or failing that, the first one) as primary.
	hasPrimary := false
	for i := range monitors {
		if monitors[i].Primary {
			hasPrimary = true
			break
		}
	}
	if !hasPrimary {
		idx := 0
		for i := range monitors {
			if monitors[i].X == 0 && monitors[i].Y == 0 {
				idx = i
				break
			}
		}
		monitors[idx].Primary = true
	}

	return monitors, nil
}

// GetPrimaryMonitor returns the primary monitor.
func (c *Connection) GetPrimaryMonitor() (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	return monitors[0], nil
}

// GetActiveMonitor returns the monitor containing the focused window,
// falling back to the monitor under the pointer and then to the primary.
func (c *Connection) GetActiveMonitor() (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}

	if activeWin, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && activeWin != 0 {
		if m, ok := c.monitorForWindow(monitors, activeWin); ok {
			return m, nil
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		for _, m := range monitors {
			if containsPoint(m, int(pointer.RootX), int(pointer.RootY)) {
				return m, nil
			}
		}
	}

	return c.GetPrimaryMonitor()
}

// GetMonitorForWindow returns the monitor containing the window's center,
// falling back to the primary monitor.
func (c *Connection) GetMonitorForWindow(windowID xproto.Window) (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if m, ok := c.monitorForWindow(monitors, windowID); ok {
		return m, nil
	}
	return c.GetPrimaryMonitor()
}

// WorkArea returns the monitor's geometry reduced to the usable work area
// (excluding panels and docks) when the window manager reports one.
func (c *Connection) WorkArea(m Monitor) Monitor {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return m
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	// Only adjust if the work area intersects this monitor.
	x1 := max(m.X, int(wa.X))
	y1 := max(m.Y, int(wa.Y))
	x2 := min(m.X+m.Width, int(wa.X)+int(wa.Width))
	y2 := min(m.Y+m.Height, int(wa.Y)+int(wa.Height))

	if x2 > x1 && y2 > y1 {
		m.X = x1
		m.Y = y1
		m.Width = x2 - x1
		m.Height = y2 - y1
	}
	return m
}

func (c *Connection) monitorForWindow(monitors []Monitor, windowID xproto.Window) (Monitor, bool) {
	rect, err := c.WindowGeometry(windowID)
	if err != nil {
		return Monitor{}, false
	}

	centerX := rect.X + rect.Width/2
	centerY := rect.Y + rect.Height/2

	for _, m := range monitors {
		if containsPoint(m, centerX, centerY) {
			return m, true
		}
	}
	return Monitor{}, false
}

func containsPoint(m Monitor, x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}
