package x11

import (
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgbutil/xprop"
)

// ResourceDPI returns the Xft.dpi value from the root window's
// RESOURCE_MANAGER property, the conventional place desktop environments
// publish the user's font scaling. Returns false when the property is
// missing or carries no parsable Xft.dpi entry.
func (c *Connection) ResourceDPI() (int, bool) {
	value, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, "RESOURCE_MANAGER"))
	if err != nil {
		return 0, false
	}

	for _, line := range strings.Split(value, "\n") {
		key, rest, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return int(math.Round(dpi)), true
	}
	return 0, false
}

// PhysicalDPI derives the horizontal pixel density from the default
// screen's reported physical dimensions. Returns false when the X server
// reports no physical size (common with virtual displays).
func (c *Connection) PhysicalDPI() (int, bool) {
	screen := c.XUtil.Screen()
	if screen == nil || screen.WidthInMillimeters == 0 {
		return 0, false
	}

	const mmPerInch = 25.4
	dpi := int(math.Round(float64(screen.WidthInPixels) * mmPerInch / float64(screen.WidthInMillimeters)))
	if dpi <= 0 {
		return 0, false
	}
	return dpi, true
}
