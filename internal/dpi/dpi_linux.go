//go:build linux

package dpi

import (
	"github.com/1broseidon/winkeep/internal/platform"
	"github.com/1broseidon/winkeep/internal/x11"
)

// On X11 pixel density is a per-screen notion; the window argument does
// not change the answer. The chain prefers the desktop environment's
// Xft.dpi setting, which reflects user-configured scaling, over raw
// physical dimensions.
func newPlatformResolver() *Resolver {
	return NewResolver(Capability{
		Name: "x11",
		Probe: func() QueryFunc {
			// The connection opened here lives for the rest of the
			// process, like the memoized symbol lookups on Windows.
			conn, err := x11.NewConnection()
			if err != nil {
				return nil
			}
			return func(_ platform.WindowID) int {
				if v, ok := conn.ResourceDPI(); ok {
					return v
				}
				if v, ok := conn.PhysicalDPI(); ok {
					return v
				}
				return Default
			}
		},
	})
}
