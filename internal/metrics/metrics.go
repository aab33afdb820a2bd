// Package metrics captures, serializes and restores a top-level window's
// screen geometry across application restarts.
package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/winkeep/internal/platform"
)

// WindowMetrics is a window's on-screen rectangle plus its maximized flag.
// It is an immutable-by-convention value type: captured from a live window
// or deserialized from a persisted string, then consumed to position a
// window or written back to storage.
type WindowMetrics struct {
	Rect      platform.Rect
	Maximized bool
}

// Capture reads the window's current screen rectangle and maximized state.
// No side effects beyond the reads.
func Capture(b platform.Backend, id platform.WindowID) (WindowMetrics, error) {
	rect, err := b.WindowBounds(id)
	if err != nil {
		return WindowMetrics{}, fmt.Errorf("failed to read window bounds: %w", err)
	}

	maximized, err := b.IsMaximized(id)
	if err != nil {
		return WindowMetrics{}, fmt.Errorf("failed to read maximized state: %w", err)
	}

	return WindowMetrics{Rect: rect, Maximized: maximized}, nil
}

// Serialize renders the metrics as five "; "-separated integers in fixed
// order: x; y; width; height; maximized(0|1). The fields are base-10
// integers and can never contain the separator, so no escaping is needed.
// This exact format is the persisted representation.
func (m WindowMetrics) Serialize() string {
	maximized := 0
	if m.Maximized {
		maximized = 1
	}
	return fmt.Sprintf("%d; %d; %d; %d; %d",
		m.Rect.X,
		m.Rect.Y,
		m.Rect.Width,
		m.Rect.Height,
		maximized,
	)
}

// Deserialize parses a persisted metrics string. It reports false when the
// input does not split into exactly five fields or when any field is not
// an integer.
//
// The maximized field is additionally coerced rather than validated: a
// parsed value with any bit set outside the low bit is forced to 0.
// Persisted files rely on garbage values restoring a visible,
// non-maximized window instead of failing the whole parse.
func Deserialize(s string) (WindowMetrics, bool) {
	fields := strings.Split(s, ";")
	if len(fields) != 5 {
		return WindowMetrics{}, false
	}

	var values [5]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return WindowMetrics{}, false
		}
		values[i] = v
	}

	if values[4]&^1 != 0 {
		values[4] = 0
	}

	return WindowMetrics{
		Rect: platform.Rect{
			X:      values[0],
			Y:      values[1],
			Width:  values[2],
			Height: values[3],
		},
		Maximized: values[4] != 0,
	}, true
}

// SanitizeForDisplay clips the stored rectangle against the target screen
// so a restored window is never placed off-screen. The rectangle is
// intersected with the screen (dimensions clamp to zero, never invert) and
// its top-left corner is pulled back to at most 80% of the screen's
// width/height from the screen's own origin, which keeps at least a corner
// of the window reachable when the saved position referenced a monitor
// layout that no longer exists.
func (m *WindowMetrics) SanitizeForDisplay(screen platform.Rect) {
	m.Rect = m.Rect.Intersect(screen)

	m.Rect.X = min(m.Rect.X, screen.X+4*screen.Width/5)
	m.Rect.Y = min(m.Rect.Y, screen.Y+4*screen.Height/5)
}

// String renders the serialized form in parentheses for logs.
func (m WindowMetrics) String() string {
	return "(" + m.Serialize() + ")"
}
