package metrics

import (
	"testing"

	"github.com/1broseidon/winkeep/internal/platform"
)

func TestSerialize_Format(t *testing.T) {
	m := WindowMetrics{
		Rect:      platform.Rect{X: 10, Y: 20, Width: 300, Height: 400},
		Maximized: true,
	}
	if got, want := m.Serialize(), "10; 20; 300; 400; 1"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	m.Maximized = false
	if got, want := m.Serialize(), "10; 20; 300; 400; 0"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []WindowMetrics{
		{Rect: platform.Rect{X: 0, Y: 0, Width: 0, Height: 0}, Maximized: false},
		{Rect: platform.Rect{X: -100, Y: -50, Width: 640, Height: 480}, Maximized: true},
		{Rect: platform.Rect{X: 1920, Y: 1080, Width: 1, Height: 1}, Maximized: false},
		{Rect: platform.Rect{X: 10, Y: 20, Width: 300, Height: 400}, Maximized: true},
	}
	for _, m := range cases {
		got, ok := Deserialize(m.Serialize())
		if !ok {
			t.Fatalf("deserialize failed for %v", m)
		}
		if got != m {
			t.Fatalf("round trip mismatch: sent %v, got %v", m, got)
		}
	}
}

func TestDeserialize_RejectsWrongArity(t *testing.T) {
	for _, s := range []string{
		"",
		"1",
		"1; 2; 3",
		"1; 2; 3; 4",
		"1; 2; 3; 4; 5; 6",
	} {
		if _, ok := Deserialize(s); ok {
			t.Fatalf("expected %q to fail", s)
		}
	}
}

func TestDeserialize_RejectsNonNumericFields(t *testing.T) {
	for _, s := range []string{
		"a; 2; 3; 4; 0",
		"1; 2; 3.5; 4; 0",
		"1; 2; 3; four; 0",
		"1; 2; 3; 4; x",
	} {
		if _, ok := Deserialize(s); ok {
			t.Fatalf("expected %q to fail", s)
		}
	}
}

func TestDeserialize_MaximizedFlagCoercion(t *testing.T) {
	cases := []struct {
		input     string
		maximized bool
	}{
		{"10; 20; 300; 400; 0", false},
		{"10; 20; 300; 400; 1", true},
		// Any bit outside the low bit forces "not maximized", even when
		// the low bit itself is set.
		{"10; 20; 300; 400; 2", false},
		{"10; 20; 300; 400; 3", false},
		{"10; 20; 300; 400; -1", false},
		{"10; 20; 300; 400; 100", false},
	}
	for _, c := range cases {
		m, ok := Deserialize(c.input)
		if !ok {
			t.Fatalf("expected %q to parse", c.input)
		}
		if m.Maximized != c.maximized {
			t.Fatalf("%q: expected maximized=%v, got %v", c.input, c.maximized, m.Maximized)
		}
		if (m.Rect != platform.Rect{X: 10, Y: 20, Width: 300, Height: 400}) {
			t.Fatalf("%q: rect corrupted: %v", c.input, m.Rect)
		}
	}
}

func TestSanitizeForDisplay_ClampsInsideScreen(t *testing.T) {
	screen := platform.Rect{X: 0, Y: 0, Width: 1000, Height: 500}

	m := WindowMetrics{Rect: platform.Rect{X: 900, Y: 450, Width: 400, Height: 300}}
	m.SanitizeForDisplay(screen)

	if m.Rect.Width != 100 || m.Rect.Height != 50 {
		t.Fatalf("expected size clipped to 100x50, got %dx%d", m.Rect.Width, m.Rect.Height)
	}
	if m.Rect.X > 800 || m.Rect.Y > 400 {
		t.Fatalf("expected top-left within 80%% of screen, got (%d, %d)", m.Rect.X, m.Rect.Y)
	}
}

func TestSanitizeForDisplay_FullyOffscreenNeverNegative(t *testing.T) {
	screen := platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	m := WindowMetrics{Rect: platform.Rect{X: 5000, Y: 5000, Width: 800, Height: 600}}
	m.SanitizeForDisplay(screen)

	if m.Rect.Width < 0 || m.Rect.Height < 0 {
		t.Fatalf("expected non-negative extents, got %dx%d", m.Rect.Width, m.Rect.Height)
	}
	if m.Rect.X > 1536 || m.Rect.Y > 864 {
		t.Fatalf("expected top-left pulled within 80%% of screen, got (%d, %d)", m.Rect.X, m.Rect.Y)
	}
}

func TestSanitizeForDisplay_80PercentRuleUsesScreenOrigin(t *testing.T) {
	// Secondary monitor placed to the right of a 1920-wide primary.
	screen := platform.Rect{X: 1920, Y: 0, Width: 1000, Height: 1000}

	m := WindowMetrics{Rect: platform.Rect{X: 2900, Y: 950, Width: 500, Height: 400}}
	m.SanitizeForDisplay(screen)

	if m.Rect.X > 1920+800 {
		t.Fatalf("expected x clamped to screen origin + 80%% width, got %d", m.Rect.X)
	}
	if m.Rect.Y > 0+800 {
		t.Fatalf("expected y clamped to screen origin + 80%% height, got %d", m.Rect.Y)
	}
}

func TestSanitizeForDisplay_80PercentProperty(t *testing.T) {
	screen := platform.Rect{X: -200, Y: 100, Width: 1280, Height: 720}
	limitX := screen.X + 4*screen.Width/5
	limitY := screen.Y + 4*screen.Height/5

	rects := []platform.Rect{
		{X: -10000, Y: -10000, Width: 50, Height: 50},
		{X: 10000, Y: 10000, Width: 50, Height: 50},
		{X: 0, Y: 0, Width: 5000, Height: 5000},
		{X: 600, Y: 400, Width: 100, Height: 100},
	}
	for _, r := range rects {
		m := WindowMetrics{Rect: r}
		m.SanitizeForDisplay(screen)
		if m.Rect.X > limitX || m.Rect.Y > limitY {
			t.Fatalf("rect %v: top-left (%d, %d) beyond 80%% limits (%d, %d)",
				r, m.Rect.X, m.Rect.Y, limitX, limitY)
		}
		if m.Rect.Width < 0 || m.Rect.Height < 0 {
			t.Fatalf("rect %v: negative extents %dx%d", r, m.Rect.Width, m.Rect.Height)
		}
	}
}

func TestSanitizeForDisplay_InteriorWindowUntouched(t *testing.T) {
	screen := platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	original := platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}

	m := WindowMetrics{Rect: original, Maximized: true}
	m.SanitizeForDisplay(screen)

	if m.Rect != original {
		t.Fatalf("expected interior rect unchanged, got %v", m.Rect)
	}
	if !m.Maximized {
		t.Fatalf("sanitize must not touch the maximized flag")
	}
}

func TestString_WrapsSerializedForm(t *testing.T) {
	m := WindowMetrics{Rect: platform.Rect{X: 1, Y: 2, Width: 3, Height: 4}}
	if got, want := m.String(), "(1; 2; 3; 4; 0)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
