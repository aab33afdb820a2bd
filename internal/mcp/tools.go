package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winkeep/internal/dpi"
	"github.com/1broseidon/winkeep/internal/metrics"
	"github.com/1broseidon/winkeep/internal/platform"
)

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.backend.Displays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("failed to list displays: %w", err)
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		out.Displays = append(out.Displays, DisplayInfo{
			ID:      d.ID,
			Name:    d.Name,
			Primary: d.Primary,
			Bounds:  rectInfo(d.Bounds),
			Usable:  rectInfo(d.Usable),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.backend.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		if args.TitleContains != "" && !strings.Contains(w.Title, args.TitleContains) {
			continue
		}
		out.Windows = append(out.Windows, WindowInfo{
			ID:     uint64(w.ID),
			PID:    w.PID,
			AppID:  w.AppID,
			Title:  w.Title,
			Bounds: rectInfo(w.Bounds),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetDPI(_ context.Context, _ *mcpsdk.CallToolRequest, args GetDPIInput) (*mcpsdk.CallToolResult, GetDPIOutput, error) {
	return nil, GetDPIOutput{DPI: dpi.Resolve(platform.WindowID(args.WindowID))}, nil
}

func (s *Server) handleCaptureWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CaptureWindowInput) (*mcpsdk.CallToolResult, CaptureWindowOutput, error) {
	id, err := s.resolveWindow(args.WindowID, args.Title)
	if err != nil {
		return nil, CaptureWindowOutput{}, err
	}

	m, err := metrics.Capture(s.backend, id)
	if err != nil {
		return nil, CaptureWindowOutput{}, err
	}

	out := CaptureWindowOutput{
		WindowID:  uint64(id),
		Geometry:  m.Serialize(),
		Maximized: m.Maximized,
	}

	if args.Name != "" {
		if s.store == nil {
			return nil, CaptureWindowOutput{}, fmt.Errorf("no state file available for persisting")
		}
		s.store.Set(args.Name, out.Geometry)
		if err := s.store.Save(); err != nil {
			return nil, CaptureWindowOutput{}, err
		}
		out.Persisted = true
	}
	return nil, out, nil
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args RestoreWindowInput) (*mcpsdk.CallToolResult, RestoreWindowOutput, error) {
	id, err := s.resolveWindow(args.WindowID, args.Title)
	if err != nil {
		return nil, RestoreWindowOutput{}, err
	}

	serialized := args.Geometry
	if serialized == "" {
		if args.Name == "" {
			return nil, RestoreWindowOutput{}, fmt.Errorf("either name or geometry is required")
		}
		if s.store == nil {
			return nil, RestoreWindowOutput{}, fmt.Errorf("no state file available")
		}
		var ok bool
		serialized, ok = s.store.Get(args.Name)
		if !ok {
			return nil, RestoreWindowOutput{}, fmt.Errorf("no persisted geometry named %q", args.Name)
		}
	}

	m, err := restoreMetrics(s.backend, id, serialized)
	if err != nil {
		return nil, RestoreWindowOutput{}, err
	}

	return nil, RestoreWindowOutput{
		WindowID:  uint64(id),
		Applied:   rectInfo(m.Rect),
		Maximized: m.Maximized,
	}, nil
}

// restoreMetrics deserializes, sanitizes against the window's display and
// applies the result. Malformed geometry is the caller's error to handle;
// the window is left untouched.
func restoreMetrics(b platform.Backend, id platform.WindowID, serialized string) (metrics.WindowMetrics, error) {
	m, ok := metrics.Deserialize(serialized)
	if !ok {
		return metrics.WindowMetrics{}, fmt.Errorf("malformed geometry string %q", serialized)
	}

	display, err := b.DisplayFor(id)
	if err != nil {
		return metrics.WindowMetrics{}, fmt.Errorf("failed to resolve display: %w", err)
	}
	m.SanitizeForDisplay(display.Usable)

	if err := b.MoveResize(id, m.Rect); err != nil {
		return metrics.WindowMetrics{}, fmt.Errorf("failed to apply geometry: %w", err)
	}
	if m.Maximized {
		if err := b.SetMaximized(id, true); err != nil {
			return metrics.WindowMetrics{}, fmt.Errorf("failed to maximize: %w", err)
		}
	}
	return m, nil
}

func (s *Server) resolveWindow(id uint64, title string) (platform.WindowID, error) {
	if id != 0 {
		return platform.WindowID(id), nil
	}
	if title == "" {
		return platform.None, fmt.Errorf("either window_id or title is required")
	}
	return s.backend.FindWindowByTitle(title)
}

func rectInfo(r platform.Rect) RectInfo {
	return RectInfo{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
