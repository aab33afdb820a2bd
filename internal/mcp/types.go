package mcp

// RectInfo is a rectangle in screen coordinates.
type RectInfo struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DisplayInfo describes one display.
type DisplayInfo struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Primary bool     `json:"primary"`
	Bounds  RectInfo `json:"bounds"`
	Usable  RectInfo `json:"usable"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	TitleContains string `json:"title_contains,omitempty" jsonschema:"Only return windows whose title contains this substring"`
}

// WindowInfo describes one top-level window.
type WindowInfo struct {
	ID     uint64   `json:"id"`
	PID    int      `json:"pid,omitempty"`
	AppID  string   `json:"app_id,omitempty"`
	Title  string   `json:"title"`
	Bounds RectInfo `json:"bounds"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// GetDPIInput is the input for the get_dpi tool.
type GetDPIInput struct {
	WindowID uint64 `json:"window_id,omitempty" jsonschema:"Window to resolve for; omit for the primary display"`
}

// GetDPIOutput is the output for the get_dpi tool.
type GetDPIOutput struct {
	DPI int `json:"dpi"`
}

// CaptureWindowInput is the input for the capture_window tool.
type CaptureWindowInput struct {
	WindowID uint64 `json:"window_id,omitempty" jsonschema:"Window to capture; when omitted, title is used to find one"`
	Title    string `json:"title,omitempty" jsonschema:"Title substring used to find the window when window_id is omitted"`
	Name     string `json:"name,omitempty" jsonschema:"When set, the geometry string is persisted in the state file under this name"`
}

// CaptureWindowOutput is the output for the capture_window tool.
type CaptureWindowOutput struct {
	WindowID  uint64 `json:"window_id"`
	Geometry  string `json:"geometry"`
	Maximized bool   `json:"maximized"`
	Persisted bool   `json:"persisted"`
}

// RestoreWindowInput is the input for the restore_window tool.
type RestoreWindowInput struct {
	WindowID uint64 `json:"window_id,omitempty" jsonschema:"Window to restore; when omitted, title is used to find one"`
	Title    string `json:"title,omitempty" jsonschema:"Title substring used to find the window when window_id is omitted"`
	Name     string `json:"name,omitempty" jsonschema:"Name of a persisted geometry entry to restore from"`
	Geometry string `json:"geometry,omitempty" jsonschema:"Explicit geometry string (x; y; width; height; maximized) used instead of a persisted entry"`
}

// RestoreWindowOutput is the output for the restore_window tool.
type RestoreWindowOutput struct {
	WindowID  uint64   `json:"window_id"`
	Applied   RectInfo `json:"applied"`
	Maximized bool     `json:"maximized"`
}
