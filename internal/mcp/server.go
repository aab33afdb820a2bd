// Package mcp exposes winkeep's window-geometry operations as MCP tools
// over stdio, so agent tooling can inspect displays, capture window
// placement, and restore it.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winkeep/internal/platform"
	"github.com/1broseidon/winkeep/internal/store"
)

const (
	ServerName    = "winkeep"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for window geometry persistence.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   platform.Backend
	store     *store.Store
}

// NewServer creates an MCP server over the given platform backend and
// geometry store.
func NewServer(backend platform.Backend, st *store.Store) *Server {
	s := &Server{
		backend: backend,
		store:   st,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the active displays with their bounds and usable work areas in screen coordinates.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the normal top-level windows with their IDs, titles and screen rectangles. Optionally filter by a title substring.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_dpi",
		Description: "Resolve the effective DPI for a window, or for the primary display when no window is given. Always answers; falls back to the platform default when no capability can tell.",
	}, s.handleGetDPI)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "capture_window",
		Description: "Capture a window's screen rectangle and maximized state as a compact geometry string, optionally persisting it under a name for later restore.",
	}, s.handleCaptureWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a window's geometry from a persisted name or an explicit geometry string. The rectangle is sanitized against the window's display so the window never ends up off-screen.",
	}, s.handleRestoreWindow)
}
