// Package mcp exposes window and workspace management as MCP tools so AI
// agents can drive the desktop through the running daemon.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/ipc"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Server is the MCP server. Every tool call is forwarded to the daemon over
// its IPC socket, so the daemon stays the single owner of window state.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates an MCP server backed by the daemon's IPC socket. The
// daemon must be running; tool calls fail with a clear error otherwise.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
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
		Name:        "get_status",
		Description: "Get daemon status: window and workspace counts, the active workspace, the focused window, and the current viewport size.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every window across all workspaces with geometry, stacking position, and state flags.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_window",
		Description: "Create a new window on the active workspace. Position and size are optional; omitted values use automatic placement (first window centered, later ones cascaded) and the configured default size. The new window receives focus.",
	}, s.handleCreateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Give a window input focus and raise it to the top of the stack. Fails for minimized or hidden windows.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window permanently. Focus transfers to the topmost remaining window.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to a new position. The committed position is clamped to the viewport. Fails for maximized, minimized, or non-draggable windows.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window. The size is clamped to the window's min/max constraints and the viewport rather than rejected.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window, removing it from display. Focus transfers to the topmost remaining window.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Maximize a window to fill the viewport. Its previous geometry is saved and recovered by restore_window.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized or maximized window to its normal geometry and focus it.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_window",
		Description: "Snap a window to a preset region of the viewport: a half (left-half, right-half, top-half, bottom-half), a quarter (top-left, top-right, bottom-left, bottom-right), or full.",
	}, s.handleSnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List all workspaces with their window counts and which one is active.",
	}, s.handleListWorkspaces)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_workspace",
		Description: "Create a new named workspace. The workspace is not activated; use switch_workspace for that.",
	}, s.handleCreateWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Activate a workspace by name. Focus is restored to the window that was focused when the workspace was last active.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "delete_workspace",
		Description: "Delete a workspace by name. Its windows are moved to the default workspace, never closed. The default workspace cannot be deleted.",
	}, s.handleDeleteWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_to_workspace",
		Description: "Move a window to another workspace without changing its geometry.",
	}, s.handleMoveToWorkspace)
}
