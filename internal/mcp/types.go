package mcp

// CreateWindowInput is the input for the create_window tool.
type CreateWindowInput struct {
	Title  string `json:"title" jsonschema:"required,Display title for the new window"`
	X      *int   `json:"x,omitempty" jsonschema:"Optional x position. When omitted the window is placed automatically (centered if first, cascaded otherwise)."`
	Y      *int   `json:"y,omitempty" jsonschema:"Optional y position. Must be set together with x."`
	Width  int    `json:"width,omitempty" jsonschema:"Optional width in pixels. Omit for the daemon default."`
	Height int    `json:"height,omitempty" jsonschema:"Optional height in pixels. Omit for the daemon default."`
}

// WindowSummary describes one window in tool output.
type WindowSummary struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Z         int    `json:"z"`
	Minimized bool   `json:"minimized,omitempty"`
	Maximized bool   `json:"maximized,omitempty"`
	Hidden    bool   `json:"hidden,omitempty"`
	Focused   bool   `json:"focused,omitempty"`
	Workspace string `json:"workspace"`
}

// CreateWindowOutput is the output for the create_window tool.
type CreateWindowOutput struct {
	Window WindowSummary `json:"window"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

// WindowTargetInput addresses a window by id.
type WindowTargetInput struct {
	WindowID int `json:"window_id" jsonschema:"required,Id of the target window"`
}

// WindowOpOutput is the output for simple per-window operations.
type WindowOpOutput struct {
	WindowID int    `json:"window_id"`
	Action   string `json:"action"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	WindowID int `json:"window_id" jsonschema:"required,Id of the target window"`
	X        int `json:"x" jsonschema:"required,New x position in pixels"`
	Y        int `json:"y" jsonschema:"required,New y position in pixels"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	WindowID int `json:"window_id" jsonschema:"required,Id of the target window"`
	Width    int `json:"width" jsonschema:"required,New width in pixels"`
	Height   int `json:"height" jsonschema:"required,New height in pixels"`
}

// SnapWindowInput is the input for the snap_window tool.
type SnapWindowInput struct {
	WindowID int    `json:"window_id" jsonschema:"required,Id of the target window"`
	Region   string `json:"region" jsonschema:"required,Target region: left-half, right-half, top-half, bottom-half, top-left, top-right, bottom-left, bottom-right, or full"`
}

// ListWorkspacesInput is the input for the list_workspaces tool.
type ListWorkspacesInput struct{}

// WorkspaceSummary describes one workspace in tool output.
type WorkspaceSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	WindowCount int    `json:"window_count"`
	Active      bool   `json:"active,omitempty"`
}

// ListWorkspacesOutput is the output for the list_workspaces tool.
type ListWorkspacesOutput struct {
	Workspaces []WorkspaceSummary `json:"workspaces"`
}

// WorkspaceTargetInput addresses a workspace by name.
type WorkspaceTargetInput struct {
	Name string `json:"name" jsonschema:"required,Workspace name"`
}

// WorkspaceOpOutput is the output for simple workspace operations.
type WorkspaceOpOutput struct {
	Name   string `json:"name"`
	Action string `json:"action"`
}

// MoveToWorkspaceInput is the input for the move_to_workspace tool.
type MoveToWorkspaceInput struct {
	WindowID  int    `json:"window_id" jsonschema:"required,Id of the window to move"`
	Workspace string `json:"workspace" jsonschema:"required,Destination workspace name"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	WindowCount     int    `json:"window_count"`
	WorkspaceCount  int    `json:"workspace_count"`
	ActiveWorkspace string `json:"active_workspace"`
	FocusedWindow   int    `json:"focused_window"`
	ViewportWidth   int    `json:"viewport_width"`
	ViewportHeight  int    `json:"viewport_height"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}
