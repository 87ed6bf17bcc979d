package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload          CommandType = "RELOAD"
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandListWindows     CommandType = "LIST_WINDOWS"
	CommandCreateWindow    CommandType = "CREATE_WINDOW"
	CommandFocusWindow     CommandType = "FOCUS_WINDOW"
	CommandCloseWindow     CommandType = "CLOSE_WINDOW"
	CommandMoveWindow      CommandType = "MOVE_WINDOW"
	CommandResizeWindow    CommandType = "RESIZE_WINDOW"
	CommandMinimizeWindow  CommandType = "MINIMIZE_WINDOW"
	CommandMaximizeWindow  CommandType = "MAXIMIZE_WINDOW"
	CommandRestoreWindow   CommandType = "RESTORE_WINDOW"
	CommandSnapWindow      CommandType = "SNAP_WINDOW"
	CommandListWorkspaces  CommandType = "LIST_WORKSPACES"
	CommandCreateWorkspace CommandType = "CREATE_WORKSPACE"
	CommandSwitchWorkspace CommandType = "SWITCH_WORKSPACE"
	CommandDeleteWorkspace CommandType = "DELETE_WORKSPACE"
	CommandMoveToWorkspace CommandType = "MOVE_TO_WORKSPACE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount     int    `json:"window_count"`
	WorkspaceCount  int    `json:"workspace_count"`
	ActiveWorkspace string `json:"active_workspace"`
	FocusedWindow   int    `json:"focused_window"` // 0 = none
	ViewportWidth   int    `json:"viewport_width"`
	ViewportHeight  int    `json:"viewport_height"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	DaemonRunning   bool   `json:"daemon_running"`
}

// WindowInfo describes one window in LIST_WINDOWS output.
type WindowInfo struct {
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

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// WorkspaceInfo describes one workspace in LIST_WORKSPACES output.
type WorkspaceInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	WindowCount int    `json:"window_count"`
	Active      bool   `json:"active,omitempty"`
}

// WorkspacesData represents the data returned by LIST_WORKSPACES
type WorkspacesData struct {
	Workspaces []WorkspaceInfo `json:"workspaces"`
}

// CreateWindowPayload carries CREATE_WINDOW parameters. Zero width/height
// means the daemon default; a nil position cascades.
type CreateWindowPayload struct {
	Title  string `json:"title"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// WindowTargetPayload addresses a window by id.
type WindowTargetPayload struct {
	WindowID int `json:"window_id"`
}

// MoveWindowPayload carries MOVE_WINDOW parameters.
type MoveWindowPayload struct {
	WindowID int `json:"window_id"`
	X        int `json:"x"`
	Y        int `json:"y"`
}

// ResizeWindowPayload carries RESIZE_WINDOW parameters.
type ResizeWindowPayload struct {
	WindowID int `json:"window_id"`
	Width    int `json:"width"`
	Height   int `json:"height"`
}

// SnapWindowPayload carries SNAP_WINDOW parameters.
type SnapWindowPayload struct {
	WindowID int    `json:"window_id"`
	Region   string `json:"region"`
}

// WorkspaceTargetPayload addresses a workspace by name.
type WorkspaceTargetPayload struct {
	Name string `json:"name"`
}

// MoveToWorkspacePayload carries MOVE_TO_WORKSPACE parameters.
type MoveToWorkspacePayload struct {
	WindowID  int    `json:"window_id"`
	Workspace string `json:"workspace"`
}

// CreatedWindowData is returned by CREATE_WINDOW.
type CreatedWindowData struct {
	Window WindowInfo `json:"window"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
