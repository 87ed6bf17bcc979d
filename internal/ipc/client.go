package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskwm/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) sendPayload(cmd CommandType, payload interface{}) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return c.sendRequest(&Request{Command: cmd, Payload: data})
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListWindows retrieves every window across all workspaces
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}

	return &data, nil
}

// CreateWindow asks the daemon to create a window. Zero width/height uses
// the daemon default size; pos may be nil to cascade.
func (c *Client) CreateWindow(title string, x, y *int, width, height int) (*WindowInfo, error) {
	resp, err := c.sendPayload(CommandCreateWindow, CreateWindowPayload{
		Title: title, X: x, Y: y, Width: width, Height: height,
	})
	if err != nil {
		return nil, err
	}

	var data CreatedWindowData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse created window data: %w", err)
	}
	return &data.Window, nil
}

// FocusWindow focuses a window by id
func (c *Client) FocusWindow(windowID int) error {
	_, err := c.sendPayload(CommandFocusWindow, WindowTargetPayload{WindowID: windowID})
	return err
}

// CloseWindow closes a window by id
func (c *Client) CloseWindow(windowID int) error {
	_, err := c.sendPayload(CommandCloseWindow, WindowTargetPayload{WindowID: windowID})
	return err
}

// MinimizeWindow minimizes a window by id
func (c *Client) MinimizeWindow(windowID int) error {
	_, err := c.sendPayload(CommandMinimizeWindow, WindowTargetPayload{WindowID: windowID})
	return err
}

// MaximizeWindow maximizes a window by id
func (c *Client) MaximizeWindow(windowID int) error {
	_, err := c.sendPayload(CommandMaximizeWindow, WindowTargetPayload{WindowID: windowID})
	return err
}

// RestoreWindow restores a minimized or maximized window by id
func (c *Client) RestoreWindow(windowID int) error {
	_, err := c.sendPayload(CommandRestoreWindow, WindowTargetPayload{WindowID: windowID})
	return err
}

// MoveWindow repositions a window
func (c *Client) MoveWindow(windowID, x, y int) error {
	_, err := c.sendPayload(CommandMoveWindow, MoveWindowPayload{WindowID: windowID, X: x, Y: y})
	return err
}

// ResizeWindow resizes a window
func (c *Client) ResizeWindow(windowID, width, height int) error {
	_, err := c.sendPayload(CommandResizeWindow, ResizeWindowPayload{WindowID: windowID, Width: width, Height: height})
	return err
}

// SnapWindow snaps a window to a preset region (left-half, top-right, ...)
func (c *Client) SnapWindow(windowID int, region string) error {
	_, err := c.sendPayload(CommandSnapWindow, SnapWindowPayload{WindowID: windowID, Region: region})
	return err
}

// ListWorkspaces retrieves all workspaces
func (c *Client) ListWorkspaces() (*WorkspacesData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWorkspaces})
	if err != nil {
		return nil, err
	}

	var data WorkspacesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces data: %w", err)
	}

	return &data, nil
}

// CreateWorkspace creates a named workspace
func (c *Client) CreateWorkspace(name string) error {
	_, err := c.sendPayload(CommandCreateWorkspace, WorkspaceTargetPayload{Name: name})
	return err
}

// SwitchWorkspace activates a workspace by name
func (c *Client) SwitchWorkspace(name string) error {
	_, err := c.sendPayload(CommandSwitchWorkspace, WorkspaceTargetPayload{Name: name})
	return err
}

// DeleteWorkspace removes a workspace by name
func (c *Client) DeleteWorkspace(name string) error {
	_, err := c.sendPayload(CommandDeleteWorkspace, WorkspaceTargetPayload{Name: name})
	return err
}

// MoveToWorkspace reassigns a window to a named workspace
func (c *Client) MoveToWorkspace(windowID int, workspace string) error {
	_, err := c.sendPayload(CommandMoveToWorkspace, MoveToWorkspacePayload{WindowID: windowID, Workspace: workspace})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
