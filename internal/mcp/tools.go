package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/ipc"
)

func windowSummary(w ipc.WindowInfo) WindowSummary {
	return WindowSummary{
		ID:        w.ID,
		Title:     w.Title,
		X:         w.X,
		Y:         w.Y,
		Width:     w.Width,
		Height:    w.Height,
		Z:         w.Z,
		Minimized: w.Minimized,
		Maximized: w.Maximized,
		Hidden:    w.Hidden,
		Focused:   w.Focused,
		Workspace: w.Workspace,
	}
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		WindowCount:     status.WindowCount,
		WorkspaceCount:  status.WorkspaceCount,
		ActiveWorkspace: status.ActiveWorkspace,
		FocusedWindow:   status.FocusedWindow,
		ViewportWidth:   status.ViewportWidth,
		ViewportHeight:  status.ViewportHeight,
		UptimeSeconds:   status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, windowSummary(w))
	}
	return nil, out, nil
}

func (s *Server) handleCreateWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CreateWindowInput) (*mcpsdk.CallToolResult, CreateWindowOutput, error) {
	if args.Title == "" {
		return nil, CreateWindowOutput{}, fmt.Errorf("title is required")
	}
	if (args.X == nil) != (args.Y == nil) {
		return nil, CreateWindowOutput{}, fmt.Errorf("x and y must be set together")
	}

	w, err := s.client.CreateWindow(args.Title, args.X, args.Y, args.Width, args.Height)
	if err != nil {
		return nil, CreateWindowOutput{}, err
	}
	return nil, CreateWindowOutput{Window: windowSummary(*w)}, nil
}

func (s *Server) windowOp(action string, windowID int, op func(int) error) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	if err := op(windowID); err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{WindowID: windowID, Action: action}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	return s.windowOp("focused", args.WindowID, s.client.FocusWindow)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	return s.windowOp("closed", args.WindowID, s.client.CloseWindow)
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	return s.windowOp("minimized", args.WindowID, s.client.MinimizeWindow)
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	return s.windowOp("maximized", args.WindowID, s.client.MaximizeWindow)
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	return s.windowOp("restored", args.WindowID, s.client.RestoreWindow)
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	if err := s.client.MoveWindow(args.WindowID, args.X, args.Y); err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{WindowID: args.WindowID, Action: "moved"}, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, WindowOpOutput{}, fmt.Errorf("width and height must be > 0")
	}
	if err := s.client.ResizeWindow(args.WindowID, args.Width, args.Height); err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{WindowID: args.WindowID, Action: "resized"}, nil
}

func (s *Server) handleSnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapWindowInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	if args.Region == "" {
		return nil, WindowOpOutput{}, fmt.Errorf("region is required")
	}
	if err := s.client.SnapWindow(args.WindowID, args.Region); err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{WindowID: args.WindowID, Action: "snapped to " + args.Region}, nil
}

func (s *Server) handleListWorkspaces(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWorkspacesInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	data, err := s.client.ListWorkspaces()
	if err != nil {
		return nil, ListWorkspacesOutput{}, err
	}
	out := ListWorkspacesOutput{Workspaces: make([]WorkspaceSummary, 0, len(data.Workspaces))}
	for _, ws := range data.Workspaces {
		out.Workspaces = append(out.Workspaces, WorkspaceSummary{
			ID:          ws.ID,
			Name:        ws.Name,
			WindowCount: ws.WindowCount,
			Active:      ws.Active,
		})
	}
	return nil, out, nil
}

func (s *Server) workspaceOp(action, name string, op func(string) error) (*mcpsdk.CallToolResult, WorkspaceOpOutput, error) {
	if name == "" {
		return nil, WorkspaceOpOutput{}, fmt.Errorf("name is required")
	}
	if err := op(name); err != nil {
		return nil, WorkspaceOpOutput{}, err
	}
	return nil, WorkspaceOpOutput{Name: name, Action: action}, nil
}

func (s *Server) handleCreateWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceTargetInput) (*mcpsdk.CallToolResult, WorkspaceOpOutput, error) {
	return s.workspaceOp("created", args.Name, s.client.CreateWorkspace)
}

func (s *Server) handleSwitchWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceTargetInput) (*mcpsdk.CallToolResult, WorkspaceOpOutput, error) {
	return s.workspaceOp("switched", args.Name, s.client.SwitchWorkspace)
}

func (s *Server) handleDeleteWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceTargetInput) (*mcpsdk.CallToolResult, WorkspaceOpOutput, error) {
	return s.workspaceOp("deleted", args.Name, s.client.DeleteWorkspace)
}

func (s *Server) handleMoveToWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveToWorkspaceInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	if args.Workspace == "" {
		return nil, WindowOpOutput{}, fmt.Errorf("workspace is required")
	}
	if err := s.client.MoveToWorkspace(args.WindowID, args.Workspace); err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{WindowID: args.WindowID, Action: "moved to " + args.Workspace}, nil
}
