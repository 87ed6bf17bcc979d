package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	store        *wm.Store
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(store *wm.Store, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		store:      store,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return s.handleListWindows()
	case CommandCreateWindow:
		return s.handleCreateWindow(req.Payload)
	case CommandFocusWindow:
		return s.handleWindowOp(req.Payload, s.store.FocusWindow)
	case CommandCloseWindow:
		return s.handleWindowOp(req.Payload, s.store.CloseWindow)
	case CommandMinimizeWindow:
		return s.handleWindowOp(req.Payload, s.store.MinimizeWindow)
	case CommandMaximizeWindow:
		return s.handleWindowOp(req.Payload, s.store.MaximizeWindow)
	case CommandRestoreWindow:
		return s.handleWindowOp(req.Payload, s.store.RestoreWindow)
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	case CommandResizeWindow:
		return s.handleResizeWindow(req.Payload)
	case CommandSnapWindow:
		return s.handleSnapWindow(req.Payload)
	case CommandListWorkspaces:
		return s.handleListWorkspaces()
	case CommandCreateWorkspace:
		return s.handleCreateWorkspace(req.Payload)
	case CommandSwitchWorkspace:
		return s.handleSwitchWorkspace(req.Payload)
	case CommandDeleteWorkspace:
		return s.handleDeleteWorkspace(req.Payload)
	case CommandMoveToWorkspace:
		return s.handleMoveToWorkspace(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload asks the daemon to reload its configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	active := s.store.ActiveWorkspace()
	bounds := s.store.ViewportBounds()

	windowCount := 0
	for _, ws := range s.store.Workspaces() {
		windowCount += len(ws.Windows)
	}

	status := StatusData{
		WindowCount:     windowCount,
		WorkspaceCount:  len(s.store.Workspaces()),
		ActiveWorkspace: active.Name,
		FocusedWindow:   int(s.store.Focused()),
		ViewportWidth:   bounds.Width,
		ViewportHeight:  bounds.Height,
		UptimeSeconds:   int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:   true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) windowInfo(w wm.Window) WindowInfo {
	wsName := ""
	for _, ws := range s.store.Workspaces() {
		if ws.ID == w.Workspace {
			wsName = ws.Name
			break
		}
	}
	return WindowInfo{
		ID:        int(w.ID),
		Title:     w.Title,
		X:         w.Rect.X,
		Y:         w.Rect.Y,
		Width:     w.Rect.Width,
		Height:    w.Rect.Height,
		Z:         w.Z,
		Minimized: w.Minimized,
		Maximized: w.Maximized,
		Hidden:    !w.Visible,
		Focused:   s.store.Focused() == w.ID,
		Workspace: wsName,
	}
}

func (s *Server) handleListWindows() *Response {
	var infos []WindowInfo
	for _, ws := range s.store.Workspaces() {
		wins, err := s.store.Windows(ws.ID)
		if err != nil {
			continue
		}
		for _, w := range wins {
			infos = append(infos, s.windowInfo(w))
		}
	}

	resp, _ := NewOKResponse(WindowsData{Windows: infos})
	return resp
}

func (s *Server) handleCreateWindow(payload json.RawMessage) *Response {
	var req CreateWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid create payload: %v", err))
	}

	spec := wm.WindowSpec{Title: req.Title}
	if req.X != nil && req.Y != nil {
		spec.Position = &geometry.Point{X: *req.X, Y: *req.Y}
	}
	if req.Width > 0 && req.Height > 0 {
		spec.Size = &geometry.Size{Width: req.Width, Height: req.Height}
	}

	w, err := s.store.CreateWindow(spec)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to create window: %v", err))
	}

	resp, _ := NewOKResponse(CreatedWindowData{Window: s.windowInfo(w)})
	return resp
}

func (s *Server) handleWindowOp(payload json.RawMessage, op func(wm.WindowID) error) *Response {
	var req WindowTargetPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if err := op(wm.WindowID(req.WindowID)); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var req MoveWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if err := s.store.MoveWindow(wm.WindowID(req.WindowID), geometry.Point{X: req.X, Y: req.Y}); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleResizeWindow(payload json.RawMessage) *Response {
	var req ResizeWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	if err := s.store.ResizeWindow(wm.WindowID(req.WindowID), geometry.Size{Width: req.Width, Height: req.Height}); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSnapWindow(payload json.RawMessage) *Response {
	var req SnapWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snap payload: %v", err))
	}
	if err := s.store.SnapWindow(wm.WindowID(req.WindowID), geometry.SnapRegion(req.Region)); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListWorkspaces() *Response {
	var infos []WorkspaceInfo
	for _, ws := range s.store.Workspaces() {
		infos = append(infos, WorkspaceInfo{
			ID:          int(ws.ID),
			Name:        ws.Name,
			WindowCount: len(ws.Windows),
			Active:      ws.Active,
		})
	}

	resp, _ := NewOKResponse(WorkspacesData{Workspaces: infos})
	return resp
}

func (s *Server) handleCreateWorkspace(payload json.RawMessage) *Response {
	var req WorkspaceTargetPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid workspace payload: %v", err))
	}
	if _, err := s.store.CreateWorkspace(req.Name); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSwitchWorkspace(payload json.RawMessage) *Response {
	var req WorkspaceTargetPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid workspace payload: %v", err))
	}
	ws, err := s.store.WorkspaceByName(req.Name)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := s.store.SwitchWorkspace(ws.ID); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleDeleteWorkspace(payload json.RawMessage) *Response {
	var req WorkspaceTargetPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid workspace payload: %v", err))
	}
	ws, err := s.store.WorkspaceByName(req.Name)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := s.store.DeleteWorkspace(ws.ID); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleMoveToWorkspace(payload json.RawMessage) *Response {
	var req MoveToWorkspacePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	ws, err := s.store.WorkspaceByName(req.Workspace)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := s.store.AssignWindow(wm.WindowID(req.WindowID), ws.ID); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
