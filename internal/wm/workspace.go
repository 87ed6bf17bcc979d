package wm

import "fmt"

// CreateWorkspace adds a new, inactive workspace. Names must be non-empty
// and unique.
func (s *Store) CreateWorkspace(name string) (Workspace, error) {
	s.mu.Lock()
	defer s.commit()

	if name == "" {
		return Workspace{}, fmt.Errorf("%w: workspace name must not be empty", ErrInvalidState)
	}
	for _, ws := range s.workspaces {
		if ws.Name == name {
			return Workspace{}, fmt.Errorf("%w: workspace %q already exists", ErrInvalidState, name)
		}
	}
	if s.opts.MaxWorkspaces > 0 && len(s.workspaces) >= s.opts.MaxWorkspaces {
		return Workspace{}, fmt.Errorf("%w: workspace limit %d reached", ErrInvalidState, s.opts.MaxWorkspaces)
	}

	ws := &Workspace{ID: s.nextWorkspaceID, Name: name}
	s.nextWorkspaceID++
	s.workspaces[ws.ID] = ws
	s.wsOrder = append(s.wsOrder, ws.ID)
	s.emit(EventWorkspaceCreated, 0, ws.ID)
	return *ws, nil
}

// Workspaces returns copies of all workspaces in creation order.
func (s *Store) Workspaces() []Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Workspace, 0, len(s.wsOrder))
	for _, id := range s.wsOrder {
		out = append(out, *s.workspaces[id])
	}
	return out
}

// ActiveWorkspace returns a copy of the active workspace.
func (s *Store) ActiveWorkspace() Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.workspaces[s.active]
}

// WorkspaceByName resolves a workspace by its display name.
func (s *Store) WorkspaceByName(name string) (Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wsOrder {
		if s.workspaces[id].Name == name {
			return *s.workspaces[id], nil
		}
	}
	return Workspace{}, fmt.Errorf("%w: %q", ErrWorkspaceNotFound, name)
}

// SwitchWorkspace deactivates the current workspace and activates wsID.
// The outgoing workspace remembers its focused window; the incoming one
// restores its remembered focus if that window is still eligible, otherwise
// the topmost eligible window is focused.
func (s *Store) SwitchWorkspace(wsID WorkspaceID) error {
	s.mu.Lock()
	defer s.commit()
	return s.switchLocked(wsID)
}

func (s *Store) switchLocked(wsID WorkspaceID) error {
	next, ok := s.workspaces[wsID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWorkspaceNotFound, wsID)
	}
	if wsID == s.active {
		return nil
	}

	cur := s.workspaces[s.active]
	cur.Active = false
	cur.lastFocused = s.focused

	next.Active = true
	s.active = wsID
	s.emit(EventWorkspaceSwitched, 0, wsID)

	s.focused = 0
	if remembered, ok := s.windows[next.lastFocused]; ok && FocusEligible(remembered) && remembered.Workspace == wsID {
		s.focused = remembered.ID
		s.emit(EventWindowFocused, remembered.ID, wsID)
	} else {
		s.transferFocusLocked()
	}
	return nil
}

// RenameWorkspace changes a workspace's display name, subject to the same
// uniqueness rule as creation.
func (s *Store) RenameWorkspace(wsID WorkspaceID, name string) error {
	s.mu.Lock()
	defer s.commit()

	ws, ok := s.workspaces[wsID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWorkspaceNotFound, wsID)
	}
	if name == "" {
		return fmt.Errorf("%w: workspace name must not be empty", ErrInvalidState)
	}
	for _, other := range s.workspaces {
		if other.ID != wsID && other.Name == name {
			return fmt.Errorf("%w: workspace %q already exists", ErrInvalidState, name)
		}
	}
	ws.Name = name
	s.emit(EventWorkspaceRenamed, 0, wsID)
	return nil
}

// DeleteWorkspace removes a workspace. Its windows are never closed; they
// move to the default workspace. The default workspace itself cannot be
// deleted, which also guarantees at least one workspace always exists.
// Deleting the active workspace switches activation to the default first.
func (s *Store) DeleteWorkspace(wsID WorkspaceID) error {
	s.mu.Lock()
	defer s.commit()

	ws, ok := s.workspaces[wsID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWorkspaceNotFound, wsID)
	}
	if wsID == s.defaultWS {
		return fmt.Errorf("%w: cannot delete the default workspace", ErrInvalidState)
	}

	if wsID == s.active {
		if err := s.switchLocked(s.defaultWS); err != nil {
			return err
		}
	}

	def := s.workspaces[s.defaultWS]
	for _, id := range ws.Windows {
		w := s.windows[id]
		w.Workspace = s.defaultWS
		def.Windows = append(def.Windows, id)
		s.emit(EventWindowReassigned, id, s.defaultWS)
	}

	delete(s.workspaces, wsID)
	for i, id := range s.wsOrder {
		if id == wsID {
			s.wsOrder = append(s.wsOrder[:i], s.wsOrder[i+1:]...)
			break
		}
	}
	s.emit(EventWorkspaceDeleted, 0, wsID)

	// Reassigned windows may now be focus candidates on the active
	// workspace.
	if s.active == s.defaultWS && s.focused == 0 {
		s.transferFocusLocked()
	}
	return nil
}

// AssignWindow moves a window to another workspace without changing its
// geometry or stacking. Moving the focused window off the active workspace
// transfers focus.
func (s *Store) AssignWindow(id WindowID, wsID WorkspaceID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	dst, ok := s.workspaces[wsID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWorkspaceNotFound, wsID)
	}
	if w.Workspace == wsID {
		return nil
	}
	if s.opts.MaxWindows > 0 && len(dst.Windows) >= s.opts.MaxWindows {
		return fmt.Errorf("%w: workspace %q holds the maximum of %d windows",
			ErrInvalidState, dst.Name, s.opts.MaxWindows)
	}

	src := s.workspaces[w.Workspace]
	src.Windows = removeID(src.Windows, id)
	if src.lastFocused == id {
		src.lastFocused = 0
	}
	dst.Windows = append(dst.Windows, id)
	w.Workspace = wsID
	s.emit(EventWindowReassigned, id, wsID)

	if s.focused == id && wsID != s.active {
		s.transferFocusLocked()
	}
	return nil
}
