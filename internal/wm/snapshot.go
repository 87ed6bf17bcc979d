package wm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/1broseidon/deskwm/internal/geometry"
	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk form of the full store state. It is plain data:
// loading goes back through validation, so a hand-edited or stale file can
// never put the store into an illegal state.
type Snapshot struct {
	Windows    []WindowRecord    `yaml:"windows"`
	Workspaces []WorkspaceRecord `yaml:"workspaces"`
	Active     WorkspaceID       `yaml:"active"`
	Default    WorkspaceID       `yaml:"default"`
	Focused    WindowID          `yaml:"focused"`
}

// WindowRecord mirrors Window with yaml tags.
type WindowRecord struct {
	ID        WindowID       `yaml:"id"`
	Title     string         `yaml:"title"`
	AppID     string         `yaml:"app_id,omitempty"`
	X         int            `yaml:"x"`
	Y         int            `yaml:"y"`
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Z         int            `yaml:"z"`
	Visible   bool           `yaml:"visible"`
	Minimized bool           `yaml:"minimized"`
	Maximized bool           `yaml:"maximized"`
	Resizable bool           `yaml:"resizable"`
	Draggable bool           `yaml:"draggable"`
	MinWidth  int            `yaml:"min_width,omitempty"`
	MinHeight int            `yaml:"min_height,omitempty"`
	MaxWidth  int            `yaml:"max_width,omitempty"`
	MaxHeight int            `yaml:"max_height,omitempty"`
	Workspace WorkspaceID    `yaml:"workspace"`
	Restore   *RestoreRecord `yaml:"restore,omitempty"`
}

// RestoreRecord is the saved pre-maximize geometry.
type RestoreRecord struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WorkspaceRecord mirrors Workspace with yaml tags.
type WorkspaceRecord struct {
	ID          WorkspaceID `yaml:"id"`
	Name        string      `yaml:"name"`
	Windows     []WindowID  `yaml:"windows,omitempty"`
	LastFocused WindowID    `yaml:"last_focused,omitempty"`
}

// Snapshot captures the current store state for persistence.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Active:  s.active,
		Default: s.defaultWS,
		Focused: s.focused,
	}
	for _, wsID := range s.wsOrder {
		ws := s.workspaces[wsID]
		snap.Workspaces = append(snap.Workspaces, WorkspaceRecord{
			ID:          ws.ID,
			Name:        ws.Name,
			Windows:     append([]WindowID(nil), ws.Windows...),
			LastFocused: ws.lastFocused,
		})
		for _, id := range ws.Windows {
			w := s.windows[id]
			rec := WindowRecord{
				ID:        w.ID,
				Title:     w.Title,
				AppID:     w.AppID,
				X:         w.Rect.X,
				Y:         w.Rect.Y,
				Width:     w.Rect.Width,
				Height:    w.Rect.Height,
				Z:         w.Z,
				Visible:   w.Visible,
				Minimized: w.Minimized,
				Maximized: w.Maximized,
				Resizable: w.Resizable,
				Draggable: w.Draggable,
				MinWidth:  w.MinSize.Width,
				MinHeight: w.MinSize.Height,
				MaxWidth:  w.MaxSize.Width,
				MaxHeight: w.MaxSize.Height,
				Workspace: w.Workspace,
			}
			if w.Restore != nil {
				rec.Restore = &RestoreRecord{X: w.Restore.X, Y: w.Restore.Y, Width: w.Restore.Width, Height: w.Restore.Height}
			}
			snap.Windows = append(snap.Windows, rec)
		}
	}
	return snap
}

// SaveSnapshot writes the store state to path atomically.
func (s *Store) SaveSnapshot(path string) error {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot file and rebuilds a store from it, applying
// the same validation as live operations: geometry is re-clamped against the
// current viewport, flags are reconciled, and focus falls back to the
// topmost eligible window when the recorded one no longer qualifies.
func LoadSnapshot(path string, opts Options) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return RestoreStore(snap, opts)
}

// RestoreStore builds a store from a snapshot.
func RestoreStore(snap Snapshot, opts Options) (*Store, error) {
	s := NewStore(opts)
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(snap.Workspaces) == 0 {
		return s, nil
	}

	s.windows = make(map[WindowID]*Window)
	s.workspaces = make(map[WorkspaceID]*Workspace)
	s.wsOrder = nil

	for _, rec := range snap.Workspaces {
		if rec.ID <= 0 || rec.Name == "" {
			return nil, fmt.Errorf("%w: workspace record %d invalid", ErrInvalidState, rec.ID)
		}
		if _, dup := s.workspaces[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate workspace id %d", ErrInvalidState, rec.ID)
		}
		ws := &Workspace{ID: rec.ID, Name: rec.Name, lastFocused: rec.LastFocused}
		s.workspaces[ws.ID] = ws
		s.wsOrder = append(s.wsOrder, ws.ID)
		if ws.ID >= s.nextWorkspaceID {
			s.nextWorkspaceID = ws.ID + 1
		}
	}

	def, ok := s.workspaces[snap.Default]
	if !ok {
		def = s.workspaces[s.wsOrder[0]]
	}
	s.defaultWS = def.ID

	act, ok := s.workspaces[snap.Active]
	if !ok {
		act = def
	}
	s.active = act.ID
	act.Active = true

	bounds := s.boundsLocked()
	for _, rec := range snap.Windows {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("%w: window record %d invalid", ErrInvalidState, rec.ID)
		}
		if _, dup := s.windows[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate window id %d", ErrInvalidState, rec.ID)
		}
		ws, ok := s.workspaces[rec.Workspace]
		if !ok {
			ws = def
		}

		minSize := geometry.Size{Width: rec.MinWidth, Height: rec.MinHeight}
		if minSize.Width < s.opts.MinWindowSize.Width {
			minSize.Width = s.opts.MinWindowSize.Width
		}
		if minSize.Height < s.opts.MinWindowSize.Height {
			minSize.Height = s.opts.MinWindowSize.Height
		}
		maxSize := geometry.Size{Width: rec.MaxWidth, Height: rec.MaxHeight}

		rect := geometry.Rect{X: rec.X, Y: rec.Y, Width: rec.Width, Height: rec.Height}
		size := geometry.ClampSize(rect.Dim(), minSize, maxSize, bounds.Dim())
		rect.Width, rect.Height = size.Width, size.Height
		rect = geometry.Clamp(rect, bounds)

		w := &Window{
			ID:        rec.ID,
			Title:     rec.Title,
			AppID:     rec.AppID,
			Rect:      rect,
			Z:         rec.Z,
			Visible:   rec.Visible,
			Minimized: rec.Minimized,
			Maximized: rec.Maximized && !rec.Minimized,
			Resizable: rec.Resizable,
			Draggable: rec.Draggable,
			MinSize:   minSize,
			MaxSize:   maxSize,
			Workspace: ws.ID,
		}
		if rec.Restore != nil {
			r := geometry.Clamp(geometry.Rect{X: rec.Restore.X, Y: rec.Restore.Y, Width: rec.Restore.Width, Height: rec.Restore.Height}, bounds)
			w.Restore = &r
		}
		if w.Maximized {
			if w.Restore == nil {
				saved := rect
				w.Restore = &saved
			}
			w.Rect = bounds
		}

		s.windows[w.ID] = w
		ws.Windows = append(ws.Windows, w.ID)
		if w.ID >= s.nextWindowID {
			s.nextWindowID = w.ID + 1
		}
		if w.Z >= s.nextZ {
			s.nextZ = w.Z + 1
		}
	}

	// Drop dangling ids the workspace records may carry.
	for _, ws := range s.workspaces {
		kept := ws.Windows[:0]
		for _, id := range ws.Windows {
			if _, ok := s.windows[id]; ok {
				kept = append(kept, id)
			}
		}
		ws.Windows = kept
		if _, ok := s.windows[ws.lastFocused]; !ok {
			ws.lastFocused = 0
		}
	}

	if w, ok := s.windows[snap.Focused]; ok && FocusEligible(w) && w.Workspace == s.active {
		s.focused = w.ID
	} else {
		s.focused = 0
		s.transferFocusLocked()
		s.pending = nil
	}

	return s, nil
}
