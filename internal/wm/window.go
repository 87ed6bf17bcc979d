package wm

import "github.com/1broseidon/deskwm/internal/geometry"

// WindowID identifies a window for its whole lifetime. IDs are assigned at
// creation and never reused within a store.
type WindowID int

// WorkspaceID identifies a workspace.
type WorkspaceID int

// Window is the authoritative record for one on-screen window. Values
// returned by store queries are copies; all mutation goes through the store.
type Window struct {
	ID        WindowID
	Title     string
	AppID     string // opaque foreign reference to externally-owned content
	Rect      geometry.Rect
	Z         int
	Visible   bool
	Minimized bool
	Maximized bool
	Resizable bool
	Draggable bool
	MinSize   geometry.Size
	MaxSize   geometry.Size // zero axis = unbounded
	Workspace WorkspaceID

	// Restore holds the geometry to return to when un-maximizing. Set
	// exactly once on maximize, cleared on restore.
	Restore *geometry.Rect
}

// Normal reports whether the window is in its normal state (neither
// minimized nor maximized).
func (w *Window) Normal() bool {
	return !w.Minimized && !w.Maximized
}

// WindowSpec describes a window to create. Zero-value fields fall back to
// store defaults: size to the configured default size, position to cascade
// or center placement.
type WindowSpec struct {
	Title     string
	AppID     string
	Position  *geometry.Point
	Size      *geometry.Size
	MinSize   geometry.Size
	MaxSize   geometry.Size
	Resizable *bool // nil = true
	Draggable *bool // nil = true
}

// Workspace is a named, mutually exclusive grouping of windows. Exactly one
// workspace is active at any time; the store enforces this, not callers.
type Workspace struct {
	ID      WorkspaceID
	Name    string
	Windows []WindowID // creation order
	Active  bool

	// lastFocused remembers the focused window when the workspace was
	// deactivated, so switching back restores it.
	lastFocused WindowID
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
