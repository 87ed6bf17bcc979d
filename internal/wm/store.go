package wm

import (
	"fmt"
	"sync"

	"github.com/1broseidon/deskwm/internal/geometry"
)

// ViewportProvider supplies the usable screen area. The store queries it on
// every placement decision so viewport changes take effect without restart.
type ViewportProvider interface {
	Bounds() geometry.Rect
}

// Options tunes store behavior. Zero values fall back to the defaults
// applied by NewStore.
type Options struct {
	Viewport      ViewportProvider
	DefaultSize   geometry.Size
	MinWindowSize geometry.Size
	CascadeBase   geometry.Point
	CascadeStep   geometry.Point
	MaxWorkspaces int // 0 = unlimited
	MaxWindows    int // per workspace, 0 = unlimited
	DefaultWSName string
}

const (
	defaultWidth     = 640
	defaultHeight    = 480
	defaultMinWidth  = 100
	defaultMinHeight = 80
)

// Store owns all window and workspace state. Every operation takes the
// store lock, mutates, and releases before notifying listeners, so listeners
// may call back in without deadlocking.
type Store struct {
	mu   sync.Mutex
	opts Options

	windows    map[WindowID]*Window
	workspaces map[WorkspaceID]*Workspace
	wsOrder    []WorkspaceID

	active    WorkspaceID
	defaultWS WorkspaceID
	focused   WindowID // 0 = none

	nextWindowID    WindowID
	nextWorkspaceID WorkspaceID
	nextZ           int

	listeners []Listener
	pending   []Event
}

// NewStore creates a store with a single active default workspace.
func NewStore(opts Options) *Store {
	if opts.DefaultSize.Width <= 0 || opts.DefaultSize.Height <= 0 {
		opts.DefaultSize = geometry.Size{Width: defaultWidth, Height: defaultHeight}
	}
	if opts.MinWindowSize.Width <= 0 || opts.MinWindowSize.Height <= 0 {
		opts.MinWindowSize = geometry.Size{Width: defaultMinWidth, Height: defaultMinHeight}
	}
	if opts.CascadeBase == (geometry.Point{}) {
		opts.CascadeBase = geometry.Point{X: 40, Y: 40}
	}
	if opts.CascadeStep == (geometry.Point{}) {
		opts.CascadeStep = geometry.Point{X: 30, Y: 30}
	}
	if opts.DefaultWSName == "" {
		opts.DefaultWSName = "main"
	}

	s := &Store{
		opts:            opts,
		windows:         make(map[WindowID]*Window),
		workspaces:      make(map[WorkspaceID]*Workspace),
		nextWindowID:    1,
		nextWorkspaceID: 1,
	}

	ws := &Workspace{ID: s.nextWorkspaceID, Name: opts.DefaultWSName, Active: true}
	s.nextWorkspaceID++
	s.workspaces[ws.ID] = ws
	s.wsOrder = append(s.wsOrder, ws.ID)
	s.active = ws.ID
	s.defaultWS = ws.ID

	return s
}

// bounds returns the current viewport, or a sane fallback when no provider
// is wired (tests, headless status queries).
func (s *Store) boundsLocked() geometry.Rect {
	if s.opts.Viewport != nil {
		return s.opts.Viewport.Bounds()
	}
	return geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
}

// ViewportBounds returns the viewport the store currently clamps against.
func (s *Store) ViewportBounds() geometry.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundsLocked()
}

// commit releases the lock and delivers events queued during the operation.
// Callers pair it with s.mu.Lock() via defer.
func (s *Store) commit() {
	events := s.pending
	s.pending = nil
	listeners := s.listeners
	s.mu.Unlock()
	s.flush(events, listeners)
}

// activeWindowsLocked returns the live records on the active workspace.
func (s *Store) activeWindowsLocked() []*Window {
	ws := s.workspaces[s.active]
	out := make([]*Window, 0, len(ws.Windows))
	for _, id := range ws.Windows {
		out = append(out, s.windows[id])
	}
	return out
}

// CreateWindow adds a window to the active workspace and focuses it.
// A nil position cascades within the viewport; the first window on an empty
// workspace is centered instead. Explicit sizes below the minimum are
// rejected rather than silently grown.
func (s *Store) CreateWindow(spec WindowSpec) (Window, error) {
	s.mu.Lock()
	defer s.commit()

	bounds := s.boundsLocked()

	minSize := spec.MinSize
	if minSize.Width < s.opts.MinWindowSize.Width {
		minSize.Width = s.opts.MinWindowSize.Width
	}
	if minSize.Height < s.opts.MinWindowSize.Height {
		minSize.Height = s.opts.MinWindowSize.Height
	}
	if spec.MaxSize.Width > 0 && spec.MaxSize.Width < minSize.Width ||
		spec.MaxSize.Height > 0 && spec.MaxSize.Height < minSize.Height {
		return Window{}, fmt.Errorf("%w: max size %dx%d below min %dx%d",
			ErrInvalidSize, spec.MaxSize.Width, spec.MaxSize.Height, minSize.Width, minSize.Height)
	}

	size := s.opts.DefaultSize
	if spec.Size != nil {
		if spec.Size.Width < minSize.Width || spec.Size.Height < minSize.Height {
			return Window{}, fmt.Errorf("%w: %dx%d below minimum %dx%d",
				ErrInvalidSize, spec.Size.Width, spec.Size.Height, minSize.Width, minSize.Height)
		}
		if spec.MaxSize.Width > 0 && spec.Size.Width > spec.MaxSize.Width ||
			spec.MaxSize.Height > 0 && spec.Size.Height > spec.MaxSize.Height {
			return Window{}, fmt.Errorf("%w: %dx%d above maximum %dx%d",
				ErrInvalidSize, spec.Size.Width, spec.Size.Height, spec.MaxSize.Width, spec.MaxSize.Height)
		}
		size = *spec.Size
	}
	size = geometry.ClampSize(size, minSize, spec.MaxSize, bounds.Dim())

	ws := s.workspaces[s.active]
	if s.opts.MaxWindows > 0 && len(ws.Windows) >= s.opts.MaxWindows {
		return Window{}, fmt.Errorf("%w: workspace %q holds the maximum of %d windows",
			ErrInvalidState, ws.Name, s.opts.MaxWindows)
	}

	var pos geometry.Point
	switch {
	case spec.Position != nil:
		pos = *spec.Position
	case len(ws.Windows) == 0:
		pos = geometry.CenterPosition(size, bounds)
	default:
		prev := s.windows[ws.Windows[len(ws.Windows)-1]]
		pos = geometry.CascadePosition(prev.Rect.Pos(), s.opts.CascadeStep, s.opts.CascadeBase, size, bounds)
	}

	rect := geometry.Clamp(geometry.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}, bounds)

	w := &Window{
		ID:        s.nextWindowID,
		Title:     spec.Title,
		AppID:     spec.AppID,
		Rect:      rect,
		Visible:   true,
		Resizable: boolOrTrue(spec.Resizable),
		Draggable: boolOrTrue(spec.Draggable),
		MinSize:   minSize,
		MaxSize:   spec.MaxSize,
		Workspace: s.active,
	}
	s.nextWindowID++
	s.windows[w.ID] = w
	ws.Windows = append(ws.Windows, w.ID)

	s.raiseLocked(w)
	s.focused = w.ID

	s.emit(EventWindowCreated, w.ID, s.active)
	s.emit(EventWindowFocused, w.ID, s.active)

	return *w, nil
}

// Window returns a copy of the record for id.
func (s *Store) Window(id WindowID) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return Window{}, fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	return *w, nil
}

// Windows returns copies of every window on the given workspace in
// creation order.
func (s *Store) Windows(wsID WorkspaceID) ([]Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[wsID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrWorkspaceNotFound, wsID)
	}
	out := make([]Window, 0, len(ws.Windows))
	for _, id := range ws.Windows {
		out = append(out, *s.windows[id])
	}
	return out, nil
}

// ActiveWindows returns copies of the windows on the active workspace,
// bottom-to-top by z-index.
func (s *Store) ActiveWindows() []Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	wins := s.activeWindowsLocked()
	out := make([]Window, 0, len(wins))
	for _, w := range wins {
		out = append(out, *w)
	}
	return StackOrder(out)
}

// Focused returns the focused window id, or 0 when nothing holds focus.
func (s *Store) Focused() WindowID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// MoveWindow sets a new position for a normal, draggable window. The
// committed position is clamped to the viewport.
func (s *Store) MoveWindow(id WindowID, pos geometry.Point) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if !w.Draggable {
		return fmt.Errorf("%w: window %d is not draggable", ErrInvalidState, id)
	}
	if w.Maximized || w.Minimized {
		return fmt.Errorf("%w: window %d is not in normal state", ErrInvalidState, id)
	}

	rect := w.Rect
	rect.X, rect.Y = pos.X, pos.Y
	w.Rect = geometry.Clamp(rect, s.boundsLocked())
	s.emit(EventWindowMoved, id, w.Workspace)
	return nil
}

// ResizeWindow sets a new size for a normal, resizable window. The size is
// clamped to the window's min/max and the viewport, never rejected.
func (s *Store) ResizeWindow(id WindowID, size geometry.Size) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if !w.Resizable {
		return fmt.Errorf("%w: window %d is not resizable", ErrInvalidState, id)
	}
	if w.Maximized || w.Minimized {
		return fmt.Errorf("%w: window %d is not in normal state", ErrInvalidState, id)
	}

	bounds := s.boundsLocked()
	clamped := geometry.ClampSize(size, w.MinSize, w.MaxSize, bounds.Dim())
	rect := w.Rect
	rect.Width, rect.Height = clamped.Width, clamped.Height
	w.Rect = geometry.Clamp(rect, bounds)
	s.emit(EventWindowResized, id, w.Workspace)
	return nil
}

// SetFrame moves and resizes in one committed step, used by the gesture
// controller while a drag or resize is in flight.
func (s *Store) SetFrame(id WindowID, rect geometry.Rect) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if w.Maximized || w.Minimized {
		return fmt.Errorf("%w: window %d is not in normal state", ErrInvalidState, id)
	}

	bounds := s.boundsLocked()
	size := geometry.ClampSize(rect.Dim(), w.MinSize, w.MaxSize, bounds.Dim())
	rect.Width, rect.Height = size.Width, size.Height
	w.Rect = geometry.Clamp(rect, bounds)
	s.emit(EventWindowMoved, id, w.Workspace)
	s.emit(EventWindowResized, id, w.Workspace)
	return nil
}

// FocusWindow gives id input focus and raises it to the top of the stack.
// Hidden and minimized windows cannot take focus.
func (s *Store) FocusWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()
	return s.focusLocked(id)
}

func (s *Store) focusLocked(id WindowID) error {
	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if !FocusEligible(w) {
		return fmt.Errorf("%w: window %d cannot take focus", ErrInvalidState, id)
	}
	if w.Workspace != s.active {
		return fmt.Errorf("%w: window %d is not on the active workspace", ErrInvalidState, id)
	}

	s.raiseLocked(w)
	if s.focused != id {
		s.focused = id
		s.emit(EventWindowFocused, id, w.Workspace)
	}
	s.emit(EventStackChanged, id, w.Workspace)
	return nil
}

// transferFocusLocked moves focus to the topmost eligible window on the
// active workspace after the current holder became ineligible or closed.
func (s *Store) transferFocusLocked() {
	wins := s.activeWindowsLocked()
	copies := make([]Window, 0, len(wins))
	for _, w := range wins {
		copies = append(copies, *w)
	}
	next := DeriveFocus(copies)
	if s.focused != next {
		s.focused = next
		if next != 0 {
			s.emit(EventWindowFocused, next, s.active)
		}
	}
}

// CycleFocus moves focus to the next eligible window in stacking order,
// wrapping from top to bottom. A no-op when fewer than two windows qualify.
func (s *Store) CycleFocus() error {
	s.mu.Lock()
	defer s.commit()

	wins := s.activeWindowsLocked()
	eligible := make([]*Window, 0, len(wins))
	for _, w := range wins {
		if FocusEligible(w) {
			eligible = append(eligible, w)
		}
	}
	if len(eligible) < 2 {
		return nil
	}

	// Focused window is topmost after focusLocked, so "next" is the lowest
	// eligible window: cycling rotates the stack.
	lowest := eligible[0]
	for _, w := range eligible[1:] {
		if w.Z < lowest.Z {
			lowest = w
		}
	}
	return s.focusLocked(lowest.ID)
}

// MinimizeWindow hides a window from the working set. A maximized window
// keeps its saved restore geometry so a later restore still round-trips.
// Focus transfers to the topmost remaining eligible window.
func (s *Store) MinimizeWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if w.Minimized {
		return fmt.Errorf("%w: window %d is already minimized", ErrInvalidState, id)
	}

	w.Minimized = true
	w.Maximized = false
	s.emit(EventWindowMinimized, id, w.Workspace)

	if s.focused == id {
		s.transferFocusLocked()
	}
	return nil
}

// MaximizeWindow grows a window to fill the viewport. Repeated calls are
// no-ops; the restore geometry is captured exactly once, so it always
// predates the first maximize.
func (s *Store) MaximizeWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if w.Maximized {
		return nil
	}
	if !w.Resizable {
		return fmt.Errorf("%w: window %d is not resizable", ErrInvalidState, id)
	}

	if w.Restore == nil {
		saved := w.Rect
		w.Restore = &saved
	}
	w.Minimized = false
	w.Maximized = true
	w.Rect = s.boundsLocked()
	s.emit(EventWindowMaximized, id, w.Workspace)
	return nil
}

// RestoreWindow returns a minimized or maximized window to its normal
// geometry and state, and focuses it.
func (s *Store) RestoreWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if w.Normal() {
		return fmt.Errorf("%w: window %d is not minimized or maximized", ErrInvalidState, id)
	}

	// Restore survives minimize-while-maximized, so check the saved rect
	// rather than the maximized flag.
	if w.Restore != nil {
		w.Rect = geometry.Clamp(*w.Restore, s.boundsLocked())
	}
	w.Restore = nil
	w.Minimized = false
	w.Maximized = false
	s.emit(EventWindowRestored, id, w.Workspace)

	if w.Workspace == s.active {
		return s.focusLocked(id)
	}
	return nil
}

// ShowWindow makes a hidden window visible again. It does not take focus.
func (s *Store) ShowWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if w.Visible {
		return nil
	}
	w.Visible = true
	s.emit(EventWindowShown, id, w.Workspace)
	return nil
}

// HideWindow removes a window from display without closing it. Focus
// transfers if the hidden window held it.
func (s *Store) HideWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if !w.Visible {
		return nil
	}
	w.Visible = false
	s.emit(EventWindowHidden, id, w.Workspace)

	if s.focused == id {
		s.transferFocusLocked()
	}
	return nil
}

// SetWindowTitle updates the display title.
func (s *Store) SetWindowTitle(id WindowID, title string) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if w.Title == title {
		return nil
	}
	w.Title = title
	s.emit(EventWindowRetitled, id, w.Workspace)
	return nil
}

// CloseWindow removes a window permanently. If it held focus, focus
// transfers to the topmost remaining eligible window.
func (s *Store) CloseWindow(id WindowID) error {
	s.mu.Lock()
	defer s.commit()
	return s.closeLocked(id)
}

func (s *Store) closeLocked(id WindowID) error {
	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}

	ws := s.workspaces[w.Workspace]
	ws.Windows = removeID(ws.Windows, id)
	if ws.lastFocused == id {
		ws.lastFocused = 0
	}
	delete(s.windows, id)
	s.emit(EventWindowClosed, id, w.Workspace)

	if s.focused == id {
		s.transferFocusLocked()
	}
	return nil
}

// BringToFront raises a window to the top of the stack without changing
// focus.
func (s *Store) BringToFront(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	s.raiseLocked(w)
	s.emit(EventStackChanged, id, w.Workspace)
	return nil
}

// SendToBack lowers a window below every other window on its workspace,
// then renormalizes so z stays dense and non-negative.
func (s *Store) SendToBack(id WindowID) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}

	lowest := w.Z
	for _, otherID := range s.workspaces[w.Workspace].Windows {
		if other := s.windows[otherID]; other.Z < lowest {
			lowest = other.Z
		}
	}
	w.Z = lowest - 1
	s.renormalizeZLocked()
	s.emit(EventStackChanged, id, w.Workspace)
	return nil
}

// SnapWindow moves a normal window to a preset half or quarter of the
// viewport. The window must be resizable since snapping changes its size.
func (s *Store) SnapWindow(id WindowID, region geometry.SnapRegion) error {
	s.mu.Lock()
	defer s.commit()

	w, ok := s.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrWindowNotFound, id)
	}
	if !geometry.ValidRegion(region) {
		return fmt.Errorf("%w: unknown snap region %q", ErrInvalidState, region)
	}
	if w.Maximized || w.Minimized {
		return fmt.Errorf("%w: window %d is not in normal state", ErrInvalidState, id)
	}
	if !w.Resizable {
		return fmt.Errorf("%w: window %d is not resizable", ErrInvalidState, id)
	}

	bounds := s.boundsLocked()
	target := geometry.RegionRect(region, bounds)
	size := geometry.ClampSize(target.Dim(), w.MinSize, w.MaxSize, bounds.Dim())
	target.Width, target.Height = size.Width, size.Height
	w.Rect = geometry.Clamp(target, bounds)
	s.emit(EventWindowMoved, id, w.Workspace)
	s.emit(EventWindowResized, id, w.Workspace)
	return nil
}

// ReclampAll re-applies viewport constraints to every window after the
// viewport changed: maximized windows track the new bounds, normal windows
// are pulled back on-screen.
func (s *Store) ReclampAll() {
	s.mu.Lock()
	defer s.commit()

	bounds := s.boundsLocked()
	for _, w := range s.windows {
		if w.Minimized {
			continue
		}
		if w.Maximized {
			if w.Rect != bounds {
				w.Rect = bounds
				s.emit(EventWindowResized, w.ID, w.Workspace)
			}
			continue
		}
		clamped := geometry.Clamp(w.Rect, bounds)
		if clamped != w.Rect {
			w.Rect = clamped
			s.emit(EventWindowMoved, w.ID, w.Workspace)
		}
	}
}

func removeID(ids []WindowID, id WindowID) []WindowID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
