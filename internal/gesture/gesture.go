// Package gesture tracks the single in-flight drag or resize gesture and
// turns raw pointer input into committed window geometry.
package gesture

import (
	"fmt"
	"sync"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

// State is the controller's current phase.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Edge is a bitmask of the window edges grabbed by a resize. Corners
// combine two edges.
type Edge int

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Valid reports whether e names a usable grab: at least one edge, never
// opposite edges together.
func (e Edge) Valid() bool {
	if e == 0 {
		return false
	}
	if e&EdgeLeft != 0 && e&EdgeRight != 0 {
		return false
	}
	if e&EdgeTop != 0 && e&EdgeBottom != 0 {
		return false
	}
	return true
}

// Options tunes live edge snapping during drags.
type Options struct {
	SnapThreshold int
	SnapDistance  int
}

// Controller owns the interaction state machine. At most one gesture is in
// flight system-wide; starting a second one fails rather than queueing.
type Controller struct {
	mu    sync.Mutex
	store *wm.Store
	opts  Options

	state     State
	target    wm.WindowID
	edge      Edge
	startPtr  geometry.Point
	startRect geometry.Rect
}

// New creates an idle controller bound to a store. It subscribes to the
// store so a gesture whose target is closed, minimized, maximized, or hidden
// mid-flight is cancelled instead of committing on a dead window.
func New(store *wm.Store, opts Options) *Controller {
	if opts.SnapThreshold <= 0 {
		opts.SnapThreshold = 20
	}
	if opts.SnapDistance < 0 {
		opts.SnapDistance = 0
	}
	c := &Controller{store: store, opts: opts}
	store.Subscribe(c.handleEvent)
	return c
}

// State returns the current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Target returns the window under gesture, or 0 when idle.
func (c *Controller) Target() wm.WindowID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// BeginDrag starts moving a window from the given pointer position. The
// window is focused as a side effect, matching direct manipulation: you drag
// what you clicked.
func (c *Controller) BeginDrag(id wm.WindowID, ptr geometry.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fmt.Errorf("%w: a %s gesture is already in flight", wm.ErrInvalidState, c.state)
	}
	w, err := c.store.Window(id)
	if err != nil {
		return err
	}
	if !w.Draggable || !w.Normal() || !w.Visible {
		return fmt.Errorf("%w: window %d cannot be dragged", wm.ErrInvalidState, id)
	}
	if err := c.store.FocusWindow(id); err != nil {
		return err
	}

	c.state = StateDragging
	c.target = id
	c.startPtr = ptr
	c.startRect = w.Rect
	return nil
}

// BeginResize starts resizing a window by the given edge or corner.
func (c *Controller) BeginResize(id wm.WindowID, ptr geometry.Point, edge Edge) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fmt.Errorf("%w: a %s gesture is already in flight", wm.ErrInvalidState, c.state)
	}
	if !edge.Valid() {
		return fmt.Errorf("%w: invalid resize edge %d", wm.ErrInvalidState, edge)
	}
	w, err := c.store.Window(id)
	if err != nil {
		return err
	}
	if !w.Resizable || !w.Normal() || !w.Visible {
		return fmt.Errorf("%w: window %d cannot be resized", wm.ErrInvalidState, id)
	}
	if err := c.store.FocusWindow(id); err != nil {
		return err
	}

	c.state = StateResizing
	c.target = id
	c.edge = edge
	c.startPtr = ptr
	c.startRect = w.Rect
	return nil
}

// Update applies the pointer position to the in-flight gesture. Each update
// commits through the store, so observers always see the live geometry.
// A no-op when idle: stray motion events are normal.
func (c *Controller) Update(ptr geometry.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateDragging:
		return c.updateDragLocked(ptr)
	case StateResizing:
		return c.updateResizeLocked(ptr)
	default:
		return nil
	}
}

func (c *Controller) updateDragLocked(ptr geometry.Point) error {
	w, err := c.store.Window(c.target)
	if err != nil {
		c.resetLocked()
		return err
	}

	pos := geometry.Point{
		X: c.startRect.X + ptr.X - c.startPtr.X,
		Y: c.startRect.Y + ptr.Y - c.startPtr.Y,
	}
	// Snap live so the window visibly sticks to edges during the drag.
	pos = geometry.Snap(pos, w.Rect.Dim(), c.boundsLocked(), c.opts.SnapThreshold, c.opts.SnapDistance)

	rect := w.Rect
	rect.X, rect.Y = pos.X, pos.Y
	return c.store.SetFrame(c.target, rect)
}

func (c *Controller) updateResizeLocked(ptr geometry.Point) error {
	w, err := c.store.Window(c.target)
	if err != nil {
		c.resetLocked()
		return err
	}

	dx := ptr.X - c.startPtr.X
	dy := ptr.Y - c.startPtr.Y
	rect := c.startRect

	if c.edge&EdgeRight != 0 {
		rect.Width += dx
	}
	if c.edge&EdgeBottom != 0 {
		rect.Height += dy
	}
	if c.edge&EdgeLeft != 0 {
		rect.X += dx
		rect.Width -= dx
	}
	if c.edge&EdgeTop != 0 {
		rect.Y += dy
		rect.Height -= dy
	}

	// Pin the opposite edge when min/max kicks in, otherwise a left or top
	// grab would slide the whole window once the size bottoms out.
	size := geometry.ClampSize(rect.Dim(), w.MinSize, w.MaxSize, c.boundsLocked().Dim())
	if c.edge&EdgeLeft != 0 {
		rect.X = c.startRect.X + c.startRect.Width - size.Width
	}
	if c.edge&EdgeTop != 0 {
		rect.Y = c.startRect.Y + c.startRect.Height - size.Height
	}
	rect.Width, rect.Height = size.Width, size.Height

	return c.store.SetFrame(c.target, rect)
}

// End commits the gesture at the final pointer position and returns the
// controller to idle. Ending while idle is an error: it means the caller's
// event stream is out of sync.
func (c *Controller) End(ptr geometry.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle {
		return fmt.Errorf("%w: no gesture in flight", wm.ErrInvalidState)
	}

	var err error
	switch c.state {
	case StateDragging:
		err = c.updateDragLocked(ptr)
	case StateResizing:
		err = c.updateResizeLocked(ptr)
	}
	c.resetLocked()
	return err
}

// Cancel aborts the gesture. The last committed geometry stands; every
// update already went through the store's clamp path, so there is nothing
// partial to undo. Cancelling while idle is a no-op.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	return nil
}

func (c *Controller) resetLocked() {
	c.state = StateIdle
	c.target = 0
	c.edge = 0
}

func (c *Controller) boundsLocked() geometry.Rect {
	// The store's ActiveWindows path already consults the viewport; for
	// snapping we only need the bounds the store would clamp against.
	return c.store.ViewportBounds()
}

// handleEvent drops the gesture when its target leaves the normal state or
// disappears. Runs outside the store lock.
func (c *Controller) handleEvent(ev wm.Event) {
	switch ev.Kind {
	case wm.EventWindowClosed, wm.EventWindowMinimized, wm.EventWindowMaximized, wm.EventWindowHidden:
	default:
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle && ev.Window == c.target {
		c.resetLocked()
	}
}
