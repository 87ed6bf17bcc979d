package gesture

import (
	"errors"
	"testing"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

type staticViewport struct {
	rect geometry.Rect
}

func (v *staticViewport) Bounds() geometry.Rect { return v.rect }

func setup(t *testing.T) (*wm.Store, *Controller, wm.Window) {
	t.Helper()
	vp := &staticViewport{rect: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	store := wm.NewStore(wm.Options{Viewport: vp})
	ctrl := New(store, Options{SnapThreshold: 20, SnapDistance: 20})

	w, err := store.CreateWindow(wm.WindowSpec{
		Title:    "target",
		Position: &geometry.Point{X: 400, Y: 300},
		Size:     &geometry.Size{Width: 600, Height: 400},
	})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	return store, ctrl, w
}

func TestDrag_MovesByPointerDelta(t *testing.T) {
	store, ctrl, w := setup(t)

	if err := ctrl.BeginDrag(w.ID, geometry.Point{X: 500, Y: 350}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if ctrl.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", ctrl.State())
	}

	if err := ctrl.Update(geometry.Point{X: 600, Y: 450}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.Window(w.ID)
	// Pointer moved +100,+100, so the window follows.
	if got.Rect.X != 500 || got.Rect.Y != 400 {
		t.Fatalf("expected (500,400), got (%d,%d)", got.Rect.X, got.Rect.Y)
	}

	if err := ctrl.End(geometry.Point{X: 600, Y: 450}); err != nil {
		t.Fatalf("End: %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle after end, got %v", ctrl.State())
	}
}

func TestDrag_SnapsNearLeftEdge(t *testing.T) {
	store, ctrl, w := setup(t)

	if err := ctrl.BeginDrag(w.ID, geometry.Point{X: 400, Y: 300}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	// Move so the window's left edge lands at x=10, inside the 20px
	// threshold: it snaps to 20.
	if err := ctrl.Update(geometry.Point{X: 10, Y: 300}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.Window(w.ID)
	if got.Rect.X != 20 {
		t.Fatalf("expected snap to x=20, got %d", got.Rect.X)
	}
}

func TestDrag_SecondGestureRejected(t *testing.T) {
	store, ctrl, w := setup(t)
	other, err := store.CreateWindow(wm.WindowSpec{Title: "other"})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	if err := ctrl.BeginDrag(w.ID, geometry.Point{}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := ctrl.BeginDrag(other.ID, geometry.Point{}); !errors.Is(err, wm.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := ctrl.BeginResize(other.ID, geometry.Point{}, EdgeRight); !errors.Is(err, wm.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestDrag_FocusesTarget(t *testing.T) {
	store, ctrl, w := setup(t)
	other, err := store.CreateWindow(wm.WindowSpec{Title: "other"})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if store.Focused() != other.ID {
		t.Fatalf("setup: expected focus on %d", other.ID)
	}

	if err := ctrl.BeginDrag(w.ID, geometry.Point{}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if store.Focused() != w.ID {
		t.Fatalf("drag should focus its target, got %d", store.Focused())
	}
}

func TestCancel_KeepsLastCommittedGeometry(t *testing.T) {
	store, ctrl, w := setup(t)

	if err := ctrl.BeginDrag(w.ID, geometry.Point{X: 400, Y: 300}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := ctrl.Update(geometry.Point{X: 900, Y: 660}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	committed, _ := store.Window(w.ID)
	if err := ctrl.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// Every update committed through the store's clamp path, so cancel must
	// not move the window again.
	got, _ := store.Window(w.ID)
	if got.Rect != committed.Rect {
		t.Fatalf("cancel must leave the last commit %+v in place, got %+v", committed.Rect, got.Rect)
	}
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle after cancel, got %v", ctrl.State())
	}
}

func TestResize_RightBottomCorner(t *testing.T) {
	store, ctrl, w := setup(t)

	if err := ctrl.BeginResize(w.ID, geometry.Point{X: 1000, Y: 700}, EdgeRight|EdgeBottom); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	if err := ctrl.Update(geometry.Point{X: 1100, Y: 650}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.Window(w.ID)
	// +100 width, -50 height from 600x400.
	if got.Rect.Width != 700 || got.Rect.Height != 350 {
		t.Fatalf("expected 700x350, got %dx%d", got.Rect.Width, got.Rect.Height)
	}
	if got.Rect.X != 400 || got.Rect.Y != 300 {
		t.Fatalf("origin must not move on a right/bottom grab, got (%d,%d)", got.Rect.X, got.Rect.Y)
	}
}

func TestResize_LeftEdgePinsRightEdgeAtMinimum(t *testing.T) {
	vp := &staticViewport{rect: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	store := wm.NewStore(wm.Options{Viewport: vp})
	ctrl := New(store, Options{})

	w, err := store.CreateWindow(wm.WindowSpec{
		Title:    "narrow",
		Position: &geometry.Point{X: 400, Y: 300},
		Size:     &geometry.Size{Width: 300, Height: 200},
		MinSize:  geometry.Size{Width: 200, Height: 150},
	})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	if err := ctrl.BeginResize(w.ID, geometry.Point{X: 400, Y: 400}, EdgeLeft); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	// Dragging the left edge 500px right would shrink below the 200px
	// minimum; width bottoms out and the right edge stays at 700.
	if err := ctrl.Update(geometry.Point{X: 900, Y: 400}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.Window(w.ID)
	if got.Rect.Width != 200 {
		t.Fatalf("expected min width 200, got %d", got.Rect.Width)
	}
	if got.Rect.X+got.Rect.Width != 700 {
		t.Fatalf("right edge must stay at 700, got %d", got.Rect.X+got.Rect.Width)
	}
}

func TestResize_InvalidEdgeRejected(t *testing.T) {
	_, ctrl, w := setup(t)

	if err := ctrl.BeginResize(w.ID, geometry.Point{}, EdgeLeft|EdgeRight); !errors.Is(err, wm.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := ctrl.BeginResize(w.ID, geometry.Point{}, 0); !errors.Is(err, wm.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestGesture_CancelledWhenTargetCloses(t *testing.T) {
	store, ctrl, w := setup(t)

	if err := ctrl.BeginDrag(w.ID, geometry.Point{}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := store.CloseWindow(w.ID); err != nil {
		t.Fatalf("CloseWindow: %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Fatalf("gesture should drop when its target closes, got %v", ctrl.State())
	}
}

func TestGesture_CancelledWhenTargetMinimized(t *testing.T) {
	store, ctrl, w := setup(t)

	if err := ctrl.BeginDrag(w.ID, geometry.Point{}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := store.MinimizeWindow(w.ID); err != nil {
		t.Fatalf("MinimizeWindow: %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Fatalf("gesture should drop when its target minimizes, got %v", ctrl.State())
	}
}

func TestEnd_WhileIdleRejected(t *testing.T) {
	_, ctrl, _ := setup(t)

	if err := ctrl.End(geometry.Point{}); !errors.Is(err, wm.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := ctrl.Cancel(); err != nil {
		t.Fatalf("cancel while idle must be a no-op, got %v", err)
	}
}
