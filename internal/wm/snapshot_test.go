package wm

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/1broseidon/deskwm/internal/geometry"
)

func TestSnapshot_SaveLoadRoundTrip(t *testing.T) {
	s, vp := testStore()
	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")
	if err := s.MaximizeWindow(a.ID); err != nil {
		t.Fatalf("MaximizeWindow: %v", err)
	}
	other, _ := s.CreateWorkspace("other")
	if err := s.AssignWindow(b.ID, other.ID); err != nil {
		t.Fatalf("AssignWindow: %v", err)
	}

	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := s.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	restored, err := LoadSnapshot(path, Options{Viewport: vp})
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	gotA, err := restored.Window(a.ID)
	if err != nil {
		t.Fatalf("Window(a): %v", err)
	}
	if !gotA.Maximized || gotA.Rect != vp.rect {
		t.Fatalf("a should come back maximized at %+v, got %+v", vp.rect, gotA.Rect)
	}
	if gotA.Restore == nil {
		t.Fatalf("a should keep its restore geometry")
	}

	gotB, err := restored.Window(b.ID)
	if err != nil {
		t.Fatalf("Window(b): %v", err)
	}
	if gotB.Workspace != other.ID {
		t.Fatalf("b should stay on workspace %d, got %d", other.ID, gotB.Workspace)
	}

	if restored.ActiveWorkspace().ID != s.ActiveWorkspace().ID {
		t.Fatalf("active workspace should survive the round trip")
	}
	if restored.Focused() != s.Focused() {
		t.Fatalf("focus should survive: want %d, got %d", s.Focused(), restored.Focused())
	}
}

func TestRestoreStore_ReclampsAgainstSmallerViewport(t *testing.T) {
	s, _ := testStore()
	w := mustCreate(t, s, "a")
	if err := s.MoveWindow(w.ID, geometry.Point{X: 1200, Y: 500}); err != nil {
		t.Fatalf("MoveWindow: %v", err)
	}

	small := &staticViewport{rect: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	restored, err := RestoreStore(s.Snapshot(), Options{Viewport: small})
	if err != nil {
		t.Fatalf("RestoreStore: %v", err)
	}

	got, _ := restored.Window(w.ID)
	if got.Rect.X+got.Rect.Width > 800 || got.Rect.Y+got.Rect.Height > 600 {
		t.Fatalf("restored window should be clamped to the new viewport, got %+v", got.Rect)
	}
}

func TestRestoreStore_StaleFocusFallsBack(t *testing.T) {
	s, _ := testStore()
	a := mustCreate(t, s, "a")
	mustCreate(t, s, "b")

	snap := s.Snapshot()
	snap.Focused = 999 // window that no longer exists

	restored, err := RestoreStore(snap, Options{})
	if err != nil {
		t.Fatalf("RestoreStore: %v", err)
	}
	// b is topmost, so it picks up focus; a stays below.
	if restored.Focused() == 0 || restored.Focused() == a.ID {
		t.Fatalf("expected fallback to topmost eligible, got %d", restored.Focused())
	}
}

func TestRestoreStore_DuplicateWindowIDRejected(t *testing.T) {
	s, _ := testStore()
	mustCreate(t, s, "a")

	snap := s.Snapshot()
	snap.Windows = append(snap.Windows, snap.Windows[0])

	if _, err := RestoreStore(snap, Options{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml"), Options{})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
