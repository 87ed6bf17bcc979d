package daemon

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

type mutableViewport struct {
	rect geometry.Rect
}

func (v *mutableViewport) Bounds() geometry.Rect { return v.rect }

func TestReconciler_ReclampsAfterViewportChange(t *testing.T) {
	vp := &mutableViewport{rect: geometry.Rect{Width: 1920, Height: 1080}}
	store := wm.NewStore(wm.Options{Viewport: vp})

	w, err := store.CreateWindow(wm.WindowSpec{
		Title:    "a",
		Position: &geometry.Point{X: 1400, Y: 800},
		Size:     &geometry.Size{Width: 400, Height: 200},
	})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	r := NewReconciler(ReconcilerConfig{Logger: slog.Default()}, store)

	// No change yet: reconcile must not touch anything.
	r.ReconcileNow()
	got, _ := store.Window(w.ID)
	if got.Rect.X != 1400 {
		t.Fatalf("reconcile without change moved the window to %+v", got.Rect)
	}

	vp.rect = geometry.Rect{Width: 1024, Height: 768}
	r.ReconcileNow()
	got, _ = store.Window(w.ID)
	if got.Rect.X+got.Rect.Width > 1024 || got.Rect.Y+got.Rect.Height > 768 {
		t.Fatalf("window not re-clamped after shrink: %+v", got.Rect)
	}
}

func TestPersister_SavesDirtyState(t *testing.T) {
	store := wm.NewStore(wm.Options{})
	path := filepath.Join(t.TempDir(), "state.yaml")
	p := NewPersister(store, path, slog.Default())

	if _, err := store.CreateWindow(wm.WindowSpec{Title: "a"}); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	p.flushIfDirty()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected state file: %v", err)
	}

	restored, err := wm.LoadSnapshot(path, wm.Options{})
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(restored.ActiveWindows()) != 1 {
		t.Fatalf("expected one window after restore")
	}
}

func TestPersister_RunFlushesOnCancel(t *testing.T) {
	store := wm.NewStore(wm.Options{})
	path := filepath.Join(t.TempDir(), "state.yaml")
	p := NewPersister(store, path, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected state file after shutdown: %v", err)
	}
}
