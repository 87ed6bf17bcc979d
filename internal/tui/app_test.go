package tui

import (
	"strings"
	"testing"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/wm"
)

func testModel(t *testing.T) *model {
	t.Helper()
	m := newModel(config.DefaultConfig())
	m.width = 80
	m.height = 24
	m.viewport.rect = geometry.Rect{Width: 80, Height: 24 - chromeLines}
	return &m
}

func TestHitTest_TopmostWins(t *testing.T) {
	m := testModel(t)
	a, _ := m.store.CreateWindow(wm.WindowSpec{
		Title:    "a",
		Position: &geometry.Point{X: 0, Y: 0},
		Size:     &geometry.Size{Width: 30, Height: 10},
	})
	b, _ := m.store.CreateWindow(wm.WindowSpec{
		Title:    "b",
		Position: &geometry.Point{X: 10, Y: 4},
		Size:     &geometry.Size{Width: 30, Height: 10},
	})

	// Overlap region belongs to b, created later and therefore on top.
	hit, ok := hitTest(m.store.ActiveWindows(), geometry.Point{X: 15, Y: 6})
	if !ok || hit.ID != b.ID {
		t.Fatalf("expected window b, got %+v ok=%v", hit, ok)
	}

	// Outside b but inside a.
	hit, ok = hitTest(m.store.ActiveWindows(), geometry.Point{X: 2, Y: 2})
	if !ok || hit.ID != a.ID {
		t.Fatalf("expected window a, got %+v ok=%v", hit, ok)
	}

	if _, ok := hitTest(m.store.ActiveWindows(), geometry.Point{X: 79, Y: 20}); ok {
		t.Fatal("empty desktop area should miss")
	}
}

func TestHitTest_SkipsMinimized(t *testing.T) {
	m := testModel(t)
	w, _ := m.store.CreateWindow(wm.WindowSpec{
		Title:    "a",
		Position: &geometry.Point{X: 0, Y: 0},
		Size:     &geometry.Size{Width: 30, Height: 10},
	})
	if err := m.store.MinimizeWindow(w.ID); err != nil {
		t.Fatalf("MinimizeWindow: %v", err)
	}
	if _, ok := hitTest(m.store.ActiveWindows(), geometry.Point{X: 5, Y: 5}); ok {
		t.Fatal("minimized window should not be hit")
	}
}

func TestGrabAt(t *testing.T) {
	r := geometry.Rect{X: 10, Y: 5, Width: 20, Height: 8}

	tests := []struct {
		name  string
		p     geometry.Point
		edge  gesture.Edge
		title bool
	}{
		{"top left corner", geometry.Point{X: 10, Y: 5}, gesture.EdgeTop | gesture.EdgeLeft, false},
		{"top right corner", geometry.Point{X: 29, Y: 5}, gesture.EdgeTop | gesture.EdgeRight, false},
		{"bottom right corner", geometry.Point{X: 29, Y: 12}, gesture.EdgeBottom | gesture.EdgeRight, false},
		{"left edge", geometry.Point{X: 10, Y: 8}, gesture.EdgeLeft, false},
		{"right edge", geometry.Point{X: 29, Y: 8}, gesture.EdgeRight, false},
		{"bottom edge", geometry.Point{X: 20, Y: 12}, gesture.EdgeBottom, false},
		{"title bar", geometry.Point{X: 20, Y: 5}, 0, true},
		{"body", geometry.Point{X: 20, Y: 8}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, title := grabAt(r, tt.p)
			if edge != tt.edge || title != tt.title {
				t.Fatalf("grabAt(%+v) = (%v, %v), want (%v, %v)", tt.p, edge, title, tt.edge, tt.title)
			}
		})
	}
}

func TestPressDragsTitleBar(t *testing.T) {
	m := testModel(t)
	w, _ := m.store.CreateWindow(wm.WindowSpec{
		Title:    "a",
		Position: &geometry.Point{X: 10, Y: 5},
		Size:     &geometry.Size{Width: 20, Height: 8},
	})

	m.press(geometry.Point{X: 20, Y: 5})
	if m.gestures.State() != gesture.StateDragging {
		t.Fatalf("expected dragging, got %v", m.gestures.State())
	}
	if m.gestures.Target() != w.ID {
		t.Fatalf("wrong drag target: %d", m.gestures.Target())
	}
}

func TestPressBodyOnlyFocuses(t *testing.T) {
	m := testModel(t)
	a, _ := m.store.CreateWindow(wm.WindowSpec{
		Title:    "a",
		Position: &geometry.Point{X: 0, Y: 0},
		Size:     &geometry.Size{Width: 30, Height: 10},
	})
	if _, err := m.store.CreateWindow(wm.WindowSpec{
		Title:    "b",
		Position: &geometry.Point{X: 40, Y: 0},
		Size:     &geometry.Size{Width: 30, Height: 10},
	}); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	m.press(geometry.Point{X: 5, Y: 5})
	if m.gestures.State() != gesture.StateIdle {
		t.Fatalf("body press must not start a gesture, got %v", m.gestures.State())
	}
	if m.store.Focused() != a.ID {
		t.Fatalf("body press should focus window a, focused=%d", m.store.Focused())
	}
}

func TestCanvasDrawsFrameAndTitle(t *testing.T) {
	c := newCanvas(40, 12)
	c.drawWindow(wm.Window{
		Title:   "editor",
		Rect:    geometry.Rect{X: 2, Y: 1, Width: 20, Height: 6},
		Visible: true,
	}, false)

	if got := c.runes[1*40+2]; got != '╭' {
		t.Fatalf("expected corner at (2,1), got %q", got)
	}
	if got := c.runes[6*40+21]; got != '╯' {
		t.Fatalf("expected corner at (21,6), got %q", got)
	}
	// Title starts two cells in, after a leading space.
	row := string(c.runes[1*40 : 1*40+40])
	if !strings.Contains(row, "editor") {
		t.Fatalf("title missing from top border: %q", row)
	}
}

func TestCanvasUpperWindowErasesLower(t *testing.T) {
	c := newCanvas(40, 12)
	lower := wm.Window{Title: "lower", Rect: geometry.Rect{X: 0, Y: 0, Width: 20, Height: 8}, Visible: true}
	upper := wm.Window{Title: "upper", Rect: geometry.Rect{X: 5, Y: 2, Width: 20, Height: 8}, Visible: true}
	c.drawWindow(lower, false)
	c.drawWindow(upper, true)

	// A cell inside upper's body that lower's frame passed through.
	if got := c.runes[3*40+19]; got != ' ' {
		t.Fatalf("upper window body should erase lower frame, got %q", got)
	}
	if got := c.cls[3*40+19]; got != clsBody {
		t.Fatalf("expected body class, got %d", got)
	}
}

func TestTaskbarEntriesMatchMinimized(t *testing.T) {
	m := testModel(t)
	a, _ := m.store.CreateWindow(wm.WindowSpec{Title: "first"})
	if _, err := m.store.CreateWindow(wm.WindowSpec{Title: "second"}); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if err := m.store.MinimizeWindow(a.ID); err != nil {
		t.Fatalf("MinimizeWindow: %v", err)
	}

	entries := m.taskbarEntries()
	if len(entries) != 1 {
		t.Fatalf("expected one taskbar entry, got %d", len(entries))
	}
	if entries[0].id != a.ID {
		t.Fatalf("wrong entry id: %d", entries[0].id)
	}
	if entries[0].end <= entries[0].start {
		t.Fatalf("degenerate hit range: %+v", entries[0])
	}

	// Clicking inside the range restores the window.
	m.clickTaskbar(entries[0].start + 1)
	got, _ := m.store.Window(a.ID)
	if got.Minimized {
		t.Fatal("taskbar click should restore the window")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := truncate("hello world", 5); got != "hell…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("hi", 0); got != "" {
		t.Fatalf("zero width = %q", got)
	}
}
