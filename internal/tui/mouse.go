package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/wm"
)

// handleMouse translates terminal mouse events into gestures. The desktop
// area starts one row below the status bar, so pointer coordinates shift by
// one before they reach the store.
func (m *model) handleMouse(msg tea.MouseMsg) {
	ptr := geometry.Point{X: msg.X, Y: msg.Y - 1}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.gestures.State() != gesture.StateIdle {
			m.check(m.gestures.Update(ptr))
		}

	case tea.MouseActionRelease:
		if m.gestures.State() != gesture.StateIdle {
			m.check(m.gestures.End(ptr))
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.statusErr = ""
		if msg.Y == m.height-2 {
			m.clickTaskbar(msg.X)
			return
		}
		m.press(ptr)
	}
}

func (m *model) press(ptr geometry.Point) {
	w, ok := hitTest(m.store.ActiveWindows(), ptr)
	if !ok {
		return
	}

	edge, title := grabAt(w.Rect, ptr)
	switch {
	case edge != 0:
		if err := m.gestures.BeginResize(w.ID, ptr, edge); err == nil {
			return
		}
		// Non-resizable window: a border press still means focus.
		m.check(m.store.FocusWindow(w.ID))
	case title:
		if err := m.gestures.BeginDrag(w.ID, ptr); err == nil {
			return
		}
		m.check(m.store.FocusWindow(w.ID))
	default:
		m.check(m.store.FocusWindow(w.ID))
	}
}

func (m *model) clickTaskbar(x int) {
	for _, e := range m.taskbarEntries() {
		if x >= e.start && x < e.end {
			m.check(m.store.RestoreWindow(e.id))
			return
		}
	}
}

// hitTest returns the topmost displayed window containing the point.
func hitTest(windows []wm.Window, p geometry.Point) (wm.Window, bool) {
	stack := wm.StackOrder(windows)
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		if !w.Visible || w.Minimized {
			continue
		}
		if w.Rect.Contains(p.X, p.Y) {
			return w, true
		}
	}
	return wm.Window{}, false
}

// grabAt classifies a press inside a window frame: a resize edge or corner,
// the title bar, or the body. The top row doubles as the title bar, so only
// its outermost cells count as resize corners.
func grabAt(r geometry.Rect, p geometry.Point) (gesture.Edge, bool) {
	onLeft := p.X == r.X
	onRight := p.X == r.X+r.Width-1
	onTop := p.Y == r.Y
	onBottom := p.Y == r.Y+r.Height-1

	var edge gesture.Edge
	if onLeft {
		edge |= gesture.EdgeLeft
	}
	if onRight {
		edge |= gesture.EdgeRight
	}
	if onBottom {
		edge |= gesture.EdgeBottom
	}
	if onTop && (onLeft || onRight) {
		edge |= gesture.EdgeTop
	}

	if edge != 0 {
		return edge, false
	}
	return 0, onTop
}
