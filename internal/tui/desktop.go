package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Cell classes drive styling: each canvas cell remembers what it is part of
// so rows can be styled in runs instead of per cell.
const (
	clsEmpty byte = iota
	clsFrame
	clsFrameFocus
	clsTitle
	clsTitleFocus
	clsBody
)

var (
	frameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	frameFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	titleFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	statusStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	errStyle     = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("203"))
	taskbarStyle = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)
)

// canvas is a flat cell grid the windows are painted onto, bottom of the
// stack first.
type canvas struct {
	w, h  int
	runes []rune
	cls   []byte
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([]rune, w*h), cls: make([]byte, w*h)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, cls byte) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	i := y*c.w + x
	c.runes[i] = r
	c.cls[i] = cls
}

func (c *canvas) drawWindow(w wm.Window, focused bool) {
	frame, title := clsFrame, clsTitle
	if focused {
		frame, title = clsFrameFocus, clsTitleFocus
	}

	r := w.Rect
	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	// Frame
	c.set(r.X, r.Y, '╭', frame)
	c.set(right, r.Y, '╮', frame)
	c.set(r.X, bottom, '╰', frame)
	c.set(right, bottom, '╯', frame)
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, '─', frame)
		c.set(x, bottom, '─', frame)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, '│', frame)
		c.set(right, y, '│', frame)
	}

	// Body erases whatever is stacked below
	for y := r.Y + 1; y < bottom; y++ {
		for x := r.X + 1; x < right; x++ {
			c.set(x, y, ' ', clsBody)
		}
	}

	// Title overlaid on the top border
	if r.Width >= 8 {
		label := " " + truncate(w.Title, r.Width-6) + " "
		for i, ch := range []rune(label) {
			c.set(r.X+2+i, r.Y, ch, title)
		}
	}
}

func (c *canvas) render() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := y * c.w
		x := 0
		for x < c.w {
			cls := c.cls[row+x]
			start := x
			for x < c.w && c.cls[row+x] == cls {
				x++
			}
			chunk := string(c.runes[row+start : row+x])
			switch cls {
			case clsFrame:
				chunk = frameStyle.Render(chunk)
			case clsFrameFocus:
				chunk = frameFocusStyle.Render(chunk)
			case clsTitle:
				chunk = titleStyle.Render(chunk)
			case clsTitleFocus:
				chunk = titleFocusStyle.Render(chunk)
			}
			sb.WriteString(chunk)
		}
	}
	return sb.String()
}

func (m model) renderDesktop() string {
	deskH := m.height - chromeLines
	if deskH < 1 {
		deskH = 1
	}

	var content string
	if m.overlay.Active() {
		content = lipgloss.Place(m.width, deskH, lipgloss.Center, lipgloss.Center,
			overlayStyle.Render(m.overlay.View()))
	} else {
		content = m.renderWindows(deskH)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatusBar(),
		content,
		m.renderTaskbar(),
		m.renderHelpBar(),
	)
}

func (m model) renderWindows(deskH int) string {
	c := newCanvas(m.width, deskH)
	focused := m.store.Focused()
	for _, w := range wm.StackOrder(m.store.ActiveWindows()) {
		if !w.Visible || w.Minimized {
			continue
		}
		c.drawWindow(w, w.ID == focused)
	}
	return c.render()
}

func (m model) renderStatusBar() string {
	wss := m.store.Workspaces()
	active := m.store.ActiveWorkspace()
	pos := 1
	for i, ws := range wss {
		if ws.ID == active.ID {
			pos = i + 1
			break
		}
	}

	left := fmt.Sprintf(" deskwm  ws %d/%d: %s  windows: %d",
		pos, len(wss), active.Name, len(m.store.ActiveWindows()))
	if st := m.gestures.State(); st != gesture.StateIdle {
		left += "  [" + st.String() + "]"
	}

	line := statusStyle.Render(padTo(left, m.width))
	if m.statusErr != "" {
		msg := "  " + truncate(m.statusErr, m.width/2)
		line = statusStyle.Render(padTo(left, m.width-len([]rune(msg)))) + errStyle.Render(msg)
	}
	return line
}

type taskbarEntry struct {
	id    wm.WindowID
	label string
	start int
	end   int
}

// taskbarEntries lays out the minimized windows of the active workspace.
// Rendering and click handling both derive from this, so hit ranges always
// match what is on screen.
func (m model) taskbarEntries() []taskbarEntry {
	var entries []taskbarEntry
	x := 1
	for _, w := range wm.StackOrder(m.store.ActiveWindows()) {
		if !w.Minimized {
			continue
		}
		label := " ▾ " + truncate(w.Title, 16) + " "
		n := len([]rune(label))
		if x+n > m.width {
			break
		}
		entries = append(entries, taskbarEntry{id: w.ID, label: label, start: x, end: x + n})
		x += n + 1
	}
	return entries
}

func (m model) renderTaskbar() string {
	entries := m.taskbarEntries()
	var sb strings.Builder
	x := 0
	for _, e := range entries {
		sb.WriteString(strings.Repeat(" ", e.start-x))
		sb.WriteString(taskbarStyle.Render(e.label))
		x = e.end
	}
	if x < m.width {
		sb.WriteString(strings.Repeat(" ", m.width-x))
	}
	return sb.String()
}

func (m model) renderHelpBar() string {
	help := " n new · w workspace · tab cycle · m min · f max · x close · , . snap · [ ] ws · drag borders to resize · q quit"
	return helpStyle.Render(padTo(truncate(help, m.width), m.width))
}

func padTo(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
