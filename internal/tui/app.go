package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Cell-unit geometry for terminal windows. The daemon's pixel defaults make
// no sense on a character grid, so the TUI carries its own.
var (
	cellDefaultSize = geometry.Size{Width: 40, Height: 12}
	cellMinSize     = geometry.Size{Width: 16, Height: 5}
	cellCascadeBase = geometry.Point{X: 2, Y: 1}
	cellCascadeStep = geometry.Point{X: 3, Y: 2}
)

const cellSnapThreshold = 2

// chromeLines is the vertical space taken by the status bar (top) plus the
// taskbar and help bar (bottom).
const chromeLines = 3

// termViewport is a mutable viewport sized to the terminal's desktop area.
// bubbletea models run single-threaded, so no locking.
type termViewport struct {
	rect geometry.Rect
}

func (v *termViewport) Bounds() geometry.Rect { return v.rect }

// model is the root bubbletea model for the desktop.
type model struct {
	cfg      *config.Config
	viewport *termViewport
	store    *wm.Store
	gestures *gesture.Controller

	// Terminal dimensions
	width  int
	height int

	// Form overlay (new window / new workspace)
	overlay overlay

	// Last operation error, shown in the status bar until the next input.
	statusErr string
}

func newModel(cfg *config.Config) model {
	vp := &termViewport{rect: geometry.Rect{Width: 80, Height: 24 - chromeLines}}
	store := wm.NewStore(wm.Options{
		Viewport:      vp,
		DefaultSize:   cellDefaultSize,
		MinWindowSize: cellMinSize,
		CascadeBase:   cellCascadeBase,
		CascadeStep:   cellCascadeStep,
		MaxWorkspaces: cfg.Limits.MaxWorkspaces,
		MaxWindows:    cfg.Limits.MaxWindows,
		DefaultWSName: cfg.DefaultWorkspace,
	})
	gestures := gesture.New(store, gesture.Options{SnapThreshold: cellSnapThreshold})

	return model{
		cfg:      cfg,
		viewport: vp,
		store:    store,
		gestures: gestures,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Form overlay captures all input when active
	if m.overlay.Active() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.overlay.Dismiss()
				return m, nil
			}
		case tea.WindowSizeMsg:
			m.applySize(msg)
			return m, nil
		}
		cmd := m.overlay.Update(msg)
		if m.overlay.Done() {
			m.submitOverlay()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.applySize(msg)
		return m, nil
	}
	return m, nil
}

func (m *model) applySize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	h := msg.Height - chromeLines
	if h < 1 {
		h = 1
	}
	m.viewport.rect = geometry.Rect{Width: msg.Width, Height: h}
	m.store.ReclampAll()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusErr = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		m.check(m.gestures.Cancel())
		return m, nil

	case "n":
		cmd := m.overlay.ShowNewWindow()
		return m, cmd
	case "w":
		cmd := m.overlay.ShowNewWorkspace()
		return m, cmd

	case "tab":
		m.check(m.store.CycleFocus())
		return m, nil

	case "m":
		m.withFocused(m.store.MinimizeWindow)
		return m, nil
	case "f":
		m.toggleMaximize()
		return m, nil
	case "r":
		m.withFocused(m.store.RestoreWindow)
		return m, nil
	case "x":
		m.withFocused(m.store.CloseWindow)
		return m, nil
	case "b":
		m.withFocused(m.store.SendToBack)
		return m, nil

	case ",":
		m.snapFocused(geometry.RegionLeftHalf)
		return m, nil
	case ".":
		m.snapFocused(geometry.RegionRightHalf)
		return m, nil

	case "left", "right", "up", "down":
		m.nudgeFocused(msg.String())
		return m, nil

	case "[":
		m.switchWorkspaceBy(-1)
		return m, nil
	case "]":
		m.switchWorkspaceBy(1)
		return m, nil
	case "d":
		m.deleteActiveWorkspace()
		return m, nil
	}

	// Digits jump straight to a workspace by position.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		m.switchWorkspaceTo(int(s[0] - '1'))
	}
	return m, nil
}

func (m *model) withFocused(op func(wm.WindowID) error) {
	id := m.store.Focused()
	if id == 0 {
		return
	}
	m.check(op(id))
}

func (m *model) toggleMaximize() {
	id := m.store.Focused()
	if id == 0 {
		return
	}
	w, err := m.store.Window(id)
	if err != nil {
		m.check(err)
		return
	}
	if w.Maximized {
		m.check(m.store.RestoreWindow(id))
	} else {
		m.check(m.store.MaximizeWindow(id))
	}
}

func (m *model) snapFocused(region geometry.SnapRegion) {
	id := m.store.Focused()
	if id == 0 {
		return
	}
	m.check(m.store.SnapWindow(id, region))
}

const nudgeStep = 2

func (m *model) nudgeFocused(key string) {
	id := m.store.Focused()
	if id == 0 {
		return
	}
	w, err := m.store.Window(id)
	if err != nil {
		m.check(err)
		return
	}
	pos := w.Rect.Pos()
	switch key {
	case "left":
		pos.X -= nudgeStep
	case "right":
		pos.X += nudgeStep
	case "up":
		pos.Y--
	case "down":
		pos.Y++
	}
	m.check(m.store.MoveWindow(id, pos))
}

func (m *model) switchWorkspaceBy(delta int) {
	wss := m.store.Workspaces()
	cur := 0
	for i, ws := range wss {
		if ws.Active {
			cur = i
			break
		}
	}
	next := (cur + delta + len(wss)) % len(wss)
	m.check(m.store.SwitchWorkspace(wss[next].ID))
}

func (m *model) switchWorkspaceTo(index int) {
	wss := m.store.Workspaces()
	if index < 0 || index >= len(wss) {
		return
	}
	m.check(m.store.SwitchWorkspace(wss[index].ID))
}

func (m *model) deleteActiveWorkspace() {
	m.check(m.store.DeleteWorkspace(m.store.ActiveWorkspace().ID))
}

func (m *model) submitOverlay() {
	kind, value := m.overlay.Take()
	if value == "" {
		return
	}
	switch kind {
	case overlayNewWindow:
		_, err := m.store.CreateWindow(wm.WindowSpec{Title: value})
		m.check(err)
	case overlayNewWorkspace:
		ws, err := m.store.CreateWorkspace(value)
		if err != nil {
			m.check(err)
			return
		}
		m.check(m.store.SwitchWorkspace(ws.ID))
	}
}

func (m *model) check(err error) {
	if err != nil {
		m.statusErr = err.Error()
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return m.renderDesktop()
}
