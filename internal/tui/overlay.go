package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayNewWindow
	overlayNewWorkspace
)

// overlay is a single-input form floated above the desktop, used for
// anything that needs a name typed in.
type overlay struct {
	kind  overlayKind
	form  *huh.Form
	value string
}

func (o *overlay) Active() bool {
	return o.kind != overlayNone
}

func (o *overlay) ShowNewWindow() tea.Cmd {
	return o.show(overlayNewWindow, "New window", "Title")
}

func (o *overlay) ShowNewWorkspace() tea.Cmd {
	return o.show(overlayNewWorkspace, "New workspace", "Name")
}

func (o *overlay) show(kind overlayKind, title, label string) tea.Cmd {
	o.kind = kind
	o.value = ""
	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(label).
				Value(&o.value),
		),
	)
	return o.form.Init()
}

func (o *overlay) Update(msg tea.Msg) tea.Cmd {
	if o.form == nil {
		return nil
	}
	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}
	return cmd
}

func (o *overlay) Done() bool {
	return o.form != nil && o.form.State == huh.StateCompleted
}

// Take returns the completed form's kind and trimmed value and resets the
// overlay. Call only after Done reports true (or Dismiss to abort).
func (o *overlay) Take() (overlayKind, string) {
	kind := o.kind
	value := strings.TrimSpace(o.value)
	o.Dismiss()
	return kind, value
}

func (o *overlay) Dismiss() {
	o.kind = overlayNone
	o.form = nil
	o.value = ""
}

func (o *overlay) View() string {
	if o.form == nil {
		return ""
	}
	return o.form.View()
}
