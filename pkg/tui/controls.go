package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/prefpanel/pkg/catalog"
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/models"
	"github.com/pluqqy/prefpanel/pkg/store"
)

// controlEnv is what a control may touch when it handles input
type controlEnv struct {
	store     *store.Store
	openModal func(modal.Action) tea.Cmd
}

// control renders and edits one kind of catalog item
type control interface {
	Render(item catalog.Item, focused bool, p Palette) string
	Activate(env controlEnv, item catalog.Item) tea.Cmd
	// Adjust reports false when the control has no notion of direction
	Adjust(env controlEnv, item catalog.Item, delta int) (bool, tea.Cmd)
}

var controls = map[catalog.ControlKind]control{
	catalog.KindToggle: toggleControl{},
	catalog.KindSelect: selectControl{},
	catalog.KindSlider: sliderControl{},
	catalog.KindButton: buttonControl{},
}

func controlFor(kind catalog.ControlKind) (control, bool) {
	c, ok := controls[kind]
	return c, ok
}

type toggleControl struct{}

func (toggleControl) Render(item catalog.Item, focused bool, p Palette) string {
	style := p.TextStyle()
	if focused {
		style = p.CursorStyle()
	}
	if item.Value.Bool {
		return style.Render("[✓] On")
	}
	return style.Render("[ ] Off")
}

func (toggleControl) Activate(env controlEnv, item catalog.Item) tea.Cmd {
	_ = env.store.Toggle(item.Key)
	return nil
}

func (toggleControl) Adjust(controlEnv, catalog.Item, int) (bool, tea.Cmd) {
	return false, nil
}

// selectControl cycles through the declared options, so it can only ever
// write a value the definition allows.
type selectControl struct{}

func (selectControl) Render(item catalog.Item, focused bool, p Palette) string {
	label := item.OptionLabel()
	if focused {
		return p.CursorStyle().Render("‹ " + label + " ›")
	}
	return p.TextStyle().Render("  " + label + "  ")
}

func (s selectControl) Activate(env controlEnv, item catalog.Item) tea.Cmd {
	_, cmd := s.Adjust(env, item, 1)
	return cmd
}

func (selectControl) Adjust(env controlEnv, item catalog.Item, delta int) (bool, tea.Cmd) {
	n := len(item.Options)
	if n == 0 {
		return true, nil
	}
	idx := item.OptionIndex()
	if idx < 0 {
		idx = 0
	}
	next := ((idx+delta)%n + n) % n
	_ = env.store.Update(item.Key, models.EnumValue(item.Options[next].Value))
	return true, nil
}

type sliderControl struct{}

func (sliderControl) Render(item catalog.Item, focused bool, p Palette) string {
	var bar strings.Builder
	for v := models.MinFontSize; v <= models.MaxFontSize; v++ {
		switch {
		case v < item.Value.Int:
			bar.WriteString("━")
		case v == item.Value.Int:
			bar.WriteString("●")
		default:
			bar.WriteString("─")
		}
	}

	trackStyle := p.DescriptionStyle()
	if focused {
		trackStyle = p.CursorStyle()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		trackStyle.Render("A- "+bar.String()+" A+"),
		p.TextStyle().Render(fmt.Sprintf(" %dpx", item.Value.Int)),
	)
}

func (sliderControl) Activate(controlEnv, catalog.Item) tea.Cmd {
	return nil
}

func (sliderControl) Adjust(env controlEnv, item catalog.Item, delta int) (bool, tea.Cmd) {
	// SetFontSize clamps before the write
	_ = env.store.SetFontSize(item.Value.Int + delta)
	return true, nil
}

type buttonControl struct{}

func (buttonControl) Render(item catalog.Item, focused bool, p Palette) string {
	return p.ButtonStyle(item.Destructive(), focused).Render(item.Title)
}

func (buttonControl) Activate(env controlEnv, item catalog.Item) tea.Cmd {
	if env.openModal == nil {
		return nil
	}
	return env.openModal(item.Action)
}

func (buttonControl) Adjust(controlEnv, catalog.Item, int) (bool, tea.Cmd) {
	return false, nil
}
