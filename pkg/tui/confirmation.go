package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/prefpanel/pkg/modal"
)

const dialogWidth = 60

// ConfirmationModel presents a modal.Machine as a dialog over the panel. The
// machine is the only state; the model only translates keys and draws.
type ConfirmationModel struct {
	machine *modal.Machine
	ctx     context.Context
}

// NewConfirmation creates a confirmation bound to machine
func NewConfirmation(ctx context.Context, machine *modal.Machine) *ConfirmationModel {
	return &ConfirmationModel{machine: machine, ctx: ctx}
}

// Show opens the dialog for an action, replacing any open one
func (m *ConfirmationModel) Show(action modal.Action) tea.Cmd {
	if err := m.machine.Trigger(action); err != nil {
		return func() tea.Msg { return ErrorMsg{Err: err} }
	}
	return nil
}

// Hide dismisses the dialog without running the action
func (m *ConfirmationModel) Hide() {
	m.machine.Cancel()
}

// Active returns whether the dialog is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.machine.State().Open
}

// Update handles key events while the dialog is shown
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.Active() {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		return m.confirm()
	case "n", "N", "esc":
		m.Hide()
	}
	return nil
}

func (m *ConfirmationModel) confirm() tea.Cmd {
	notice, err := m.machine.Confirm(m.ctx)
	if err != nil {
		return func() tea.Msg { return ErrorMsg{Err: err} }
	}
	return func() tea.Msg { return StatusMsg(notice) }
}

// renderDialog draws the dialog box alone
func (m *ConfirmationModel) renderDialog(p Palette) string {
	d := m.machine.Dialog()
	accent := p.SeverityColor(d.Severity)
	contentWidth := dialogWidth - 4

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(dialogWidth)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Width(contentWidth).
		Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(headerStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(p.TextStyle().Render(wordwrap.String(d.Message, contentWidth)))
	b.WriteString("\n\n")

	confirm := lipgloss.NewStyle().
		Background(accent).
		Foreground(p.OnAccent).
		Bold(true).
		Padding(0, 1).
		Render(d.ConfirmLabel + " (y)")
	cancel := lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1).
		Render(d.CancelLabel + " (n)")

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", confirm)
	b.WriteString(lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Right).Render(buttons))

	return borderStyle.Render(b.String())
}

// View draws the dialog centered over background in a width x height area.
// The background is drawn without its own styling, dimmed.
func (m *ConfirmationModel) View(p Palette, background string, width, height int) string {
	if !m.Active() {
		return ""
	}
	left, top, _, _ := m.bounds(width, height)
	dim := lipgloss.NewStyle().Foreground(p.Border).Faint(true)
	return overlay(background, m.renderDialog(p), left, top, width, height, dim)
}

// bounds returns the dialog box origin and size when it is centered in a
// width x height area.
func (m *ConfirmationModel) bounds(width, height int) (left, top, w, h int) {
	// Geometry does not depend on colors
	box := m.renderDialog(Palette{})
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	left = max(0, (width-w)/2)
	top = max(0, (height-h)/2)
	return left, top, w, h
}

// Contains reports whether screen cell (x, y) lies inside the dialog box
// when it is centered in a width x height area.
func (m *ConfirmationModel) Contains(x, y, width, height int) bool {
	left, top, w, h := m.bounds(width, height)
	return x >= left && x < left+w && y >= top && y < top+h
}

// overlay places fg at (left, top) over a width x height canvas holding the
// plain text of bg. Canvas cells outside fg are rendered with dim.
func overlay(bg, fg string, left, top, width, height int, dim lipgloss.Style) string {
	bgLines := strings.Split(ansi.Strip(bg), "\n")
	fgLines := strings.Split(fg, "\n")

	out := make([]string, height)
	for y := range out {
		var line string
		if y < len(bgLines) {
			line = ansi.Truncate(bgLines[y], width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}

		if y < top || y >= top+len(fgLines) {
			out[y] = dim.Render(line)
			continue
		}

		row := fgLines[y-top]
		before := ansi.Truncate(line, left, "")
		after := ansi.TruncateLeft(line, left+ansi.StringWidth(row), "")
		out[y] = dim.Render(before) + row + dim.Render(after)
	}
	return strings.Join(out, "\n")
}
