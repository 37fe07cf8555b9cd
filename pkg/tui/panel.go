package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/prefpanel/pkg/catalog"
	"github.com/pluqqy/prefpanel/pkg/models"
	"github.com/pluqqy/prefpanel/pkg/store"
)

type pane int

const (
	sidebarPane pane = iota
	detailPane
)

const (
	headerHeight    = 3 // title, subtitle, blank line
	statusBarHeight = 1 // reserved below the panel by App
	sidebarWidth    = 26
	minPanelWidth   = 80
)

const subtitle = "Manage your account preferences and application settings"

var quickThemes = []struct {
	mode  models.ThemeMode
	icon  string
	label string
	key   string
}{
	{models.ThemeLight, "☀", "Light", "1"},
	{models.ThemeDark, "☾", "Dark", "2"},
	{models.ThemeSystem, "▣", "System", "3"},
}

// PanelModel is the sidebar of categories plus the detail pane of the
// active category.
type PanelModel struct {
	store   *store.Store
	confirm *ConfirmationModel
	logger  zerolog.Logger
	keys    keyMap
	help    help.Model

	copyToClipboard func(string) error

	activeCategory int
	itemCursor     int
	activePane     pane
	width          int
	height         int
}

// NewPanelModel creates the panel showing startCategory. Unknown ids fall
// back to the first category.
func NewPanelModel(s *store.Store, confirm *ConfirmationModel, startCategory string, logger zerolog.Logger) *PanelModel {
	m := &PanelModel{
		store:           s,
		confirm:         confirm,
		logger:          logger.With().Str("component", "panel").Logger(),
		keys:            newKeyMap(),
		help:            help.New(),
		copyToClipboard: clipboard.WriteAll,
	}
	for i, c := range catalog.Categories() {
		if c.ID == startCategory {
			m.activeCategory = i
		}
	}
	return m
}

func (m *PanelModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// ActiveCategory returns the id of the category shown in the detail pane
func (m *PanelModel) ActiveCategory() string {
	return catalog.Categories()[m.activeCategory].ID
}

// FocusedItem returns the item under the detail cursor
func (m *PanelModel) FocusedItem() (catalog.Item, bool) {
	cat := m.category()
	if m.itemCursor < 0 || m.itemCursor >= len(cat.Items) {
		return catalog.Item{}, false
	}
	return cat.Items[m.itemCursor], true
}

func (m *PanelModel) category() catalog.Category {
	return catalog.Build(m.store.Preferences())[m.activeCategory]
}

func (m *PanelModel) env() controlEnv {
	return controlEnv{
		store:     m.store,
		openModal: m.confirm.Show,
	}
}

func (m *PanelModel) selectCategory(idx int) {
	n := len(catalog.Categories())
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	if idx != m.activeCategory {
		m.activeCategory = idx
		m.itemCursor = 0
	}
}

// Update handles input for the panel and the dialog on top of it
func (m *PanelModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.confirm.Active() {
			return m.confirm.Update(msg)
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *PanelModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Copy):
		return m.copyPreferences()

	case key.Matches(msg, m.keys.Light), key.Matches(msg, m.keys.Dark), key.Matches(msg, m.keys.System):
		if m.ActiveCategory() != "appearance" {
			return nil
		}
		for _, qt := range quickThemes {
			if msg.String() == qt.key {
				_ = m.store.Update(models.KeyTheme, models.EnumValue(string(qt.mode)))
			}
		}

	case key.Matches(msg, m.keys.Tab):
		if m.activePane == sidebarPane {
			m.focusDetail()
		} else {
			m.activePane = sidebarPane
		}

	case key.Matches(msg, m.keys.Up):
		if m.activePane == sidebarPane {
			m.selectCategory(m.activeCategory - 1)
		} else if m.itemCursor > 0 {
			m.itemCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.activePane == sidebarPane {
			m.selectCategory(m.activeCategory + 1)
		} else if m.itemCursor < len(m.category().Items)-1 {
			m.itemCursor++
		}

	case key.Matches(msg, m.keys.Left):
		if m.activePane == detailPane {
			if handled, cmd := m.adjust(-1); handled {
				return cmd
			}
			m.activePane = sidebarPane
		}

	case key.Matches(msg, m.keys.Right):
		if m.activePane == sidebarPane {
			m.focusDetail()
			return nil
		}
		_, cmd := m.adjust(1)
		return cmd

	case key.Matches(msg, m.keys.Activate):
		if m.activePane == sidebarPane {
			m.focusDetail()
			return nil
		}
		item, ok := m.FocusedItem()
		if !ok {
			return nil
		}
		if c, ok := controlFor(item.Kind); ok {
			return c.Activate(m.env(), item)
		}
	}
	return nil
}

func (m *PanelModel) focusDetail() {
	if len(m.category().Items) > 0 {
		m.activePane = detailPane
	}
}

func (m *PanelModel) adjust(delta int) (bool, tea.Cmd) {
	item, ok := m.FocusedItem()
	if !ok {
		return false, nil
	}
	c, ok := controlFor(item.Kind)
	if !ok {
		return false, nil
	}
	return c.Adjust(m.env(), item, delta)
}

func (m *PanelModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if m.confirm.Active() {
		if !m.confirm.Contains(msg.X, msg.Y, m.width, m.height-statusBarHeight) {
			m.confirm.Hide()
		}
		return nil
	}

	// Sidebar rows start below the header and the box top border
	row := msg.Y - headerHeight - 1
	if msg.X < sidebarWidth+2 && row >= 0 && row < len(catalog.Categories()) {
		m.selectCategory(row)
		m.activePane = sidebarPane
	}
	return nil
}

func (m *PanelModel) copyPreferences() tea.Cmd {
	data, err := yaml.Marshal(m.store.Preferences())
	if err != nil {
		return func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("failed to encode preferences: %w", err)} }
	}
	if err := m.copyToClipboard(string(data)); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard write failed")
		return func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("failed to copy to clipboard: %w", err)} }
	}
	return func() tea.Msg { return StatusMsg("preferences → clipboard") }
}

// View renders the panel with the given palette. Once a size is known the
// output never exceeds the terminal height minus the status bar line.
func (m *PanelModel) View(p Palette) string {
	prefs := m.store.Preferences()
	cats := catalog.Build(prefs)

	h := m.help
	h.Styles.ShortKey = p.CursorStyle()
	h.Styles.FullKey = p.CursorStyle()
	h.Styles.ShortDesc = p.DescriptionStyle()
	h.Styles.FullDesc = p.DescriptionStyle()
	helpLine := " " + h.View(m.keys)

	budget := 0
	if m.height > 0 {
		budget = m.height - statusBarHeight - headerHeight - lipgloss.Height(helpLine)
		if budget < 1 {
			budget = 1
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(p),
		m.fitBody(cats, prefs, p, budget),
		helpLine,
	)
}

// fitBody gives up the quick theme card, then item gaps, then scrolls the
// detail pane until the body fits in budget lines. A budget of 0 means
// unlimited.
func (m *PanelModel) fitBody(cats []catalog.Category, prefs models.Preferences, p Palette, budget int) string {
	density := densityFor(prefs.FontSize)

	body := m.renderBody(cats, prefs, p, density, true, 0)
	if budget == 0 || lipgloss.Height(body) <= budget {
		return body
	}

	body = m.renderBody(cats, prefs, p, density, false, 0)
	if lipgloss.Height(body) <= budget {
		return body
	}

	density.ItemGap = 0
	body = m.renderBody(cats, prefs, p, density, false, budget)
	return clipLines(body, budget)
}

func (m *PanelModel) renderBody(cats []catalog.Category, prefs models.Preferences, p Palette, d Density, withCard bool, maxHeight int) string {
	width := m.width
	if width < minPanelWidth {
		width = minPanelWidth
	}
	detailWidth := width - (sidebarWidth + 2) - 1 - 2

	cat := cats[m.activeCategory]
	detail := m.renderDetail(cat, detailWidth, p, d, maxHeight)
	if withCard && cat.ID == "appearance" {
		detail = lipgloss.JoinVertical(lipgloss.Left, detail, renderQuickThemes(prefs.Theme, detailWidth, p, d))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(cats, p),
		" ",
		detail,
	)
}

func (m *PanelModel) renderHeader(p Palette) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Render("⚙ Settings")
	sub := p.DescriptionStyle().Render(subtitle)
	return lipgloss.NewStyle().PaddingLeft(1).Render(title + "\n" + sub + "\n")
}

func (m *PanelModel) renderSidebar(cats []catalog.Category, p Palette) string {
	rows := make([]string, 0, len(cats))
	for i, c := range cats {
		chevron := "›"
		style := p.TextStyle()
		if i == m.activeCategory {
			chevron = "▾"
			style = p.SelectedStyle()
		}
		label := fmt.Sprintf(" %s %s", c.Icon, c.Title)
		pad := sidebarWidth - lipgloss.Width(label) - 2
		if pad < 1 {
			pad = 1
		}
		rows = append(rows, style.Width(sidebarWidth).Render(label+strings.Repeat(" ", pad)+chevron))
	}

	return p.BorderStyle(m.activePane == sidebarPane).
		Render(strings.Join(rows, "\n"))
}

// renderDetail draws the active category. With maxHeight > 0 the item list
// scrolls so the box, borders included, stays within maxHeight lines and the
// focused item stays visible.
func (m *PanelModel) renderDetail(cat catalog.Category, width int, p Palette, d Density, maxHeight int) string {
	inner := width - 2*d.Padding

	head := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(cat.Icon + " " + cat.Title),
		lipgloss.NewStyle().Foreground(p.Border).Render(strings.Repeat("─", inner)),
	}

	var lines []string
	starts := make([]int, len(cat.Items))
	ends := make([]int, len(cat.Items))
	for i, item := range cat.Items {
		if i > 0 {
			for g := 0; g < d.ItemGap; g++ {
				lines = append(lines, "")
			}
		}
		focused := m.activePane == detailPane && i == m.itemCursor
		starts[i] = len(lines)
		lines = append(lines, strings.Split(m.renderItem(item, focused, inner, p), "\n")...)
		ends[i] = len(lines)
	}

	if maxHeight > 0 {
		avail := maxHeight - 2 - len(head)
		if avail < 1 {
			avail = 1
		}
		if len(lines) > avail {
			offset := 0
			if c := m.itemCursor; c >= 0 && c < len(cat.Items) {
				if ends[c] > avail {
					offset = ends[c] - avail
				}
				if starts[c] < offset {
					offset = starts[c]
				}
			}
			end := offset + avail
			if end > len(lines) {
				end = len(lines)
			}
			lines = lines[offset:end]
		}
	}

	return p.BorderStyle(m.activePane == detailPane).
		Padding(0, d.Padding).
		Width(width).
		Render(strings.Join(append(head, lines...), "\n"))
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

func (m *PanelModel) renderItem(item catalog.Item, focused bool, width int, p Palette) string {
	var widget string
	if c, ok := controlFor(item.Kind); ok {
		widget = c.Render(item, focused, p)
	}

	textWidth := width - lipgloss.Width(widget) - 2
	if textWidth < 16 {
		textWidth = 16
	}

	marker := "  "
	if focused {
		marker = p.CursorStyle().Render("▸ ")
	}
	title := marker + p.TitleStyle().Render(item.Title)
	desc := p.DescriptionStyle().
		PaddingLeft(2).
		Render(wordwrap.String(item.Description, textWidth-2))

	text := lipgloss.NewStyle().Width(textWidth).Render(title + "\n" + desc)
	return lipgloss.JoinHorizontal(lipgloss.Center, text, "  ", widget)
}

func renderQuickThemes(current models.ThemeMode, width int, p Palette, d Density) string {
	choices := make([]string, 0, len(quickThemes))
	for _, qt := range quickThemes {
		label := fmt.Sprintf("[%s] %s %s", qt.key, qt.icon, qt.label)
		if qt.mode == current {
			choices = append(choices, p.SelectedStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Accent).
				Padding(0, 1).
				Render(label))
			continue
		}
		choices = append(choices, p.TextStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			Render(label))
	}

	title := p.TitleStyle().Render("Quick Theme Switch")
	row := lipgloss.JoinHorizontal(lipgloss.Top, choices[0], " ", choices[1], " ", choices[2])

	return p.BorderStyle(false).
		Padding(0, d.Padding).
		Width(width).
		Render(title + "\n" + row)
}
