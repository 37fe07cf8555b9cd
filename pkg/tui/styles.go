package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/prefpanel/pkg/appearance"
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/models"
)

// Color constants shared by the dark palettes
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorPrimary  = "33"  // Blue for primary actions
)

// Palette is the set of colors a render pass uses. It is derived from the
// effective theme and the high contrast preference and passed down to every
// view function.
type Palette struct {
	Theme        appearance.Theme
	HighContrast bool

	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Border    lipgloss.Color
	Selection lipgloss.Color
	Primary   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Success   lipgloss.Color
	OnAccent  lipgloss.Color
	StatusBg  lipgloss.Color
	StatusFg  lipgloss.Color
}

// NewPalette returns the palette for a theme
func NewPalette(theme appearance.Theme, highContrast bool) Palette {
	p := Palette{Theme: theme, HighContrast: highContrast}

	switch {
	case theme == appearance.Dark && !highContrast:
		p.Text = lipgloss.Color(ColorWhite)
		p.Muted = lipgloss.Color(ColorNormal)
		p.Accent = lipgloss.Color(ColorActive)
		p.Border = lipgloss.Color(ColorInactive)
		p.Selection = lipgloss.Color(ColorSelected)
		p.Primary = lipgloss.Color(ColorPrimary)
		p.Warning = lipgloss.Color(ColorWarning)
		p.Danger = lipgloss.Color(ColorDanger)
		p.Success = lipgloss.Color(ColorSuccess)
		p.OnAccent = lipgloss.Color(ColorWhite)
		p.StatusBg = lipgloss.Color("62")
		p.StatusFg = lipgloss.Color("230")
	case theme == appearance.Dark:
		p.Text = lipgloss.Color("231")
		p.Muted = lipgloss.Color("231")
		p.Accent = lipgloss.Color("226")
		p.Border = lipgloss.Color("231")
		p.Selection = lipgloss.Color("16")
		p.Primary = lipgloss.Color("51")
		p.Warning = lipgloss.Color("226")
		p.Danger = lipgloss.Color("203")
		p.Success = lipgloss.Color("46")
		p.OnAccent = lipgloss.Color("16")
		p.StatusBg = lipgloss.Color("226")
		p.StatusFg = lipgloss.Color("16")
	case !highContrast:
		p.Text = lipgloss.Color(ColorDark)
		p.Muted = lipgloss.Color(ColorDim)
		p.Accent = lipgloss.Color("25")
		p.Border = lipgloss.Color("250")
		p.Selection = lipgloss.Color("189")
		p.Primary = lipgloss.Color("26")
		p.Warning = lipgloss.Color("166")
		p.Danger = lipgloss.Color("160")
		p.Success = lipgloss.Color(ColorSuccess)
		p.OnAccent = lipgloss.Color(ColorWhite)
		p.StatusBg = lipgloss.Color("25")
		p.StatusFg = lipgloss.Color(ColorWhite)
	default:
		p.Text = lipgloss.Color("16")
		p.Muted = lipgloss.Color("16")
		p.Accent = lipgloss.Color("19")
		p.Border = lipgloss.Color("16")
		p.Selection = lipgloss.Color("231")
		p.Primary = lipgloss.Color("19")
		p.Warning = lipgloss.Color("130")
		p.Danger = lipgloss.Color("124")
		p.Success = lipgloss.Color("22")
		p.OnAccent = lipgloss.Color("231")
		p.StatusBg = lipgloss.Color("16")
		p.StatusFg = lipgloss.Color("231")
	}

	return p
}

// BorderStyle returns the pane border, highlighted when the pane has focus
func (p Palette) BorderStyle(focused bool) lipgloss.Style {
	color := p.Border
	if focused {
		color = p.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

func (p Palette) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Text)
}

func (p Palette) TextStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Text)
}

func (p Palette) DescriptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Muted)
}

func (p Palette) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Selection).
		Bold(true)
}

func (p Palette) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
}

func (p Palette) StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(p.StatusBg).
		Foreground(p.StatusFg).
		Padding(0, 1)
}

// ErrorStyle is the status bar style for failed operations
func (p Palette) ErrorStyle() lipgloss.Style {
	return p.StatusStyle().
		Background(p.Danger).
		Foreground(p.OnAccent).
		Bold(true)
}

// ButtonStyle colors a button by whether its action is destructive
func (p Palette) ButtonStyle(destructive, focused bool) lipgloss.Style {
	bg := p.Primary
	if destructive {
		bg = p.Danger
	}
	s := lipgloss.NewStyle().
		Background(bg).
		Foreground(p.OnAccent).
		Padding(0, 1)
	if focused {
		s = s.Bold(true).Underline(true)
	}
	return s
}

// SeverityColor returns the accent used for a dialog of the given severity
func (p Palette) SeverityColor(sev modal.Severity) lipgloss.Color {
	switch sev {
	case modal.SeverityDanger:
		return p.Danger
	case modal.SeverityWarning:
		return p.Warning
	default:
		return p.Primary
	}
}

// Density is how much room the layout gives each item. It stands in for
// text scale, which a terminal cannot change.
type Density struct {
	ItemGap int // blank lines between items
	Padding int // horizontal padding inside panes
}

func densityFor(fontSize int) Density {
	fontSize = models.ClampFontSize(fontSize)
	d := Density{Padding: 1}
	if fontSize >= 16 {
		d.ItemGap = 1
	}
	if fontSize >= 18 {
		d.Padding = 3
	}
	return d
}
