package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/prefpanel/pkg/appearance"
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/models"
	"github.com/pluqqy/prefpanel/pkg/store"
	"github.com/pluqqy/prefpanel/pkg/tui/testhelpers"
)

func newTestPanel(startCategory string) *PanelModel {
	logger := zerolog.Nop()
	s := store.New(logger)
	machine := modal.NewMachine(modal.NewSimulatedPerformer(logger), s, logger)
	m := NewPanelModel(s, NewConfirmation(context.Background(), machine), startCategory, logger)
	m.SetSize(120, 40)
	return m
}

func send(m *PanelModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range testhelpers.Keys(keys...) {
		cmd = m.Update(k)
	}
	return cmd
}

var testPalette = NewPalette(appearance.Dark, false)

func TestPanelStartCategory(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"", "appearance"},
		{"privacy", "privacy"},
		{"advanced", "advanced"},
		{"billing", "appearance"},
	}

	for _, tt := range tests {
		if got := newTestPanel(tt.start).ActiveCategory(); got != tt.want {
			t.Errorf("NewPanelModel(%q).ActiveCategory() = %q, want %q", tt.start, got, tt.want)
		}
	}
}

func TestPanelSidebarNavigation(t *testing.T) {
	m := newTestPanel("")

	send(m, "down")
	assert.Equal(t, "notifications", m.ActiveCategory())

	send(m, "down", "down", "down", "down", "down", "down")
	assert.Equal(t, "advanced", m.ActiveCategory(), "cursor should stop at the last category")

	send(m, "up", "k")
	assert.Equal(t, "account", m.ActiveCategory())

	testhelpers.AssertViewContains(t, m.View(testPalette), "Export Data")
	testhelpers.AssertViewContains(t, m.View(testPalette), "Delete Account")
}

func TestPanelFocusSwitching(t *testing.T) {
	m := newTestPanel("notifications")
	assert.Equal(t, sidebarPane, m.activePane)

	send(m, "tab")
	assert.Equal(t, detailPane, m.activePane)

	send(m, "tab")
	assert.Equal(t, sidebarPane, m.activePane)

	send(m, "right")
	assert.Equal(t, detailPane, m.activePane)

	// Toggles have no direction, so left returns to the sidebar
	send(m, "left")
	assert.Equal(t, sidebarPane, m.activePane)

	send(m, "enter")
	assert.Equal(t, detailPane, m.activePane)
}

func TestPanelToggleIsInvolution(t *testing.T) {
	m := newTestPanel("notifications")
	before := m.store.Preferences()

	send(m, "tab", "down", "enter")
	assert.False(t, m.store.Preferences().EmailNotifications)

	send(m, " ")
	assert.Equal(t, before, m.store.Preferences())
}

func TestPanelSelectCyclesDeclaredOptions(t *testing.T) {
	m := newTestPanel("appearance")
	send(m, "tab")

	item, ok := m.FocusedItem()
	require.True(t, ok)
	require.Equal(t, models.KeyTheme, item.Key)

	tests := []struct {
		key  string
		want models.ThemeMode
	}{
		{"right", models.ThemeLight},
		{"right", models.ThemeDark},
		{"l", models.ThemeSystem},
		{"left", models.ThemeDark},
		{"h", models.ThemeLight},
		{"enter", models.ThemeDark},
	}

	for _, tt := range tests {
		send(m, tt.key)
		if got := m.store.Preferences().Theme; got != tt.want {
			t.Errorf("after %q theme = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestPanelSelectOnPrivacy(t *testing.T) {
	m := newTestPanel("privacy")
	send(m, "tab", "down", "down", "right")
	assert.Equal(t, models.VisibilityFriends, m.store.Preferences().ProfileVisibility)
	testhelpers.AssertViewContains(t, m.View(testPalette), "Friends Only")
}

func TestPanelSliderClamps(t *testing.T) {
	m := newTestPanel("appearance")
	send(m, "tab", "down")

	for i := 0; i < 10; i++ {
		send(m, "right")
	}
	assert.Equal(t, models.MaxFontSize, m.store.Preferences().FontSize)

	for i := 0; i < 20; i++ {
		send(m, "left")
	}
	assert.Equal(t, models.MinFontSize, m.store.Preferences().FontSize)
	assert.Equal(t, detailPane, m.activePane, "left on a slider adjusts instead of leaving the pane")

	testhelpers.AssertViewContains(t, m.View(testPalette), "12px")
}

func TestPanelQuickThemeSwitch(t *testing.T) {
	tests := []struct {
		category string
		key      string
		want     models.ThemeMode
	}{
		{"appearance", "1", models.ThemeLight},
		{"appearance", "2", models.ThemeDark},
		{"appearance", "3", models.ThemeSystem},
		{"privacy", "2", models.ThemeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.key, func(t *testing.T) {
			m := newTestPanel(tt.category)
			send(m, tt.key)
			assert.Equal(t, tt.want, m.store.Preferences().Theme)
		})
	}
}

func TestPanelQuickThemeCardOnlyOnAppearance(t *testing.T) {
	m := newTestPanel("appearance")
	testhelpers.AssertViewContains(t, m.View(testPalette), "Quick Theme Switch")

	send(m, "down")
	testhelpers.AssertViewNotContains(t, m.View(testPalette), "Quick Theme Switch")
}

func TestPanelDeleteThenCancel(t *testing.T) {
	cancelKeys := []string{"n", "esc"}

	for _, k := range cancelKeys {
		t.Run(k, func(t *testing.T) {
			m := newTestPanel("account")
			before := m.store.Preferences()

			send(m, "tab", "down", "enter")
			state := m.confirm.machine.State()
			require.True(t, state.Open)
			require.Equal(t, modal.ActionDelete, state.Action)

			cmd := send(m, k)
			assert.Nil(t, cmd)
			assert.False(t, m.confirm.Active())
			assert.Equal(t, before, m.store.Preferences())
		})
	}
}

func TestPanelExportConfirm(t *testing.T) {
	m := newTestPanel("account")
	send(m, "tab", "enter")

	cmd := send(m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg(modal.ExportNotice), cmd())
	assert.False(t, m.confirm.Active())
}

func TestPanelDialogSwallowsNavigation(t *testing.T) {
	m := newTestPanel("advanced")
	send(m, "tab", "enter")
	require.True(t, m.confirm.Active())

	send(m, "up", "tab", "1")
	assert.True(t, m.confirm.Active())
	assert.Equal(t, "advanced", m.ActiveCategory())
	assert.Equal(t, models.DefaultPreferences(), m.store.Preferences())
}

func TestPanelBackdropClickCancels(t *testing.T) {
	m := newTestPanel("account")
	send(m, "tab", "down", "enter")
	require.True(t, m.confirm.Active())

	// The dialog is centered, so its middle is inside the box
	m.Update(testhelpers.Click(60, 20))
	assert.True(t, m.confirm.Active(), "click inside the dialog should not cancel")

	m.Update(testhelpers.Click(0, 0))
	assert.False(t, m.confirm.Active())
}

func TestPanelSidebarClick(t *testing.T) {
	m := newTestPanel("")
	send(m, "tab")

	// Row 0 is one line below the header's bottom edge
	m.Update(testhelpers.Click(5, headerHeight+1+2))
	assert.Equal(t, "privacy", m.ActiveCategory())
	assert.Equal(t, sidebarPane, m.activePane)

	m.Update(testhelpers.Click(100, headerHeight+1))
	assert.Equal(t, "privacy", m.ActiveCategory(), "clicks outside the sidebar are ignored")
}

func TestPanelCopyPreferences(t *testing.T) {
	m := newTestPanel("")

	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	cmd := send(m, "c")
	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg("preferences → clipboard"), cmd())
	assert.Contains(t, copied, "fontSize: 14")
	assert.Contains(t, copied, "theme: system")
	assert.Contains(t, copied, "profileVisibility: public")
}

func TestPanelCopyFailure(t *testing.T) {
	m := newTestPanel("")
	m.copyToClipboard = func(string) error { return errors.New("no display") }

	msg := send(m, "c")()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", msg)
	assert.Contains(t, errMsg.Err.Error(), "no display")
}

func TestPanelViewLayout(t *testing.T) {
	m := newTestPanel("privacy")
	view := m.View(testPalette)

	for _, want := range []string{
		"⚙ Settings",
		subtitle,
		"◐ Appearance",
		"◆ Privacy & Security",
		"Two-Factor Authentication",
		"Add an extra layer of security to your account",
		"[ ] Off",
	} {
		testhelpers.AssertViewContains(t, view, want)
	}
}

func TestPanelFontSizeSpacing(t *testing.T) {
	m := newTestPanel("notifications")
	compact := strings.Count(m.View(testPalette), "\n")

	require.NoError(t, m.store.SetFontSize(16))
	spaced := strings.Count(m.View(testPalette), "\n")

	// Four items gain three blank separators
	assert.Equal(t, compact+3, spaced)
}

func TestPanelHelpToggle(t *testing.T) {
	m := newTestPanel("")
	assert.False(t, m.help.ShowAll)

	send(m, "?")
	assert.True(t, m.help.ShowAll)
	testhelpers.AssertViewContains(t, m.View(testPalette), "system")
}

func TestPanelFitsTerminalHeight(t *testing.T) {
	tests := []struct {
		category string
		fontSize int
		height   int
	}{
		{"appearance", 20, 24},
		{"appearance", 16, 24},
		{"appearance", 14, 24},
		{"notifications", 20, 24},
		{"privacy", 18, 24},
		{"appearance", 20, 14},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%dpx/%d", tt.category, tt.fontSize, tt.height), func(t *testing.T) {
			m := newTestPanel(tt.category)
			m.SetSize(80, tt.height)
			require.NoError(t, m.store.SetFontSize(tt.fontSize))

			view := m.View(testPalette)
			// One line stays free for the status bar
			assert.LessOrEqual(t, lipgloss.Height(view), tt.height-1)
			testhelpers.AssertViewContains(t, view, "⚙ Settings")
		})
	}
}

func TestPanelScrollsToFocusedItem(t *testing.T) {
	m := newTestPanel("appearance")
	m.SetSize(80, 14)
	require.NoError(t, m.store.SetFontSize(20))

	send(m, "tab", "down", "down")
	item, ok := m.FocusedItem()
	require.True(t, ok)
	require.Equal(t, "reducedMotion", item.ID)

	view := m.View(testPalette)
	assert.LessOrEqual(t, lipgloss.Height(view), 13)
	testhelpers.AssertViewContains(t, view, "Reduced Motion")
}

func TestPanelSidebarClickInSmallTerminal(t *testing.T) {
	m := newTestPanel("appearance")
	m.SetSize(80, 24)
	require.NoError(t, m.store.SetFontSize(20))

	row := headerHeight + 1 + 2
	lines := strings.Split(testhelpers.Strip(m.View(testPalette)), "\n")
	require.Greater(t, len(lines), row)
	require.Contains(t, lines[row], "Privacy & Security")

	m.Update(testhelpers.Click(5, row))
	assert.Equal(t, "privacy", m.ActiveCategory())
}
