package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
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

func newTestApp(t *testing.T, platform *testhelpers.FakePlatform, startCategory string) *App {
	t.Helper()

	logger := zerolog.Nop()
	app := NewApp(context.Background(), Options{
		Store:         store.New(logger),
		Performer:     modal.NewSimulatedPerformer(logger),
		Platform:      platform,
		StartCategory: startCategory,
		StatusTimeout: time.Second,
		Logger:        logger,
	})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	t.Cleanup(app.Close)
	return app
}

// press sends keys through the app and returns the command of the last one
func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range testhelpers.Keys(keys...) {
		_, cmd = a.Update(k)
	}
	return cmd
}

func TestAppStatusMessages(t *testing.T) {
	tests := []struct {
		name         string
		msg          tea.Msg
		expectStatus string
		expectErr    bool
	}{
		{
			name:         "StatusMsg sets status and schedules clear",
			msg:          StatusMsg("Test status message"),
			expectStatus: "Test status message",
		},
		{
			name:         "ErrorMsg is shown as an error",
			msg:          ErrorMsg{Err: errors.New("boom")},
			expectStatus: "Error: boom",
			expectErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, testhelpers.NewFakePlatform(false), "")

			_, cmd := app.Update(tt.msg)
			if app.statusMsg != tt.expectStatus {
				t.Errorf("expected status %q, got %q", tt.expectStatus, app.statusMsg)
			}
			if app.statusErr != tt.expectErr {
				t.Errorf("expected statusErr=%v, got %v", tt.expectErr, app.statusErr)
			}
			if cmd == nil {
				t.Error("expected a command to be returned for clearing status, got nil")
			}
			testhelpers.AssertViewContains(t, app.View(), tt.expectStatus)
		})
	}
}

func TestAppStatusClearIgnoresStaleTimers(t *testing.T) {
	app := newTestApp(t, testhelpers.NewFakePlatform(false), "")

	app.Update(StatusMsg("first"))
	firstID := app.statusID
	app.Update(StatusMsg("second"))

	app.Update(clearStatusMsg{id: firstID})
	if app.statusMsg != "second" {
		t.Errorf("stale clear removed the newer status: got %q", app.statusMsg)
	}

	app.Update(clearStatusMsg{id: app.statusID})
	if app.statusMsg != "" {
		t.Errorf("expected status to be cleared, got %q", app.statusMsg)
	}
}

func TestAppSpinnerStopsWithReducedMotion(t *testing.T) {
	app := newTestApp(t, testhelpers.NewFakePlatform(false), "")
	app.Update(StatusMsg("working"))

	_, cmd := app.Update(spinner.TickMsg{ID: app.spinner.ID()})
	assert.NotNil(t, cmd, "spinner should keep ticking while a notice is shown")

	require.NoError(t, app.store.Toggle(models.KeyReducedMotion))
	_, cmd = app.Update(spinner.TickMsg{ID: app.spinner.ID()})
	assert.Nil(t, cmd, "spinner should stop when reduced motion is on")
}

func TestAppFollowsPlatformInSystemMode(t *testing.T) {
	platform := testhelpers.NewFakePlatform(false)
	app := newTestApp(t, platform, "")

	require.Equal(t, models.ThemeSystem, app.store.Preferences().Theme)
	assert.Equal(t, appearance.Light, app.Palette().Theme)
	assert.Equal(t, 1, platform.Subscribers())

	listen := app.Init()
	platform.SetDark(true)
	_, next := app.Update(listen())
	assert.Equal(t, appearance.Dark, app.Palette().Theme)
	assert.NotNil(t, next, "the app should keep listening for platform changes")
}

func TestAppExplicitThemeDetachesPlatform(t *testing.T) {
	platform := testhelpers.NewFakePlatform(true)
	app := newTestApp(t, platform, "appearance")
	assert.Equal(t, appearance.Dark, app.Palette().Theme)

	press(app, "1")
	assert.Equal(t, models.ThemeLight, app.store.Preferences().Theme)
	assert.Equal(t, appearance.Light, app.Palette().Theme)
	assert.Equal(t, 0, platform.Subscribers())

	platform.SetDark(true)
	assert.Equal(t, appearance.Light, app.Palette().Theme)

	press(app, "3")
	assert.Equal(t, appearance.Dark, app.Palette().Theme)
	assert.Equal(t, 1, platform.Subscribers())
}

func TestAppResetRestoresSystemTracking(t *testing.T) {
	platform := testhelpers.NewFakePlatform(true)
	app := newTestApp(t, platform, "advanced")

	require.NoError(t, app.store.Update(models.KeyTheme, models.EnumValue("light")))
	press(app, "x") // any key syncs the tracker
	require.Equal(t, 0, platform.Subscribers())

	press(app, "tab", "enter")
	cmd := press(app, "y")
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, models.DefaultPreferences(), app.store.Preferences())
	assert.Equal(t, modal.ResetNotice, app.statusMsg)
	assert.Equal(t, appearance.Dark, app.Palette().Theme)
	assert.Equal(t, 1, platform.Subscribers())
}

func TestAppQuitReleasesSubscription(t *testing.T) {
	tests := []string{"ctrl+c", "q"}

	for _, k := range tests {
		t.Run(k, func(t *testing.T) {
			platform := testhelpers.NewFakePlatform(false)
			app := newTestApp(t, platform, "")

			cmd := press(app, k)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, 0, platform.Subscribers())
		})
	}
}

func TestAppQWhileDialogOpenDoesNotQuit(t *testing.T) {
	app := newTestApp(t, testhelpers.NewFakePlatform(false), "account")
	press(app, "tab", "enter")
	require.True(t, app.confirm.Active())

	cmd := press(app, "q")
	assert.Nil(t, cmd)
	assert.True(t, app.confirm.Active())
}

func TestAppViewOverlaysDialogOnPanel(t *testing.T) {
	app := newTestApp(t, testhelpers.NewFakePlatform(false), "account")

	view := app.View()
	testhelpers.AssertViewContains(t, view, "Settings")
	testhelpers.AssertViewContains(t, view, subtitle)

	press(app, "tab", "down", "enter")
	view = app.View()
	testhelpers.AssertViewContains(t, view, "This action cannot be undone.")
	testhelpers.AssertViewContains(t, view, "Delete Account (y)")
	// The panel stays visible around the dialog
	testhelpers.AssertViewContains(t, view, subtitle)
	testhelpers.AssertViewContains(t, view, "Privacy & Security")
	assert.Equal(t, 40-statusBarHeight, lipgloss.Height(view))
}

func TestAppFitsSmallTerminal(t *testing.T) {
	app := newTestApp(t, testhelpers.NewFakePlatform(false), "appearance")
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NoError(t, app.store.SetFontSize(20))
	app.Update(StatusMsg("saved"))

	view := app.View()
	assert.LessOrEqual(t, lipgloss.Height(view), 24)
	testhelpers.AssertViewContains(t, view, "⚙ Settings")
	testhelpers.AssertViewContains(t, view, "saved")
}

func TestAppLoadingBeforeWindowSize(t *testing.T) {
	logger := zerolog.Nop()
	app := NewApp(context.Background(), Options{
		Store:     store.New(logger),
		Performer: modal.NewSimulatedPerformer(logger),
		Platform:  testhelpers.NewFakePlatform(false),
		Logger:    logger,
	})
	defer app.Close()

	if got := app.View(); got != "Loading..." {
		t.Errorf("View() = %q, want %q", got, "Loading...")
	}
	if app.statusTimeout != defaultStatusTimeout {
		t.Errorf("statusTimeout = %v, want %v", app.statusTimeout, defaultStatusTimeout)
	}
}

func TestQueueSignalKeepsLatest(t *testing.T) {
	ch := make(chan appearance.Signal, 2)

	assert.Equal(t, 0, queueSignal(ch, appearance.Signal{Generation: 1, PrefersDark: true}))
	assert.Equal(t, 0, queueSignal(ch, appearance.Signal{Generation: 1, PrefersDark: false}))
	assert.Equal(t, 1, queueSignal(ch, appearance.Signal{Generation: 1, PrefersDark: true}))

	require.Len(t, ch, 2)
	<-ch
	last := <-ch
	assert.True(t, last.PrefersDark, "the newest signal must survive a full queue")
}

func TestAppSettlesOnLatestSignalAfterBurst(t *testing.T) {
	platform := testhelpers.NewFakePlatform(false)
	app := newTestApp(t, platform, "")

	// More flips than the queue holds, ending on dark
	for i := 0; i < signalQueueSize+5; i++ {
		platform.SetDark(i%2 == 0)
	}
	platform.SetDark(true)

	listen := app.Init()
	for len(app.signals) > 0 {
		app.Update(listen())
	}
	assert.Equal(t, appearance.Dark, app.Palette().Theme)
}
