package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/pluqqy/prefpanel/pkg/appearance"
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/store"
)

const (
	defaultStatusTimeout = 3 * time.Second
	signalQueueSize      = 16
)

// Options configures a new App
type Options struct {
	Store         *store.Store
	Performer     modal.Performer
	Platform      appearance.Platform
	StartCategory string
	StatusTimeout time.Duration
	Logger        zerolog.Logger
}

// StatusMsg shows a notice in the status bar until the status timeout
type StatusMsg string

// ErrorMsg shows a failed operation in the status bar
type ErrorMsg struct {
	Err error
}

type clearStatusMsg struct {
	id int
}

// platformSignalMsg carries a platform preference change into the event loop
type platformSignalMsg appearance.Signal

// App is the root model. It owns the theme tracker and the status bar and
// routes input to the panel.
type App struct {
	store   *store.Store
	panel   *PanelModel
	confirm *ConfirmationModel
	tracker *appearance.Tracker
	signals chan appearance.Signal
	spinner spinner.Model
	keys    keyMap
	logger  zerolog.Logger

	width         int
	height        int
	statusMsg     string
	statusErr     bool
	statusID      int
	statusTimeout time.Duration
}

func NewApp(ctx context.Context, opts Options) *App {
	logger := opts.Logger
	timeout := opts.StatusTimeout
	if timeout <= 0 {
		timeout = defaultStatusTimeout
	}

	// Platform callbacks may run on any goroutine; they only queue the signal
	signals := make(chan appearance.Signal, signalQueueSize)
	sink := func(s appearance.Signal) {
		if dropped := queueSignal(signals, s); dropped > 0 {
			logger.Debug().Int("dropped", dropped).Msg("platform signal queue full, dropped oldest")
		}
	}

	machine := modal.NewMachine(opts.Performer, opts.Store, logger)
	confirm := NewConfirmation(ctx, machine)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		store:         opts.Store,
		panel:         NewPanelModel(opts.Store, confirm, opts.StartCategory, logger),
		confirm:       confirm,
		tracker:       appearance.NewTracker(opts.Platform, opts.Store.Preferences().Theme, sink, logger),
		signals:       signals,
		spinner:       sp,
		keys:          newKeyMap(),
		logger:        logger.With().Str("component", "app").Logger(),
		statusTimeout: timeout,
	}
}

func (a *App) Init() tea.Cmd {
	return waitForSignal(a.signals)
}

// queueSignal sends s without blocking. When the queue is full the oldest
// signals are discarded so the latest preference always arrives. It returns
// how many were discarded.
func queueSignal(ch chan appearance.Signal, s appearance.Signal) int {
	dropped := 0
	for {
		select {
		case ch <- s:
			return dropped
		default:
		}
		select {
		case <-ch:
			dropped++
		default:
		}
	}
}

func waitForSignal(ch <-chan appearance.Signal) tea.Cmd {
	return func() tea.Msg {
		sig, ok := <-ch
		if !ok {
			return nil
		}
		return platformSignalMsg(sig)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.panel.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC || (!a.confirm.Active() && key.Matches(msg, a.keys.Quit)) {
			a.Close()
			return a, tea.Quit
		}

	case platformSignalMsg:
		sig := appearance.Signal(msg)
		if a.tracker.Observe(sig) {
			a.logger.Debug().Bool("prefers_dark", sig.PrefersDark).Str("theme", string(a.tracker.Effective())).Msg("platform preference changed")
		} else {
			a.logger.Debug().Uint64("generation", sig.Generation).Uint64("current", a.tracker.Generation()).Msg("platform signal ignored")
		}
		return a, waitForSignal(a.signals)

	case StatusMsg:
		return a, a.setStatus(string(msg), false)

	case ErrorMsg:
		a.logger.Error().Err(msg.Err).Msg("operation failed")
		return a, a.setStatus("Error: "+msg.Err.Error(), true)

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.statusMsg = ""
			a.statusErr = false
		}
		return a, nil

	case spinner.TickMsg:
		// Letting the tick lapse stops the animation
		if a.statusMsg == "" || a.store.Preferences().ReducedMotion {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	cmd := a.panel.Update(msg)
	a.syncTheme()
	return a, cmd
}

func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.statusMsg = text
	a.statusErr = isErr
	a.statusID++
	// Reset may have changed the theme or motion preference
	a.syncTheme()

	id := a.statusID
	cmds := []tea.Cmd{
		tea.Tick(a.statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{id: id} }),
	}
	if !a.store.Preferences().ReducedMotion {
		cmds = append(cmds, a.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// syncTheme hands the current theme mode to the tracker
func (a *App) syncTheme() {
	mode := a.store.Preferences().Theme
	if mode == a.tracker.Mode() {
		return
	}
	a.tracker.SetMode(mode)
	a.logger.Debug().Str("mode", string(mode)).Str("theme", string(a.tracker.Effective())).Msg("theme mode changed")
}

// Palette returns the palette for the current effective theme
func (a *App) Palette() Palette {
	return NewPalette(a.tracker.Effective(), a.store.Preferences().HighContrast)
}

// Close releases the platform subscription. It is safe to call more than once.
func (a *App) Close() {
	a.tracker.Close()
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	p := a.Palette()

	content := a.panel.View(p)
	if a.confirm.Active() {
		content = a.confirm.View(p, content, a.width, a.height-statusBarHeight)
	}

	// Add status bar if there's a message
	if a.statusMsg != "" {
		text := a.statusMsg
		if !a.store.Preferences().ReducedMotion && !a.statusErr {
			text = a.spinner.View() + " " + text
		}
		style := p.StatusStyle()
		if a.statusErr {
			style = p.ErrorStyle()
		}
		content = lipgloss.JoinVertical(lipgloss.Left, content, style.Render(text))
	}

	return content
}
