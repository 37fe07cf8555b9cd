package appearance

import (
	"github.com/rs/zerolog"

	"github.com/pluqqy/prefpanel/pkg/models"
)

// Theme is the effective display theme. It is never "system".
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Effective resolves a theme mode against the platform signal
func Effective(mode models.ThemeMode, prefersDark bool) Theme {
	switch mode {
	case models.ThemeLight:
		return Light
	case models.ThemeDark:
		return Dark
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Platform is the platform's dark preference with change notification
type Platform interface {
	PrefersDark() bool
	OnChange(fn func(prefersDark bool)) (unsubscribe func())
}

// Signal is a platform change delivered through a Tracker subscription.
// Generation identifies the subscription it came from.
type Signal struct {
	Generation  uint64
	PrefersDark bool
}

// Tracker keeps the effective theme in step with the theme mode. It holds a
// platform subscription only while the mode is system.
//
// Platform callbacks may fire on any goroutine; they only hand a Signal to
// sink. The owner feeds signals back through Observe on its own goroutine,
// which is the only place tracker state changes.
type Tracker struct {
	platform     Platform
	sink         func(Signal)
	logger       zerolog.Logger
	mode         models.ThemeMode
	platformDark bool
	effective    Theme
	generation   uint64
	unsubscribe  func()
}

// NewTracker creates a tracker in the given mode
func NewTracker(platform Platform, mode models.ThemeMode, sink func(Signal), logger zerolog.Logger) *Tracker {
	t := &Tracker{
		platform: platform,
		sink:     sink,
		logger:   logger.With().Str("component", "theme-tracker").Logger(),
	}
	t.apply(mode)
	return t
}

// SetMode switches the theme mode, attaching or detaching the platform
// subscription, and re-derives the effective theme synchronously.
func (t *Tracker) SetMode(mode models.ThemeMode) {
	if mode == t.mode {
		return
	}
	t.apply(mode)
}

func (t *Tracker) apply(mode models.ThemeMode) {
	t.mode = mode

	if mode == models.ThemeSystem {
		t.subscribe()
		t.platformDark = t.platform.PrefersDark()
	} else {
		t.detach()
	}

	t.effective = Effective(t.mode, t.platformDark)
}

func (t *Tracker) subscribe() {
	if t.unsubscribe != nil {
		return
	}
	t.generation++
	gen := t.generation
	sink := t.sink
	t.unsubscribe = t.platform.OnChange(func(dark bool) {
		if sink != nil {
			sink(Signal{Generation: gen, PrefersDark: dark})
		}
	})
	t.logger.Debug().Uint64("generation", gen).Msg("subscribed to platform preference")
}

func (t *Tracker) detach() {
	if t.unsubscribe == nil {
		return
	}
	t.unsubscribe()
	t.unsubscribe = nil
	t.logger.Debug().Uint64("generation", t.generation).Msg("unsubscribed from platform preference")
	// Signals already in flight carry the old generation and are dropped
	t.generation++
}

// Observe applies a platform signal. It reports whether the signal was
// accepted; signals arriving outside system mode or from an earlier
// subscription are ignored.
func (t *Tracker) Observe(sig Signal) bool {
	if t.mode != models.ThemeSystem || t.unsubscribe == nil || sig.Generation != t.generation {
		return false
	}
	t.platformDark = sig.PrefersDark
	t.effective = Effective(t.mode, t.platformDark)
	return true
}

// Close releases the platform subscription
func (t *Tracker) Close() {
	t.detach()
}

// Effective returns the current effective theme
func (t *Tracker) Effective() Theme {
	return t.effective
}

// Mode returns the current theme mode
func (t *Tracker) Mode() models.ThemeMode {
	return t.mode
}

// Subscribed reports whether a platform subscription is held
func (t *Tracker) Subscribed() bool {
	return t.unsubscribe != nil
}

// Generation identifies the current subscription
func (t *Tracker) Generation() uint64 {
	return t.generation
}
