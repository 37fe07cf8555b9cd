package appearance

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const (
	priorityEnv       = 50
	priorityGsettings = 20
	priorityTerminal  = 10
)

// EnvColorSchemeVar overrides detection from the environment
const EnvColorSchemeVar = "PREFPANEL_COLOR_SCHEME"

// EnvDetector reads PREFPANEL_COLOR_SCHEME, then the COLORFGBG convention
// set by rxvt-style terminals ("fg;bg", bg 0-6 or 8 is dark).
type EnvDetector struct {
	lookup func(string) string
}

// NewEnvDetector creates an environment detector
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{lookup: os.Getenv}
}

func (*EnvDetector) Name() string  { return "env" }
func (*EnvDetector) Priority() int { return priorityEnv }

func (d *EnvDetector) Available() bool {
	return d.lookup(EnvColorSchemeVar) != "" || d.lookup("COLORFGBG") != ""
}

func (d *EnvDetector) Detect() (bool, bool) {
	switch strings.ToLower(d.lookup(EnvColorSchemeVar)) {
	case "dark", "prefer-dark":
		return true, true
	case "light", "prefer-light":
		return false, true
	}

	fgbg := d.lookup("COLORFGBG")
	if fgbg == "" {
		return false, false
	}
	parts := strings.Split(fgbg, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false, false
	}
	return bg <= 6 || bg == 8, true
}

// GsettingsDetector queries org.gnome.desktop.interface color-scheme
type GsettingsDetector struct {
	run func() ([]byte, error)
}

// NewGsettingsDetector creates a gsettings-based detector
func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{
		run: func() ([]byte, error) {
			return exec.Command("gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
		},
	}
}

func (*GsettingsDetector) Name() string  { return "gsettings" }
func (*GsettingsDetector) Priority() int { return priorityGsettings }

func (*GsettingsDetector) Available() bool {
	_, err := exec.LookPath("gsettings")
	return err == nil
}

func (d *GsettingsDetector) Detect() (bool, bool) {
	out, err := d.run()
	if err != nil {
		return false, false
	}

	// Output looks like "'prefer-dark'\n"
	switch strings.Trim(strings.TrimSpace(string(out)), `'"`) {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		return false, false
	}
}

// TerminalDetector asks the terminal for its background color. The query
// talks to the tty, so it runs once and the answer is cached.
type TerminalDetector struct {
	once  sync.Once
	dark  bool
	query func() bool
}

// NewTerminalDetector creates a detector backed by lipgloss.HasDarkBackground
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{query: lipgloss.HasDarkBackground}
}

func (*TerminalDetector) Name() string    { return "terminal" }
func (*TerminalDetector) Priority() int   { return priorityTerminal }
func (*TerminalDetector) Available() bool { return true }

func (d *TerminalDetector) Detect() (bool, bool) {
	d.once.Do(func() {
		d.dark = d.query()
	})
	return d.dark, true
}

// DefaultDetectors returns the detector chain used by the application
func DefaultDetectors() []Detector {
	return []Detector{
		NewEnvDetector(),
		NewGsettingsDetector(),
		NewTerminalDetector(),
	}
}
