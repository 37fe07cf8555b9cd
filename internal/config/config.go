// Package config loads prefpanel configuration from a file and the
// environment, and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/pluqqy/prefpanel/internal/logging"
	"github.com/pluqqy/prefpanel/pkg/catalog"
)

const (
	appName   = "prefpanel"
	envPrefix = "PREFPANEL"
)

var (
	ErrUnknownCategory = errors.New("unknown start category")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidFormat   = errors.New("unknown log format")
	ErrInvalidScheme   = errors.New("unknown color scheme")
)

// Config is the full application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	UI         UIConfig         `mapstructure:"ui" yaml:"ui"`
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

type UIConfig struct {
	StartCategory string        `mapstructure:"start_category" yaml:"start_category"`
	StatusTimeout time.Duration `mapstructure:"status_timeout" yaml:"status_timeout"`
}

type AppearanceConfig struct {
	// ColorScheme overrides platform detection: prefer-dark, prefer-light or empty
	ColorScheme  string        `mapstructure:"color_scheme" yaml:"color_scheme"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
			File:   DefaultLogFile(),
		},
		UI: UIConfig{
			StartCategory: catalog.DefaultCategory,
			StatusTimeout: 3 * time.Second,
		},
		Appearance: AppearanceConfig{
			PollInterval: 5 * time.Second,
		},
	}
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidFormat)
	}
	if !catalog.HasCategory(c.UI.StartCategory) {
		return fmt.Errorf("ui.start_category %q: %w", c.UI.StartCategory, ErrUnknownCategory)
	}
	if c.UI.StatusTimeout <= 0 {
		return fmt.Errorf("ui.status_timeout: %w", ErrInvalidDuration)
	}
	if c.Appearance.PollInterval <= 0 {
		return fmt.Errorf("appearance.poll_interval: %w", ErrInvalidDuration)
	}
	switch normalizeScheme(c.Appearance.ColorScheme) {
	case "", "prefer-dark", "prefer-light":
	default:
		return fmt.Errorf("appearance.color_scheme %q: %w", c.Appearance.ColorScheme, ErrInvalidScheme)
	}
	return nil
}

func normalizeScheme(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "dark":
		return "prefer-dark"
	case "light":
		return "prefer-light"
	case "default", "system":
		return ""
	}
	return s
}

// LoggingConfig converts the log section for the logging package
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = c.Log.Format
	cfg.File = c.Log.File
	return cfg
}

// Manager handles configuration loading and watching
type Manager struct {
	viper     *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager. An empty path searches the user config
// directory and the working directory for config.yaml.
func NewManager(path string) *Manager {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{viper: v}
	m.setDefaults()
	return m
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("log.level", defaults.Log.Level)
	m.viper.SetDefault("log.format", defaults.Log.Format)
	m.viper.SetDefault("log.file", defaults.Log.File)

	m.viper.SetDefault("ui.start_category", defaults.UI.StartCategory)
	m.viper.SetDefault("ui.status_timeout", defaults.UI.StatusTimeout)

	m.viper.SetDefault("appearance.color_scheme", defaults.Appearance.ColorScheme)
	m.viper.SetDefault("appearance.poll_interval", defaults.Appearance.PollInterval)
}

// Load reads the config file, if any, and the environment. A missing
// file in the search path is not an error; a missing explicit file is.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Appearance.ColorScheme = normalizeScheme(config.Appearance.ColorScheme)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Set overrides a single key, as command-line flags do
func (m *Manager) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viper.Set(key, value)
}

// Get returns a copy of the current configuration. Before Load it
// returns the defaults.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	c := *m.config
	return &c
}

// GetColorScheme implements appearance.ConfigProvider
func (m *Manager) GetColorScheme() string {
	return m.Get().Appearance.ColorScheme
}

// ConfigFileUsed returns the path of the loaded file, or "" if none
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// OnChange registers a callback run after the file is reloaded
func (m *Manager) OnChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Watch reloads the config file whenever it changes. A reload that fails
// validation keeps the previous configuration and reports through onError.
func (m *Manager) Watch(onError func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching || m.viper.ConfigFileUsed() == "" {
		return
	}

	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}

		m.mu.RLock()
		config := *m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			c := config
			callback(&c)
		}
	})
	m.viper.WatchConfig()
	m.watching = true
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reread config file: %w", err)
	}
	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/prefpanel
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// StateDir returns $XDG_STATE_HOME/prefpanel
func StateDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// DefaultLogFile returns the log path under the state directory, or ""
// when no home directory is available.
func DefaultLogFile() string {
	dir, err := StateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName+".log")
}
