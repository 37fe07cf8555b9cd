package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pluqqy/prefpanel/internal/config"
	"github.com/pluqqy/prefpanel/internal/logging"
	"github.com/pluqqy/prefpanel/pkg/appearance"
)

// RuntimeOptions carries the persistent command-line flags
type RuntimeOptions struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	// Detectors defaults to appearance.DefaultDetectors
	Detectors []appearance.Detector
}

// Runtime holds what every command needs: loaded config, a logger and the
// platform preference resolver.
type Runtime struct {
	Config   *config.Manager
	Logger   zerolog.Logger
	Resolver *appearance.Resolver

	logCloser io.Closer
}

// NewRuntime loads configuration and builds the logger and resolver
func NewRuntime(opts RuntimeOptions) (*Runtime, error) {
	mgr := config.NewManager(opts.ConfigPath)
	if opts.LogLevel != "" {
		mgr.Set("log.level", opts.LogLevel)
	}
	if opts.LogFile != "" {
		mgr.Set("log.file", opts.LogFile)
	}

	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logger, closer, err := logging.New(cfg.LoggingConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	detectors := opts.Detectors
	if detectors == nil {
		detectors = appearance.DefaultDetectors()
	}

	logger.Debug().
		Str("config_file", mgr.ConfigFileUsed()).
		Str("color_scheme", cfg.Appearance.ColorScheme).
		Msg("runtime initialized")

	return &Runtime{
		Config:    mgr,
		Logger:    logger,
		Resolver:  appearance.NewResolver(mgr, detectors...),
		logCloser: closer,
	}, nil
}

// Close releases the log file
func (r *Runtime) Close() error {
	return r.logCloser.Close()
}
