package appearance

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher is anything that can re-detect the platform preference
type Refresher interface {
	Refresh() Preference
}

// Poller periodically refreshes a resolver
type Poller struct {
	target   Refresher
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller creates a poller. A non-positive interval disables polling.
func NewPoller(target Refresher, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		target:   target,
		interval: interval,
		logger:   logger.With().Str("component", "appearance-poller").Logger(),
	}
}

// Run blocks until ctx is cancelled
func (p *Poller) Run(ctx context.Context) {
	if p.interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("poller stopped")
			return
		case <-ticker.C:
			pref := p.target.Refresh()
			p.logger.Trace().Bool("prefers_dark", pref.PrefersDark).Str("source", pref.Source).Msg("platform preference refreshed")
		}
	}
}
