package modal

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	ExportNotice = "Data export initiated. You will receive an email when ready."
	DeleteNotice = "Account deletion process started. You will receive a confirmation email."
)

// SimulatedPerformer records the intent and reports a notice. No file is
// produced and nothing is deleted.
type SimulatedPerformer struct {
	logger zerolog.Logger
}

// NewSimulatedPerformer creates a performer that only logs
func NewSimulatedPerformer(logger zerolog.Logger) *SimulatedPerformer {
	return &SimulatedPerformer{
		logger: logger.With().Str("component", "performer").Logger(),
	}
}

// ExportData implements Performer
func (p *SimulatedPerformer) ExportData(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.logger.Info().Bool("simulated", true).Msg("exporting user data")
	return ExportNotice, nil
}

// DeleteAccount implements Performer
func (p *SimulatedPerformer) DeleteAccount(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.logger.Info().Bool("simulated", true).Msg("deleting account")
	return DeleteNotice, nil
}
