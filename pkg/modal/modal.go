// Package modal implements the confirmation flow that gates destructive or
// long-running account actions.
package modal

//go:generate mockgen -source=modal.go -destination=mocks/mock_modal.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrUnknownAction = errors.New("unknown modal action")
	ErrNotOpen       = errors.New("modal is not open")
)

// Action is the operation a confirmation guards
type Action string

const (
	ActionNone   Action = ""
	ActionExport Action = "export"
	ActionDelete Action = "delete"
	ActionReset  Action = "reset"
)

// Severity is a presentation-only classification of a dialog
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	default:
		return "info"
	}
}

// Dialog is the fixed text and severity shown for an action
type Dialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Severity     Severity
}

var dialogs = map[Action]Dialog{
	ActionExport: {
		Title:        "Export Your Data",
		Message:      "This will create a downloadable file containing all your account data. You will receive an email notification when the export is ready.",
		ConfirmLabel: "Export Data",
		CancelLabel:  "Cancel",
		Severity:     SeverityInfo,
	},
	ActionDelete: {
		Title:        "Delete Account",
		Message:      "This action cannot be undone. This will permanently delete your account and remove all your data from our servers.",
		ConfirmLabel: "Delete Account",
		CancelLabel:  "Cancel",
		Severity:     SeverityDanger,
	},
	ActionReset: {
		Title:        "Reset All Settings",
		Message:      "This will reset all your preferences to their default values. You can always change them again later.",
		ConfirmLabel: "Reset Settings",
		CancelLabel:  "Cancel",
		Severity:     SeverityWarning,
	},
}

// DialogFor returns the dialog for a, or the zero Dialog for unknown actions
func DialogFor(a Action) Dialog {
	return dialogs[a]
}

// Valid reports whether a is one of the confirmable actions
func (a Action) Valid() bool {
	_, ok := dialogs[a]
	return ok
}

// ResetNotice is shown after the settings have been reset
const ResetNotice = "All settings have been reset to their defaults."

// Performer carries out the externally visible actions. The machine depends
// on it but never implements it, so a real backend can be supplied.
type Performer interface {
	ExportData(ctx context.Context) (string, error)
	DeleteAccount(ctx context.Context) (string, error)
}

// Resetter restores the preference record to its defaults
type Resetter interface {
	ResetAll()
}

// State is the observable modal state. Action is ignored while closed.
type State struct {
	Open   bool
	Action Action
}

// Machine is the Closed / Open(action) state machine
type Machine struct {
	state     State
	performer Performer
	resetter  Resetter
	logger    zerolog.Logger
}

// NewMachine creates a closed machine
func NewMachine(performer Performer, resetter Resetter, logger zerolog.Logger) *Machine {
	return &Machine{
		performer: performer,
		resetter:  resetter,
		logger:    logger.With().Str("component", "modal").Logger(),
	}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Dialog returns the dialog for the open action
func (m *Machine) Dialog() Dialog {
	if !m.state.Open {
		return Dialog{}
	}
	return DialogFor(m.state.Action)
}

// Trigger opens the modal for a. Triggering while open replaces the action.
func (m *Machine) Trigger(a Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	m.state = State{Open: true, Action: a}
	m.logger.Info().Str("action", string(a)).Msg("confirmation opened")
	return nil
}

// Cancel closes the modal without side effects
func (m *Machine) Cancel() {
	if !m.state.Open {
		return
	}
	m.logger.Info().Str("action", string(m.state.Action)).Msg("confirmation cancelled")
	m.state = State{}
}

// Confirm performs the open action and closes the modal. The modal is closed
// even when the performer fails.
func (m *Machine) Confirm(ctx context.Context) (string, error) {
	if !m.state.Open {
		return "", ErrNotOpen
	}

	action := m.state.Action
	m.state = State{}
	m.logger.Info().Str("action", string(action)).Msg("confirmation accepted")

	switch action {
	case ActionExport:
		return m.performer.ExportData(ctx)
	case ActionDelete:
		return m.performer.DeleteAccount(ctx)
	case ActionReset:
		m.resetter.ResetAll()
		return ResetNotice, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
