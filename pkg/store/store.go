// Package store holds the in-memory preference record for a session.
package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pluqqy/prefpanel/pkg/models"
)

// Store is the single owner of the preference record. It is not safe for
// concurrent use; all callers run on the UI event loop.
type Store struct {
	prefs  models.Preferences
	logger zerolog.Logger
}

// New creates a store initialised with the default record
func New(logger zerolog.Logger) *Store {
	return &Store{
		prefs:  models.DefaultPreferences(),
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Preferences returns a copy of the current record
func (s *Store) Preferences() models.Preferences {
	return s.prefs
}

// Update replaces the value for key. Invalid writes are rejected and the
// record is left untouched.
func (s *Store) Update(key models.Key, value models.Value) error {
	next := s.prefs
	if err := next.Set(key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", string(key)).Msg("rejected preference write")
		return err
	}

	s.prefs = next
	s.logger.Debug().Str("key", string(key)).Str("value", value.String()).Msg("preference updated")
	return nil
}

// Toggle flips a boolean preference
func (s *Store) Toggle(key models.Key) error {
	current, err := s.prefs.Get(key)
	if err != nil {
		return err
	}
	if current.Kind != models.KindBool {
		return fmt.Errorf("%w: %s is not a toggle", models.ErrInvalidValue, key)
	}
	return s.Update(key, models.BoolValue(!current.Bool))
}

// SetFontSize clamps n into the allowed range before writing it
func (s *Store) SetFontSize(n int) error {
	return s.Update(models.KeyFontSize, models.IntValue(models.ClampFontSize(n)))
}

// ResetAll replaces the whole record with the defaults
func (s *Store) ResetAll() {
	s.prefs = models.DefaultPreferences()
	s.logger.Info().Msg("preferences reset to defaults")
}
