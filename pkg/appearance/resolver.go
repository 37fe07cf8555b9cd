// Package appearance detects the platform's dark-mode preference and derives
// the effective display theme from it.
package appearance

import (
	"sort"
	"strings"
	"sync"
)

const (
	sourceFallback = "fallback"
	sourceConfig   = "config"
)

// Preference is a resolved platform preference and the detector it came from
type Preference struct {
	PrefersDark bool
	Source      string
}

// Detector reports the platform's color scheme preference.
// Higher priority detectors are consulted first.
type Detector interface {
	Name() string
	Priority() int
	Available() bool
	Detect() (prefersDark bool, ok bool)
}

// ConfigProvider exposes an explicit color scheme override
type ConfigProvider interface {
	// GetColorScheme returns "prefer-dark", "prefer-light" or "" for no override
	GetColorScheme() string
}

type callbackWrapper struct {
	fn func(bool)
}

// Resolver walks registered detectors in priority order and notifies
// subscribers when the resolved preference flips.
type Resolver struct {
	mu        sync.RWMutex
	config    ConfigProvider
	detectors []Detector
	current   Preference
	callbacks []*callbackWrapper
}

// NewResolver creates a resolver. config may be nil.
func NewResolver(config ConfigProvider, detectors ...Detector) *Resolver {
	r := &Resolver{
		config:    config,
		detectors: append([]Detector(nil), detectors...),
	}
	r.current = r.resolveInternal()
	return r
}

// RegisterDetector adds a detector; it takes part from the next Refresh
func (r *Resolver) RegisterDetector(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, d)
}

// Resolve returns the last resolved preference
func (r *Resolver) Resolve() Preference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// PrefersDark implements Platform
func (r *Resolver) PrefersDark() bool {
	return r.Resolve().PrefersDark
}

// resolveInternal must be called with at least a read lock held, or before
// the resolver is shared.
func (r *Resolver) resolveInternal() Preference {
	if r.config != nil {
		switch strings.ToLower(strings.TrimSpace(r.config.GetColorScheme())) {
		case "prefer-dark", "dark":
			return Preference{PrefersDark: true, Source: sourceConfig}
		case "prefer-light", "light":
			return Preference{PrefersDark: false, Source: sourceConfig}
		}
	}

	sorted := make([]Detector, len(r.detectors))
	copy(sorted, r.detectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, d := range sorted {
		if !d.Available() {
			continue
		}
		if dark, ok := d.Detect(); ok {
			return Preference{PrefersDark: dark, Source: d.Name()}
		}
	}

	return Preference{PrefersDark: false, Source: sourceFallback}
}

// Refresh re-runs detection and notifies subscribers if the preference flipped
func (r *Resolver) Refresh() Preference {
	r.mu.Lock()
	next := r.resolveInternal()
	changed := next.PrefersDark != r.current.PrefersDark
	r.current = next

	var callbacks []*callbackWrapper
	if changed {
		callbacks = make([]*callbackWrapper, len(r.callbacks))
		copy(callbacks, r.callbacks)
	}
	r.mu.Unlock()

	for _, cb := range callbacks {
		cb.fn(next.PrefersDark)
	}
	return next
}

// OnChange implements Platform. The returned func unregisters the callback
// and is safe to call more than once.
func (r *Resolver) OnChange(fn func(prefersDark bool)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	wrapper := &callbackWrapper{fn: fn}
	r.callbacks = append(r.callbacks, wrapper)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cb := range r.callbacks {
			if cb == wrapper {
				r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered callbacks
func (r *Resolver) Subscribers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks)
}
