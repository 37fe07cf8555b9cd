package appearance

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/prefpanel/pkg/models"
)

// fakePlatform is a Platform whose signal is driven by the test
type fakePlatform struct {
	dark       bool
	subs       map[int]func(bool)
	nextID     int
	subscribes int
}

func newFakePlatform(dark bool) *fakePlatform {
	return &fakePlatform{dark: dark, subs: map[int]func(bool){}}
}

func (f *fakePlatform) PrefersDark() bool { return f.dark }

func (f *fakePlatform) OnChange(fn func(bool)) func() {
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.subscribes++
	return func() { delete(f.subs, id) }
}

func (f *fakePlatform) set(dark bool) {
	f.dark = dark
	for _, fn := range f.subs {
		fn(dark)
	}
}

// loop collects signals the way the UI event loop would
type loop struct {
	pending []Signal
}

func (l *loop) sink(s Signal) { l.pending = append(l.pending, s) }

func (l *loop) drain(t *Tracker) {
	for _, s := range l.pending {
		t.Observe(s)
	}
	l.pending = nil
}

func TestEffective(t *testing.T) {
	tests := []struct {
		mode        models.ThemeMode
		prefersDark bool
		want        Theme
	}{
		{models.ThemeLight, false, Light},
		{models.ThemeLight, true, Light},
		{models.ThemeDark, false, Dark},
		{models.ThemeDark, true, Dark},
		{models.ThemeSystem, false, Light},
		{models.ThemeSystem, true, Dark},
	}

	for _, tt := range tests {
		if got := Effective(tt.mode, tt.prefersDark); got != tt.want {
			t.Errorf("Effective(%s, %v) = %s, want %s", tt.mode, tt.prefersDark, got, tt.want)
		}
	}
}

func TestTrackerFixedModesIgnorePlatform(t *testing.T) {
	for _, mode := range []models.ThemeMode{models.ThemeLight, models.ThemeDark} {
		t.Run(string(mode), func(t *testing.T) {
			p := newFakePlatform(false)
			l := &loop{}
			tr := NewTracker(p, mode, l.sink, zerolog.Nop())

			want := Effective(mode, false)
			assert.Equal(t, want, tr.Effective())
			assert.False(t, tr.Subscribed())
			assert.Empty(t, p.subs)

			p.set(true)
			l.drain(tr)
			assert.Equal(t, want, tr.Effective())
		})
	}
}

func TestTrackerSystemFollowsPlatform(t *testing.T) {
	p := newFakePlatform(true)
	l := &loop{}
	tr := NewTracker(p, models.ThemeSystem, l.sink, zerolog.Nop())

	assert.Equal(t, Dark, tr.Effective())
	assert.True(t, tr.Subscribed())

	p.set(false)
	l.drain(tr)
	assert.Equal(t, Light, tr.Effective())

	p.set(true)
	l.drain(tr)
	assert.Equal(t, Dark, tr.Effective())
}

func TestTrackerDetachesWhenLeavingSystem(t *testing.T) {
	p := newFakePlatform(false)
	l := &loop{}
	tr := NewTracker(p, models.ThemeSystem, l.sink, zerolog.Nop())
	require.Len(t, p.subs, 1)

	tr.SetMode(models.ThemeLight)
	assert.False(t, tr.Subscribed())
	assert.Empty(t, p.subs, "subscription leaked after leaving system mode")

	p.set(true)
	l.drain(tr)
	assert.Equal(t, Light, tr.Effective())
}

func TestTrackerDropsStaleSignals(t *testing.T) {
	p := newFakePlatform(false)
	l := &loop{}
	tr := NewTracker(p, models.ThemeSystem, l.sink, zerolog.Nop())
	first := tr.Generation()

	// A change is queued but not yet delivered when the user picks dark
	p.set(true)
	tr.SetMode(models.ThemeDark)
	assert.Equal(t, models.ThemeDark, tr.Mode())
	l.drain(tr)
	assert.Equal(t, Dark, tr.Effective())

	// Back to system: the queued signal from the old subscription must not apply
	p.dark = false
	stale := Signal{Generation: first, PrefersDark: true}
	tr.SetMode(models.ThemeSystem)
	assert.Equal(t, models.ThemeSystem, tr.Mode())
	assert.Greater(t, tr.Generation(), first)
	assert.Equal(t, Light, tr.Effective())
	assert.False(t, tr.Observe(stale))
	assert.Equal(t, Light, tr.Effective())
}

func TestTrackerResubscribesOnce(t *testing.T) {
	p := newFakePlatform(false)
	tr := NewTracker(p, models.ThemeSystem, nil, zerolog.Nop())

	tr.SetMode(models.ThemeSystem)
	tr.SetMode(models.ThemeSystem)
	assert.Equal(t, 1, p.subscribes)

	tr.SetMode(models.ThemeDark)
	tr.SetMode(models.ThemeSystem)
	assert.Equal(t, 2, p.subscribes)
	assert.Len(t, p.subs, 1)
}

func TestTrackerRereadsPlatformOnEnteringSystem(t *testing.T) {
	p := newFakePlatform(false)
	tr := NewTracker(p, models.ThemeLight, nil, zerolog.Nop())

	p.dark = true
	tr.SetMode(models.ThemeSystem)
	assert.Equal(t, Dark, tr.Effective())
}

func TestTrackerClose(t *testing.T) {
	p := newFakePlatform(false)
	l := &loop{}
	tr := NewTracker(p, models.ThemeSystem, l.sink, zerolog.Nop())

	tr.Close()
	assert.False(t, tr.Subscribed())
	assert.Empty(t, p.subs)

	tr.Close()
	p.set(true)
	assert.Empty(t, l.pending)
}

func TestTrackerWithResolver(t *testing.T) {
	d := &stubDetector{name: "stub", priority: 1, available: true, dark: false, ok: true}
	r := NewResolver(nil, d)
	l := &loop{}
	tr := NewTracker(r, models.ThemeSystem, l.sink, zerolog.Nop())
	assert.Equal(t, Light, tr.Effective())
	assert.Equal(t, 1, r.Subscribers())

	d.dark = true
	r.Refresh()
	l.drain(tr)
	assert.Equal(t, Dark, tr.Effective())

	tr.SetMode(models.ThemeLight)
	assert.Equal(t, 0, r.Subscribers())
}
