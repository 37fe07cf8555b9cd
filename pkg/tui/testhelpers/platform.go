package testhelpers

import "sync"

// FakePlatform is an appearance.Platform driven by the test
type FakePlatform struct {
	mu     sync.Mutex
	dark   bool
	nextID int
	subs   map[int]func(bool)
}

func NewFakePlatform(dark bool) *FakePlatform {
	return &FakePlatform{dark: dark, subs: make(map[int]func(bool))}
}

func (f *FakePlatform) PrefersDark() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dark
}

func (f *FakePlatform) OnChange(fn func(bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Subscribers returns the number of live subscriptions
func (f *FakePlatform) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// SetDark changes the preference and notifies subscribers
func (f *FakePlatform) SetDark(dark bool) {
	f.mu.Lock()
	f.dark = dark
	subs := make([]func(bool), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(dark)
	}
}
