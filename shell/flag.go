package shell

import "sync"

// Flag is a process-wide boolean cell shared by the handlers that read and
// write it. It is injected, not global.
type Flag struct {
	mu    sync.Mutex
	value bool
}

// NewFlag returns a Flag holding initial.
func NewFlag(initial bool) *Flag {
	return &Flag{value: initial}
}

// Load returns the current value.
func (f *Flag) Load() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Store replaces the current value.
func (f *Flag) Store(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// Toggle negates the value and returns the new one.
func (f *Flag) Toggle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = !f.value
	return f.value
}
