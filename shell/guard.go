package shell

import (
	"sync/atomic"

	"github.com/yllada/voice-intelligence/common"
)

// Guard keeps the window alive for the life of the process: close
// requests hide it, show requests bring it back with focus. Only a quit
// from the menu or tray lets the window close.
type Guard struct {
	window   Window
	log      common.Logger
	quitting atomic.Bool
}

// NewGuard returns a Guard for window.
func NewGuard(window Window, log common.Logger) *Guard {
	if log == nil {
		log = common.NopLogger{}
	}
	return &Guard{window: window, log: log}
}

// BeforeClose is the host's close-request hook. It vetoes the close and
// hides the window unless a quit is in progress.
func (g *Guard) BeforeClose() (prevent bool) {
	if g.quitting.Load() {
		return false
	}
	common.LogIfError(g.log, g.window.Hide(), "hide window on close")
	return true
}

// Show restores visibility and requests input focus.
func (g *Guard) Show() {
	common.LogIfError(g.log, g.window.Show(), "show window")
	common.LogIfError(g.log, g.window.Focus(), "focus window")
}

// Hide hides the window.
func (g *Guard) Hide() {
	common.LogIfError(g.log, g.window.Hide(), "hide window")
}

// AllowClose marks the process as quitting so the next close goes through.
func (g *Guard) AllowClose() {
	g.quitting.Store(true)
}

// Quitting reports whether AllowClose has been called.
func (g *Guard) Quitting() bool {
	return g.quitting.Load()
}
