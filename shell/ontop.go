package shell

import (
	"github.com/yllada/voice-intelligence/common"
)

// AlwaysOnTop mirrors one Flag into a check item and the window attribute.
type AlwaysOnTop struct {
	flag    *Flag
	item    CheckItem
	window  Window
	emitter Emitter
	log     common.Logger
}

// NewAlwaysOnTop wires the flag to its facets. item and window may be nil
// when the host has no such surface.
func NewAlwaysOnTop(flag *Flag, item CheckItem, window Window, emitter Emitter, log common.Logger) *AlwaysOnTop {
	if log == nil {
		log = common.NopLogger{}
	}
	return &AlwaysOnTop{
		flag:    flag,
		item:    item,
		window:  window,
		emitter: emitter,
		log:     log,
	}
}

// Toggle negates the flag, pushes the new value to the check item and the
// window, then notifies the content view. Facet failures are logged and
// do not stop the remaining steps.
func (t *AlwaysOnTop) Toggle() bool {
	value := t.flag.Toggle()

	if t.item != nil {
		common.LogIfError(t.log, t.item.SetChecked(value), "set always_on_top checked")
	}
	if t.window != nil {
		common.LogIfError(t.log, t.window.SetAlwaysOnTop(value), "set window always-on-top")
	}
	if t.emitter != nil {
		common.LogIfError(t.log, t.emitter.Emit(common.EventAlwaysOnTopChanged, value), "emit "+common.EventAlwaysOnTopChanged)
	}

	t.log.Debug("always-on-top: %t", value)
	return value
}

// Value returns the flag without changing it.
func (t *AlwaysOnTop) Value() bool {
	return t.flag.Load()
}
