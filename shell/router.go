package shell

import (
	"sync"

	"github.com/yllada/voice-intelligence/common"
)

// Router dispatches menu and tray activations by identifier.
//
// The menu bar and the tray deliver events from different loops, so
// Dispatch serializes handlers: each one runs to completion before the
// next starts.
type Router struct {
	mu       sync.Mutex
	handlers map[MenuID]func()
	log      common.Logger
}

// NewRouter returns an empty Router.
func NewRouter(log common.Logger) *Router {
	if log == nil {
		log = common.NopLogger{}
	}
	return &Router{
		handlers: make(map[MenuID]func()),
		log:      log,
	}
}

// Handle registers fn for id, replacing any previous handler.
func (r *Router) Handle(id MenuID, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = fn
}

// Dispatch runs the handler for id. Unknown identifiers are ignored and
// reported as not handled.
func (r *Router) Dispatch(id MenuID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn, ok := r.handlers[id]
	if !ok {
		r.log.Debug("ignoring menu event %q", id)
		return false
	}
	r.log.Debug("menu event %q", id)
	if fn != nil {
		fn()
	}
	return true
}

// TrayClicked handles a primary-button release on the tray icon.
func (r *Router) TrayClicked() {
	r.Dispatch(IDShow)
}
