package shell

import (
	"fmt"

	"github.com/yllada/voice-intelligence/common"
)

// Options are the collaborators a Shell is assembled from.
type Options struct {
	// Window is the top-level window.
	Window Window
	// Emitter delivers notifications to the content view.
	Emitter Emitter
	// Exiter ends the process on quit.
	Exiter Exiter
	// Items holds the realized check items for the three theme IDs and
	// IDAlwaysOnTop.
	Items map[MenuID]CheckItem
	// Initial is the state the menus were built with.
	Initial State
	// Logger receives best-effort failures. Defaults to discarding.
	Logger common.Logger
}

// Shell owns the menu state and routes identified events to it.
type Shell struct {
	appearance *Appearance
	onTop      *AlwaysOnTop
	guard      *Guard
	router     *Router
	exiter     Exiter
	log        common.Logger
}

// New assembles a Shell and registers the dispatch table.
func New(opts Options) (*Shell, error) {
	if opts.Window == nil {
		return nil, fmt.Errorf("%w: window is required", common.ErrInvalidMenu)
	}
	if opts.Exiter == nil {
		return nil, fmt.Errorf("%w: exiter is required", common.ErrInvalidMenu)
	}
	log := opts.Logger
	if log == nil {
		log = common.NopLogger{}
	}

	appearanceState, err := NewAppearance(opts.Items, opts.Emitter, opts.Initial.Theme, log)
	if err != nil {
		return nil, err
	}
	onTopItem, ok := opts.Items[IDAlwaysOnTop]
	if !ok || onTopItem == nil {
		return nil, fmt.Errorf("%w: missing check item %q", common.ErrInvalidMenu, IDAlwaysOnTop)
	}

	s := &Shell{
		appearance: appearanceState,
		onTop:      NewAlwaysOnTop(NewFlag(opts.Initial.AlwaysOnTop), onTopItem, opts.Window, opts.Emitter, log),
		guard:      NewGuard(opts.Window, log),
		router:     NewRouter(log),
		exiter:     opts.Exiter,
		log:        log,
	}
	s.registerHandlers()
	return s, nil
}

func (s *Shell) registerHandlers() {
	// Reserved for an about dialog.
	s.router.Handle(IDAbout, func() {})

	for _, id := range ThemeIDs() {
		id := id
		s.router.Handle(id, func() { s.appearance.Select(id) })
	}

	s.router.Handle(IDAlwaysOnTop, func() { s.onTop.Toggle() })
	s.router.Handle(IDQuitApp, s.quit)
	s.router.Handle(IDQuit, s.quit)
	s.router.Handle(IDShow, s.guard.Show)
}

func (s *Shell) quit() {
	s.log.Info("quit requested")
	s.guard.AllowClose()
	s.exiter.Exit(0)
}

// Dispatch routes a menu or tray activation.
func (s *Shell) Dispatch(id MenuID) bool {
	return s.router.Dispatch(id)
}

// Activate routes id like Dispatch and reports an identifier with no
// handler as common.ErrUnknownMenuID.
func (s *Shell) Activate(id MenuID) error {
	if !s.router.Dispatch(id) {
		return fmt.Errorf("%w: %q", common.ErrUnknownMenuID, id)
	}
	return nil
}

// TrayClicked routes a tray icon primary click.
func (s *Shell) TrayClicked() {
	s.router.TrayClicked()
}

// BeforeClose is the window close-request hook.
func (s *Shell) BeforeClose() (prevent bool) {
	return s.guard.BeforeClose()
}

// Guard returns the window lifecycle guard.
func (s *Shell) Guard() *Guard {
	return s.guard
}

// State reports the current theme selection and always-on-top flag.
func (s *Shell) State() State {
	return State{
		Theme:       s.appearance.Current(),
		AlwaysOnTop: s.onTop.Value(),
	}
}
