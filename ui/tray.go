package ui

import (
	"fyne.io/systray"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/shell"
)

// trayDispatcher receives tray activations.
type trayDispatcher interface {
	Dispatch(id shell.MenuID) bool
	TrayClicked()
}

// TrayIndicator manages the system tray icon and its menu.
// Left click shows the window; the menu offers Show and Quit.
type TrayIndicator struct {
	dispatcher trayDispatcher
	tree       shell.MenuTree
	icon       []byte
	log        common.Logger
	done       chan struct{}
}

// NewTrayIndicator creates a tray indicator for the given menu tree.
func NewTrayIndicator(d trayDispatcher, tree shell.MenuTree, log common.Logger) *TrayIndicator {
	if log == nil {
		log = common.NopLogger{}
	}
	return &TrayIndicator{
		dispatcher: d,
		tree:       tree,
		icon:       GenerateTrayIcon(),
		log:        log,
		done:       make(chan struct{}),
	}
}

// Register hooks the tray into the native event loop owned by Wails.
// It does not block.
func (t *TrayIndicator) Register() {
	systray.Register(t.onReady, t.onExit)
}

// Quit removes the tray icon.
func (t *TrayIndicator) Quit() {
	systray.Quit()
}

// onReady is called by systray once the icon can be populated.
// It must not block and must not touch the Wails runtime.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(t.icon)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)
	systray.SetOnTapped(t.dispatcher.TrayClicked)

	for _, item := range t.tree.Items {
		if item.Kind == shell.KindSeparator {
			systray.AddSeparator()
			continue
		}
		mi := systray.AddMenuItem(item.Label, item.Label)
		go t.forward(mi.ClickedCh, item.ID)
	}
	t.log.Debug("Tray indicator ready")
}

// forward dispatches id for every click until the tray exits.
func (t *TrayIndicator) forward(clicks <-chan struct{}, id shell.MenuID) {
	for {
		select {
		case <-t.done:
			return
		case _, ok := <-clicks:
			if !ok {
				return
			}
			t.dispatcher.Dispatch(id)
		}
	}
}

// onExit is called by systray just before it exits.
func (t *TrayIndicator) onExit() {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
	t.log.Info("Tray indicator cleanup completed")
}
