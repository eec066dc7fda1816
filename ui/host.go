package ui

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"github.com/yllada/voice-intelligence/common"
)

// host is the Wails window and event bus. Wails hands out its context only
// in OnStartup, so every call before that returns ErrHostNotReady.
type host struct {
	mu  sync.RWMutex
	ctx context.Context
}

func newHost() *host {
	return &host{}
}

func (h *host) attach(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctx = ctx
}

func (h *host) context() (context.Context, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ctx == nil {
		return nil, common.ErrHostNotReady
	}
	return h.ctx, nil
}

// Ready reports whether the window exists.
func (h *host) Ready() bool {
	_, err := h.context()
	return err == nil
}

func (h *host) Show() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowShow(ctx)
	return nil
}

func (h *host) Hide() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowHide(ctx)
	return nil
}

// Focus raises the window. Wails has no explicit focus call; restoring it
// from a minimised state makes the window manager present it.
func (h *host) Focus() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowUnminimise(ctx)
	return nil
}

func (h *host) SetAlwaysOnTop(onTop bool) error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowSetAlwaysOnTop(ctx, onTop)
	return nil
}

func (h *host) Center() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowCenter(ctx)
	return nil
}

func (h *host) Minimise() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowMinimise(ctx)
	return nil
}

// ExecJS runs a script in the content view.
func (h *host) ExecJS(js string) error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowExecJS(ctx, js)
	return nil
}

// Emit implements shell.Emitter.
func (h *host) Emit(event string, payload any) error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.EventsEmit(ctx, event, payload)
	return nil
}

// RefreshMenu pushes check state changes to the native menu bar.
func (h *host) RefreshMenu() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.MenuUpdateApplicationMenu(ctx)
	return nil
}

// Quit ends the Wails run loop.
func (h *host) Quit() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.Quit(ctx)
	return nil
}
