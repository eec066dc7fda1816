package ui

import (
	"context"
	"sync"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/keyring"
	"github.com/yllada/voice-intelligence/store"
)

// settingsStore is the persistence the content view reaches through Bridge.
type settingsStore interface {
	Settings(ctx context.Context) (store.Settings, error)
	SetThemeMode(ctx context.Context, m appearance.Mode) error
	SetAlwaysOnTop(ctx context.Context, v bool) error
	SetShowThemeToggle(ctx context.Context, v bool) error
	SaveHistory(ctx context.Context, input, output, mode string) (store.HistoryEntry, error)
	History(ctx context.Context) ([]store.HistoryEntry, error)
	HistoryEntry(ctx context.Context, id string) (store.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
	RequestCount(ctx context.Context) (int, error)
	IncrementRequestCount(ctx context.Context) (int, error)
	IncrementRequestCountBelow(ctx context.Context, limit int) (int, error)
}

// keyStore reports on stored API keys.
type keyStore interface {
	Status(requestCount int) keyring.KeyStatus
	IsDemo() bool
	Destroy() error
}

// bridgeWindow is the window surface the content view may drive.
type bridgeWindow interface {
	Show() error
	Hide() error
	Focus() error
	Center() error
	SetAlwaysOnTop(onTop bool) error
}

// Bridge is bound into the content view. Every exported method is callable
// from JavaScript as window.go.ui.Bridge.<Method>.
type Bridge struct {
	mu       sync.RWMutex
	ctx      context.Context
	requests sync.Mutex
	store    settingsStore
	keys     keyStore
	window   bridgeWindow
	detector appearance.Detector
	log      common.Logger
}

func newBridge(st settingsStore, keys keyStore, window bridgeWindow, detector appearance.Detector, log common.Logger) *Bridge {
	if log == nil {
		log = common.NopLogger{}
	}
	return &Bridge{
		ctx:      context.Background(),
		store:    st,
		keys:     keys,
		window:   window,
		detector: detector,
		log:      log,
	}
}

func (b *Bridge) startup(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx = ctx
}

func (b *Bridge) context() context.Context {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ctx
}

// GetSettings returns the stored preferences.
func (b *Bridge) GetSettings() (store.Settings, error) {
	return b.store.Settings(b.context())
}

// SetThemeMode stores "system", "light" or "dark".
func (b *Bridge) SetThemeMode(mode string) error {
	m, err := appearance.ParseStrict(mode)
	if err != nil {
		return err
	}
	return b.store.SetThemeMode(b.context(), m)
}

// SetAlwaysOnTop stores the preference and applies it to the window.
// The menu check mark is left alone.
func (b *Bridge) SetAlwaysOnTop(onTop bool) error {
	if err := b.store.SetAlwaysOnTop(b.context(), onTop); err != nil {
		return err
	}
	common.LogIfError(b.log, b.window.SetAlwaysOnTop(onTop), "apply always on top")
	return nil
}

// SetShowThemeToggle stores whether the content view shows its theme switch.
func (b *Bridge) SetShowThemeToggle(show bool) error {
	return b.store.SetShowThemeToggle(b.context(), show)
}

// ResolvedTheme returns "light" or "dark" for the stored theme mode.
func (b *Bridge) ResolvedTheme() string {
	mode := appearance.ModeSystem
	if s, err := b.store.Settings(b.context()); err == nil {
		mode = s.ThemeMode
	} else {
		b.log.Warn("read theme mode: %v", err)
	}
	return appearance.Resolve(mode, b.detector).String()
}

// HideWindow hides the window.
func (b *Bridge) HideWindow() {
	common.LogIfError(b.log, b.window.Hide(), "hide window")
}

// ShowWindow shows and focuses the window.
func (b *Bridge) ShowWindow() {
	common.LogIfError(b.log, b.window.Show(), "show window")
	common.LogIfError(b.log, b.window.Focus(), "focus window")
}

// CenterWindow centres the window on its screen.
func (b *Bridge) CenterWindow() {
	common.LogIfError(b.log, b.window.Center(), "center window")
}

// SaveHistory records a processed dictation.
func (b *Bridge) SaveHistory(input, output, mode string) (store.HistoryEntry, error) {
	return b.store.SaveHistory(b.context(), input, output, mode)
}

// History returns the stored entries, newest first.
func (b *Bridge) History() ([]store.HistoryEntry, error) {
	return b.store.History(b.context())
}

// HistoryEntry returns one entry, for copying its output again.
func (b *Bridge) HistoryEntry(id string) (store.HistoryEntry, error) {
	return b.store.HistoryEntry(b.context(), id)
}

// ClearHistory removes all entries.
func (b *Bridge) ClearHistory() error {
	return b.store.ClearHistory(b.context())
}

// APIKeyStatus reports whether usable keys are stored.
func (b *Bridge) APIKeyStatus() (keyring.KeyStatus, error) {
	if b.keys == nil {
		return keyring.KeyStatus{}, nil
	}
	n, err := b.store.RequestCount(b.context())
	if err != nil {
		return keyring.KeyStatus{}, err
	}
	return b.keys.Status(n), nil
}

// IncrementRequestCount counts one request. Demo keys are removed once
// the limit is reached.
func (b *Bridge) IncrementRequestCount() (int, error) {
	ctx := b.context()

	// Held across the demo check, the increment and the key removal.
	b.requests.Lock()
	defer b.requests.Unlock()

	demo := b.keys != nil && b.keys.IsDemo()
	if !demo {
		return b.store.IncrementRequestCount(ctx)
	}

	n, err := b.store.IncrementRequestCountBelow(ctx, common.DemoRequestLimit)
	if err != nil {
		return n, err
	}
	if n >= common.DemoRequestLimit {
		b.log.Info("Demo request limit reached after %d requests", n)
		common.LogIfError(b.log, b.keys.Destroy(), "remove demo keys")
	}
	return n, nil
}
