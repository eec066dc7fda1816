package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/keyring"
	"github.com/yllada/voice-intelligence/store"
)

type fakeBridgeWindow struct {
	visible, focused, centered, onTop bool
	fail                              bool
}

func (w *fakeBridgeWindow) Show() error {
	if w.fail {
		return common.ErrHostNotReady
	}
	w.visible = true
	return nil
}

func (w *fakeBridgeWindow) Hide() error {
	if w.fail {
		return common.ErrHostNotReady
	}
	w.visible = false
	return nil
}

func (w *fakeBridgeWindow) Focus() error {
	if w.fail {
		return common.ErrHostNotReady
	}
	w.focused = true
	return nil
}

func (w *fakeBridgeWindow) Center() error {
	if w.fail {
		return common.ErrHostNotReady
	}
	w.centered = true
	return nil
}

func (w *fakeBridgeWindow) SetAlwaysOnTop(onTop bool) error {
	if w.fail {
		return common.ErrHostNotReady
	}
	w.onTop = onTop
	return nil
}

type bridgeFixture struct {
	bridge *Bridge
	store  *store.Store
	keys   *keyring.Keyring
	window *fakeBridgeWindow
}

func newBridgeFixture(t *testing.T, detector appearance.Detector) *bridgeFixture {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(context.Background(), filepath.Join(dir, common.StoreFileName), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	keys, err := keyring.New(keyring.Options{Dir: dir, ForceFile: true})
	if err != nil {
		t.Fatal(err)
	}

	window := &fakeBridgeWindow{}
	return &bridgeFixture{
		bridge: newBridge(st, keys, window, detector, nil),
		store:  st,
		keys:   keys,
		window: window,
	}
}

func TestBridge_Settings(t *testing.T) {
	f := newBridgeFixture(t, nil)

	if err := f.bridge.SetThemeMode("light"); err != nil {
		t.Fatal(err)
	}
	if err := f.bridge.SetShowThemeToggle(true); err != nil {
		t.Fatal(err)
	}
	if err := f.bridge.SetThemeMode("sepia"); !errors.Is(err, common.ErrInvalidTheme) {
		t.Errorf("SetThemeMode(sepia) error = %v", err)
	}

	got, err := f.bridge.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := store.Settings{ThemeMode: appearance.ModeLight, AlwaysOnTop: true, ShowThemeToggle: true}
	if got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func TestBridge_SetAlwaysOnTop(t *testing.T) {
	f := newBridgeFixture(t, nil)
	f.window.onTop = true

	if err := f.bridge.SetAlwaysOnTop(false); err != nil {
		t.Fatal(err)
	}
	if f.window.onTop {
		t.Error("window should no longer be on top")
	}
	if s, _ := f.bridge.GetSettings(); s.AlwaysOnTop {
		t.Error("preference should be stored")
	}

	// Window failures are logged, the preference is still stored.
	f.window.fail = true
	if err := f.bridge.SetAlwaysOnTop(true); err != nil {
		t.Errorf("SetAlwaysOnTop() error = %v", err)
	}
	if s, _ := f.bridge.GetSettings(); !s.AlwaysOnTop {
		t.Error("preference should be stored when the window call fails")
	}
}

func TestBridge_ResolvedTheme(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		detector appearance.Detector
		want     string
	}{
		{"explicit light", "light", nil, "light"},
		{"explicit dark", "dark", nil, "dark"},
		{"system without detector", "system", nil, "dark"},
		{"system prefers light", "system", appearance.DetectorFunc(func() (appearance.Mode, error) {
			return appearance.ModeLight, nil
		}), "light"},
		{"system detector fails", "system", appearance.DetectorFunc(func() (appearance.Mode, error) {
			return "", errors.New("no portal")
		}), "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBridgeFixture(t, tt.detector)
			if err := f.bridge.SetThemeMode(tt.stored); err != nil {
				t.Fatal(err)
			}
			if got := f.bridge.ResolvedTheme(); got != tt.want {
				t.Errorf("ResolvedTheme() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBridge_WindowControls(t *testing.T) {
	f := newBridgeFixture(t, nil)

	f.bridge.ShowWindow()
	if !f.window.visible || !f.window.focused {
		t.Error("ShowWindow should show and focus")
	}
	f.bridge.CenterWindow()
	if !f.window.centered {
		t.Error("CenterWindow should center")
	}
	f.bridge.HideWindow()
	if f.window.visible {
		t.Error("HideWindow should hide")
	}

	f.window.fail = true
	f.bridge.ShowWindow() // must not panic
}

func TestBridge_History(t *testing.T) {
	f := newBridgeFixture(t, nil)

	saved, err := f.bridge.SaveHistory("um so hello", "Hello.", "clean")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := f.bridge.History()
	if err != nil || len(entries) != 1 || entries[0] != saved {
		t.Fatalf("History() = %+v, %v", entries, err)
	}
	if got, err := f.bridge.HistoryEntry(saved.ID); err != nil || got != saved {
		t.Errorf("HistoryEntry() = %+v, %v", got, err)
	}
	if err := f.bridge.ClearHistory(); err != nil {
		t.Fatal(err)
	}
	if entries, _ := f.bridge.History(); len(entries) != 0 {
		t.Errorf("History() after clear = %d entries", len(entries))
	}
}

func TestBridge_DemoLimit(t *testing.T) {
	f := newBridgeFixture(t, nil)
	for _, p := range keyring.Providers() {
		if err := f.keys.Store(p, "demo-key"); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.keys.MarkDemo(true); err != nil {
		t.Fatal(err)
	}

	status, err := f.bridge.APIKeyStatus()
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsDemo || !status.HasValidKeys || status.RemainingRequests != common.DemoRequestLimit {
		t.Errorf("initial status = %+v", status)
	}

	for i := 1; i <= common.DemoRequestLimit; i++ {
		n, err := f.bridge.IncrementRequestCount()
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if n != i {
			t.Fatalf("IncrementRequestCount() = %d, want %d", n, i)
		}
	}

	for _, p := range keyring.Providers() {
		if f.keys.Exists(p) {
			t.Errorf("%s demo key should be removed at the limit", p)
		}
	}
	status, _ = f.bridge.APIKeyStatus()
	if status.HasValidKeys {
		t.Errorf("status after limit = %+v", status)
	}
}

func TestBridge_DemoLimitAlreadyReached(t *testing.T) {
	f := newBridgeFixture(t, nil)
	if err := f.keys.MarkDemo(true); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < common.DemoRequestLimit; i++ {
		if _, err := f.store.IncrementRequestCount(ctx); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := f.bridge.IncrementRequestCount(); !errors.Is(err, common.ErrDemoLimitReached) {
		t.Errorf("IncrementRequestCount() error = %v, want ErrDemoLimitReached", err)
	}
}

func TestBridge_DemoLimitConcurrent(t *testing.T) {
	f := newBridgeFixture(t, nil)
	for _, p := range keyring.Providers() {
		if err := f.keys.Store(p, "demo-key"); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.keys.MarkDemo(true); err != nil {
		t.Fatal(err)
	}

	const calls = common.DemoRequestLimit + 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]bool)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := f.bridge.IncrementRequestCount()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				t.Errorf("IncrementRequestCount() error = %v", err)
				return
			}
			if seen[n] {
				t.Errorf("count %d returned twice", n)
			}
			seen[n] = true
		}()
	}
	wg.Wait()

	if n, _ := f.store.RequestCount(context.Background()); n != calls {
		t.Errorf("RequestCount() = %d, want %d", n, calls)
	}
	for _, p := range keyring.Providers() {
		if f.keys.Exists(p) {
			t.Errorf("%s demo key should be removed at the limit", p)
		}
	}
	if f.keys.IsDemo() {
		t.Error("demo marker should be removed at the limit")
	}
}

func TestBridge_NoKeyring(t *testing.T) {
	f := newBridgeFixture(t, nil)
	b := newBridge(f.store, nil, f.window, nil, nil)

	status, err := b.APIKeyStatus()
	if err != nil || status != (keyring.KeyStatus{}) {
		t.Errorf("APIKeyStatus() = %+v, %v", status, err)
	}
	if n, err := b.IncrementRequestCount(); err != nil || n != 1 {
		t.Errorf("IncrementRequestCount() = %d, %v", n, err)
	}
}
