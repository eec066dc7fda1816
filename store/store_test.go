package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", common.StoreFileName), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettings_Defaults(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("Settings() = %+v, want %+v", got, DefaultSettings())
	}
	if got.ThemeMode != appearance.ModeSystem || !got.AlwaysOnTop || got.ShowThemeToggle {
		t.Errorf("unexpected defaults %+v", got)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SetThemeMode(ctx, appearance.ModeLight); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAlwaysOnTop(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := s.SetShowThemeToggle(ctx, true); err != nil {
		t.Fatal(err)
	}

	got, err := s.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{ThemeMode: appearance.ModeLight, AlwaysOnTop: false, ShowThemeToggle: true}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestSettings_PersistAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), common.StoreFileName)

	s, err := Open(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetThemeMode(ctx, appearance.ModeDark); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.ThemeMode != appearance.ModeDark {
		t.Errorf("ThemeMode = %v, want dark", got.ThemeMode)
	}
}

func TestSetThemeMode_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	err := s.SetThemeMode(context.Background(), appearance.Mode("sepia"))
	if !errors.Is(err, common.ErrInvalidTheme) {
		t.Errorf("SetThemeMode(sepia) error = %v, want ErrInvalidTheme", err)
	}
}

func TestSettings_WrongTypeIsReported(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.set(ctx, common.SettingAlwaysOnTop, "yes"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Settings(ctx); !errors.Is(err, common.ErrSettingType) {
		t.Errorf("Settings() error = %v, want ErrSettingType", err)
	}
}

func TestRequestCount(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for want := 1; want <= 3; want++ {
		got, err := s.IncrementRequestCount(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("IncrementRequestCount() = %d, want %d", got, want)
		}
	}

	if err := s.ResetRequestCount(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.RequestCount(ctx); n != 0 {
		t.Errorf("RequestCount() after reset = %d", n)
	}
}

func TestIncrementRequestCount_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const workers = 40
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.IncrementRequestCount(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("IncrementRequestCount() error = %v", err)
	}

	if n, err := s.RequestCount(ctx); err != nil || n != workers {
		t.Errorf("RequestCount() = %d, %v, want %d", n, err, workers)
	}
}

func TestIncrementRequestCountBelow(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const limit = 5
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, rejected := 0, 0
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.IncrementRequestCountBelow(ctx, limit)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, common.ErrDemoLimitReached):
				rejected++
			default:
				t.Errorf("IncrementRequestCountBelow() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted != limit || rejected != 12-limit {
		t.Errorf("accepted = %d, rejected = %d, want %d and %d", accepted, rejected, limit, 12-limit)
	}
	n, err := s.IncrementRequestCountBelow(ctx, limit)
	if !errors.Is(err, common.ErrDemoLimitReached) || n != limit {
		t.Errorf("IncrementRequestCountBelow() at limit = %d, %v", n, err)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.SaveHistory(ctx, "hello", "Hello.", "clean")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.SaveHistory(ctx, "world", "World.", "formal")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("entry IDs should be unique: %q %q", first.ID, second.ID)
	}

	entries, err := s.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(History()) = %d, want 2", len(entries))
	}
	if entries[0] != second || entries[1] != first {
		t.Errorf("History() = %+v, want newest first", entries)
	}
}

func TestHistory_CappedAtMax(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	total := common.MaxHistoryEntries + 5
	for i := 0; i < total; i++ {
		if _, err := s.SaveHistory(ctx, fmt.Sprintf("in-%d", i), "out", "clean"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != common.MaxHistoryEntries {
		t.Fatalf("len(History()) = %d, want %d", len(entries), common.MaxHistoryEntries)
	}
	if entries[0].Input != fmt.Sprintf("in-%d", total-1) {
		t.Errorf("newest = %q", entries[0].Input)
	}
	if entries[len(entries)-1].Input != "in-5" {
		t.Errorf("oldest kept = %q, want in-5", entries[len(entries)-1].Input)
	}
}

func TestHistoryEntryAndClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	saved, err := s.SaveHistory(ctx, "a", "b", "clean")
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.HistoryEntry(ctx, saved.ID)
	if err != nil || got != saved {
		t.Errorf("HistoryEntry() = %+v, %v", got, err)
	}

	if err := s.ClearHistory(ctx); err != nil {
		t.Fatal(err)
	}
	entries, _ := s.History(ctx)
	if len(entries) != 0 {
		t.Errorf("History() after clear has %d entries", len(entries))
	}
	if _, err := s.HistoryEntry(ctx, saved.ID); !errors.Is(err, common.ErrEntryNotFound) {
		t.Errorf("HistoryEntry() after clear error = %v", err)
	}
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Settings(ctx); !errors.Is(err, common.ErrStoreClosed) {
		t.Errorf("Settings() error = %v", err)
	}
	if _, err := s.SaveHistory(ctx, "a", "b", "c"); !errors.Is(err, common.ErrStoreClosed) {
		t.Errorf("SaveHistory() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
