package store

import (
	"context"
	"errors"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
)

// Settings is the persisted view of the content view's preferences.
type Settings struct {
	ThemeMode       appearance.Mode `json:"themeMode"`
	AlwaysOnTop     bool            `json:"alwaysOnTop"`
	ShowThemeToggle bool            `json:"showThemeToggle"`
}

// DefaultSettings returns the values used for keys never written.
func DefaultSettings() Settings {
	return Settings{
		ThemeMode:       appearance.ModeSystem,
		AlwaysOnTop:     true,
		ShowThemeToggle: false,
	}
}

// Settings loads all preferences, filling absent keys with defaults.
// A stored theme that is not a known mode reads as system.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	out := DefaultSettings()

	var theme string
	ok, err := s.get(ctx, common.SettingThemeMode, &theme)
	if err != nil {
		return out, err
	}
	if ok {
		out.ThemeMode = appearance.Parse(theme)
	}

	if _, err := s.get(ctx, common.SettingAlwaysOnTop, &out.AlwaysOnTop); err != nil {
		return out, err
	}
	if _, err := s.get(ctx, common.SettingShowThemeToggle, &out.ShowThemeToggle); err != nil {
		return out, err
	}
	return out, nil
}

// SetThemeMode persists the theme mode.
func (s *Store) SetThemeMode(ctx context.Context, m appearance.Mode) error {
	if !m.Valid() {
		return common.ErrInvalidTheme
	}
	return s.set(ctx, common.SettingThemeMode, m.String())
}

// SetAlwaysOnTop persists the always-on-top preference.
func (s *Store) SetAlwaysOnTop(ctx context.Context, v bool) error {
	return s.set(ctx, common.SettingAlwaysOnTop, v)
}

// SetShowThemeToggle persists whether the content view shows its own
// theme switch.
func (s *Store) SetShowThemeToggle(ctx context.Context, v bool) error {
	return s.set(ctx, common.SettingShowThemeToggle, v)
}

// RequestCount returns the number of requests made on demo keys.
func (s *Store) RequestCount(ctx context.Context) (int, error) {
	var n int
	if _, err := s.get(ctx, common.SettingRequestCount, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// IncrementRequestCount adds one to the demo request counter and returns
// the new value.
func (s *Store) IncrementRequestCount(ctx context.Context) (int, error) {
	return s.IncrementRequestCountBelow(ctx, 0)
}

// IncrementRequestCountBelow adds one to the demo request counter unless it
// has already reached limit, in which case it returns the current value and
// common.ErrDemoLimitReached. A limit of zero or less means no limit. The
// read and the write happen in one transaction.
func (s *Store) IncrementRequestCountBelow(ctx context.Context, limit int) (int, error) {
	var n int
	err := s.update(ctx, func(q querier) error {
		if _, err := getValue(ctx, q, common.SettingRequestCount, &n); err != nil {
			return err
		}
		if limit > 0 && n >= limit {
			return common.ErrDemoLimitReached
		}
		n++
		return setValue(ctx, q, common.SettingRequestCount, n)
	})
	if err != nil {
		if errors.Is(err, common.ErrDemoLimitReached) {
			return n, err
		}
		return 0, err
	}
	return n, nil
}

// ResetRequestCount clears the demo request counter.
func (s *Store) ResetRequestCount(ctx context.Context) error {
	return s.set(ctx, common.SettingRequestCount, 0)
}
