package shell

import "github.com/yllada/voice-intelligence/appearance"

// MenuID is the fixed token attached to a menu entry at construction time.
// It is the only thing the router dispatches on.
type MenuID string

// Application menu bar.
const (
	IDAbout       MenuID = "about"
	IDThemeSystem MenuID = "theme_system"
	IDThemeLight  MenuID = "theme_light"
	IDThemeDark   MenuID = "theme_dark"
	IDAlwaysOnTop MenuID = "always_on_top"
	IDQuitApp     MenuID = "quit_app"
)

// Tray menu.
const (
	IDShow MenuID = "show"
	IDQuit MenuID = "quit"
)

// ThemeIDs lists the radio group in menu order.
func ThemeIDs() []MenuID {
	return []MenuID{IDThemeSystem, IDThemeLight, IDThemeDark}
}

// IsTheme reports whether id belongs to the appearance radio group.
func (id MenuID) IsTheme() bool {
	switch id {
	case IDThemeSystem, IDThemeLight, IDThemeDark:
		return true
	}
	return false
}

// ThemeMode maps a theme identifier to its token. Anything else maps to
// appearance.ModeSystem.
func (id MenuID) ThemeMode() appearance.Mode {
	switch id {
	case IDThemeLight:
		return appearance.ModeLight
	case IDThemeDark:
		return appearance.ModeDark
	default:
		return appearance.ModeSystem
	}
}

// ThemeID is the inverse of ThemeMode.
func ThemeID(m appearance.Mode) MenuID {
	switch m {
	case appearance.ModeLight:
		return IDThemeLight
	case appearance.ModeDark:
		return IDThemeDark
	default:
		return IDThemeSystem
	}
}
