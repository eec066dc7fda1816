// Package common provides shared constants, types, and utilities
// used across the Voice Intelligence application.
package common

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.voiceintelligence.app"
	// AppName is the display name of the application.
	AppName = "Voice Intelligence"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "voice-intelligence"
)

// File names used by the application.
const (
	ConfigFileName      = "config.yaml"
	StoreFileName       = "settings.db"
	CredentialsFileName = ".credentials"
	LogFileName         = "voice-intelligence.log"
)

// UI constants.
const (
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 420
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 560
	// MinWindowWidth is the minimum window width.
	MinWindowWidth = 320
	// MinWindowHeight is the minimum window height.
	MinWindowHeight = 240
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Content view events.
const (
	// EventThemeChange carries the selected theme token.
	EventThemeChange = "menu-theme-change"
	// EventAlwaysOnTopChanged carries the new always-on-top value.
	EventAlwaysOnTopChanged = "menu-always-on-top-changed"
)

// Settings store keys, shared with the content view.
const (
	SettingThemeMode       = "themeMode"
	SettingAlwaysOnTop     = "alwaysOnTop"
	SettingShowThemeToggle = "showThemeToggle"
	SettingRequestCount    = "demoRequestCount"
)

// Limits.
const (
	// MaxHistoryEntries is the number of history entries kept in the store.
	MaxHistoryEntries = 50
	// DemoRequestLimit is the number of requests allowed on demo keys.
	DemoRequestLimit = 50
)
