// Package config provides configuration management for Voice Intelligence.
// It handles loading, saving, and validating launch settings for the shell.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yllada/voice-intelligence/common"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// WindowWidth is the initial window width in pixels.
	WindowWidth int `yaml:"window_width"`
	// WindowHeight is the initial window height in pixels.
	WindowHeight int `yaml:"window_height"`
	// StartHidden starts with the window hidden; the tray brings it back.
	StartHidden bool `yaml:"start_hidden"`
	// ShowTray enables the system tray icon.
	ShowTray bool `yaml:"show_tray"`
	// RestoreSettings applies the stored theme and always-on-top values
	// at startup. When false the shell starts from its defaults.
	RestoreSettings bool `yaml:"restore_settings"`
	// StorePath is the settings database. Empty means the data directory.
	StorePath string `yaml:"store_path,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	path string `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:     common.DefaultWindowWidth,
		WindowHeight:    common.DefaultWindowHeight,
		StartHidden:     false,
		ShowTray:        true,
		RestoreSettings: true,
		LogLevel:        "info",
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating it with defaults
// when missing.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: error parsing configuration: %v", common.ErrConfigLoad, err)
	}
	config.path = configPath
	config.validate()

	return config, nil
}

// validate replaces out-of-range values with defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()
	if c.WindowWidth < common.MinWindowWidth {
		c.WindowWidth = defaults.WindowWidth
	}
	if c.WindowHeight < common.MinWindowHeight {
		c.WindowHeight = defaults.WindowHeight
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = defaults.LogLevel
	}
}

// Save saves the configuration to the file it was loaded from.
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = getConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}

// ResolveStorePath returns StorePath, or the default location in the
// data directory.
func (c *Config) ResolveStorePath() (string, error) {
	if c.StorePath != "" {
		return c.StorePath, nil
	}
	dataDir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, common.StoreFileName), nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
