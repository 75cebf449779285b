// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.proclama.app/proclama/internal/types"
)

const (
	appName        = "proclama"
	configFileName = "config.json"
)

// Config represents the persisted application configuration: the
// operator's preferred translation, the auto-advance pace, and the last
// display settings so a restarted session picks up where the previous
// service left off.
type Config struct {
	BibleVersion       string                `json:"bible_version,omitempty"`
	AutoAdvanceSeconds int                   `json:"auto_advance_seconds,omitempty"`
	Display            types.DisplaySettings `json:"display"`
}

// Load loads configuration from the config file. Returns the default
// config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}
	return c.saveTo(path)
}

func (c *Config) saveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// AdvanceInterval returns the configured auto-advance period.
func (c *Config) AdvanceInterval() time.Duration {
	if c.AutoAdvanceSeconds <= 0 {
		return 0 // caller falls back to the navigation default
	}
	return time.Duration(c.AutoAdvanceSeconds) * time.Second
}

func (c *Config) applyDefaults() {
	if c.BibleVersion == "" {
		c.BibleVersion = "nvi"
	}
	if c.Display.FontSizePx == 0 {
		c.Display = types.DefaultSettings()
	}
	c.Display.FontSizePx = types.ClampFontSize(c.Display.FontSizePx)
	if c.Display.Theme == "" {
		c.Display.Theme = "dark"
	}
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}
