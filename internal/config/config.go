// Package config holds aura's application configuration, stored as
// .aura/config.json under the workspace. Missing files yield defaults;
// a handful of environment variables override the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level application configuration.
type Config struct {
	// StepsSource is the URL or local file path of the step
	// configuration document. Empty means the bundled assessment.
	StepsSource string `json:"steps_source,omitempty"`

	// FetchTimeoutSeconds bounds the configuration fetch.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`

	// WatchSteps reloads a local steps file on change (dev only).
	WatchSteps bool `json:"watch_steps,omitempty"`

	// Theme selects the color scheme: "auto", "light" or "dark".
	Theme string `json:"theme"`

	// Logging controls the categorized debug logger.
	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig mirrors what internal/logging reads from the same file.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// Default returns sensible defaults for a fresh workspace.
func Default() *Config {
	return &Config{
		FetchTimeoutSeconds: 15,
		Theme:               "auto",
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Dir returns the aura state directory for a workspace.
func Dir(workspace string) string {
	return filepath.Join(workspace, ".aura")
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	return filepath.Join(Dir(workspace), "config.json")
}

// Load reads the workspace config, applying defaults for a missing
// file and environment overrides on top.
func Load(workspace string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(workspace))
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", Path(workspace), err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = Default().FetchTimeoutSeconds
	}
	return cfg, nil
}

// Save writes the config back to the workspace.
func (c *Config) Save(workspace string) error {
	if err := os.MkdirAll(Dir(workspace), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(Path(workspace), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AURA_STEPS_SOURCE"); v != "" {
		c.StepsSource = v
	}
	if v := os.Getenv("AURA_THEME"); v != "" {
		c.Theme = v
	}
	if os.Getenv("AURA_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}
