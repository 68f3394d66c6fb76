// Package config provides configuration management for chatfill.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	cferrors "github.com/chazuruo/chatfill/internal/errors"
)

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. ~/.config/chatfill/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "chatfill", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &cferrors.ConfigError{Path: path, Err: fmt.Errorf("file not found: %w", cferrors.ErrNotFound)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &cferrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read: %w", err)}
	}

	// Start with defaults so a partial file only overrides what it names
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &cferrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse: %w", err)}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &cferrors.ConfigError{Path: path, Err: fmt.Errorf("validation failed: %w", err)}
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, &cferrors.ConfigError{Err: fmt.Errorf("validation failed: %w", err)}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: CHATFILL_<SECTION>_<FIELD>
//
// Examples:
// - CHATFILL_SERVER_ADDR overrides [server].addr
// - CHATFILL_FILL_PROMPT_STYLE overrides [fill].prompt_style
// - CHATFILL_TUI_ENABLED overrides [tui].enabled
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	applyInt64 := func(key string, target *int64) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int64
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// Server section
	applyString("CHATFILL_SERVER_ADDR", &c.Server.Addr)
	applyInt64("CHATFILL_SERVER_MAX_UPLOAD_BYTES", &c.Server.MaxUploadBytes)
	applyInt("CHATFILL_SERVER_READ_TIMEOUT_SECONDS", &c.Server.ReadTimeoutSeconds)
	applyInt("CHATFILL_SERVER_WRITE_TIMEOUT_SECONDS", &c.Server.WriteTimeoutSeconds)

	// Upload section
	applyString("CHATFILL_UPLOAD_EXTENSION", &c.Upload.Extension)
	applyString("CHATFILL_UPLOAD_COMPLETED_SUFFIX", &c.Upload.CompletedSuffix)

	// Fill section
	applyString("CHATFILL_FILL_PROMPT_STYLE", &c.Fill.PromptStyle)
	applyBool("CHATFILL_FILL_REQUIRE_DATE_FORMAT", &c.Fill.RequireDateFormat)

	// TUI section
	applyBool("CHATFILL_TUI_ENABLED", &c.TUI.Enabled)
	applyString("CHATFILL_TUI_THEME", &c.TUI.Theme)
}
