// Package config provides configuration management for chatfill.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
)

// MaxUploadBytes is the default upload size cap (8 MiB).
const MaxUploadBytes = 8 << 20

// Config is the top-level configuration struct for chatfill.
// It contains all configuration sections as embedded structs.
type Config struct {
	Server ServerConfig `toml:"server"`
	Upload UploadConfig `toml:"upload"`
	Fill   FillConfig   `toml:"fill"`
	TUI    TUIConfig    `toml:"tui"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address (default: "127.0.0.1:8080").
	Addr string `toml:"addr"`

	// MaxUploadBytes caps the size of an uploaded document in bytes.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// ReadTimeoutSeconds is the server read timeout.
	ReadTimeoutSeconds int `toml:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the server write timeout.
	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`
}

// UploadConfig contains document intake settings.
type UploadConfig struct {
	// Extension is the accepted file extension.
	Extension string `toml:"extension"`

	// CompletedSuffix is appended to the base name of generated
	// documents (e.g. lease.docx -> lease-completed.docx).
	CompletedSuffix string `toml:"completed_suffix"`
}

// FillConfig contains answer-collection settings.
type FillConfig struct {
	// PromptStyle determines how placeholders are prompted.
	// Valid values: "chat", "form".
	PromptStyle string `toml:"prompt_style"`

	// RequireDateFormat rejects answers to date-like placeholders that
	// are not in YYYY-MM-DD form. When false, any non-empty answer is
	// accepted.
	RequireDateFormat bool `toml:"require_date_format"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// Enabled controls whether to use the TUI (when false, falls back to plain prompts).
	Enabled bool `toml:"enabled"`

	// Theme is the TUI theme name.
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                "127.0.0.1:8080",
			MaxUploadBytes:      MaxUploadBytes,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
		},
		Upload: UploadConfig{
			Extension:       ".docx",
			CompletedSuffix: "-completed",
		},
		Fill: FillConfig{
			PromptStyle:       "chat",
			RequireDateFormat: true,
		},
		TUI: TUIConfig{
			Enabled: true,
			Theme:   "default",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	// Validate Server section
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0; got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.ReadTimeoutSeconds < 0 {
		return fmt.Errorf("server.read_timeout_seconds must be >= 0; got %d", c.Server.ReadTimeoutSeconds)
	}
	if c.Server.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("server.write_timeout_seconds must be >= 0; got %d", c.Server.WriteTimeoutSeconds)
	}

	// Validate Upload section
	if c.Upload.Extension == "" {
		return fmt.Errorf("upload.extension cannot be empty")
	}
	if c.Upload.Extension[0] != '.' {
		return fmt.Errorf("upload.extension must start with '.'; got %q", c.Upload.Extension)
	}
	if c.Upload.CompletedSuffix == "" {
		return fmt.Errorf("upload.completed_suffix cannot be empty")
	}

	// Validate Fill section
	validPromptStyles := map[string]bool{
		"chat": true,
		"form": true,
	}
	if !validPromptStyles[c.Fill.PromptStyle] {
		return fmt.Errorf("fill.prompt_style must be one of: chat, form; got %q", c.Fill.PromptStyle)
	}

	// Validate TUI section
	if c.TUI.Theme == "" {
		return fmt.Errorf("tui.theme cannot be empty")
	}

	return nil
}
