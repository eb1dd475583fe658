package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds all tool configuration
type Settings struct {
	Home    string          `mapstructure:"home"`
	API     APISettings     `mapstructure:"api"`
	History HistorySettings `mapstructure:"history"`
	Logging LoggingSettings `mapstructure:"logging"`
}

// APISettings holds GitHub API client configuration
type APISettings struct {
	BaseURL string        `mapstructure:"base_url"` // GitHub API endpoint
	Timeout time.Duration `mapstructure:"timeout"`  // per-request timeout
}

// HistorySettings holds url history configuration
type HistorySettings struct {
	Max int `mapstructure:"max"` // maximum entries kept on save
}

// LoggingSettings holds logging configuration
type LoggingSettings struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | text
}

// Load loads settings from environment variables and defaults.
// Environment variables use the GHTERM_ prefix (e.g. GHTERM_HOME,
// GHTERM_API_TIMEOUT, GHTERM_HISTORY_MAX).
func Load() (*Settings, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("home", "")
	v.SetDefault("api.base_url", "https://api.github.com")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("history.max", 100)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Bind environment variables with GHTERM_ prefix
	v.SetEnvPrefix("GHTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &s, nil
}

// Validate validates the settings
func (s *Settings) Validate() error {
	if s.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}

	if s.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if s.History.Max < 1 {
		return fmt.Errorf("history.max must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[s.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error")
	}

	if s.Logging.Format != "json" && s.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be json or text")
	}

	return nil
}
