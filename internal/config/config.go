// Package config loads fathomctl credentials and settings. The API key comes
// from the FATHOM_API_KEY environment variable or from a YAML config file;
// the environment wins when both are set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

const EnvAPIKey = "FATHOM_API_KEY"

// Config holds the settings for a fathomctl invocation.
type Config struct {
	APIKey     string `yaml:"api_key" validate:"required"`
	BaseURL    string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Timeout    int    `yaml:"timeout,omitempty" validate:"omitempty,min=1"`
	PreferRest bool   `yaml:"prefer_rest,omitempty"`
}

// TimeoutDuration returns the configured timeout, or zero when unset so
// client defaults apply.
func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fathomctl", "config.yaml")
}

// Load reads path from fs, applies environment overrides, and validates the
// result. A missing file is not an error when the environment supplies the
// API key. Config values may reference environment variables as ${VAR}.
func Load(fs afero.Fs, path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file '%s': %w", path, err)
			}
			if err := expandValues(&cfg); err != nil {
				return Config{}, fmt.Errorf("failed to expand config file '%s': %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Fall through to the environment.
		default:
			return Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("no API key configured: set %s or add api_key to '%s'", EnvAPIKey, path)
	}

	if err := defaultValidator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("failed to validate config: %w", err)
	}

	return cfg, nil
}

// expandValues replaces ${VAR} references in string fields with environment
// values. Unset variables are an error rather than an empty expansion.
func expandValues(cfg *Config) error {
	var errs error

	expand := func(value string) string {
		return os.Expand(value, func(key string) string {
			val, ok := os.LookupEnv(key)
			if !ok {
				errs = errors.Join(errs, fmt.Errorf("environment variable %q is not set", key))
				return ""
			}
			return val
		})
	}

	cfg.APIKey = expand(cfg.APIKey)
	cfg.BaseURL = expand(cfg.BaseURL)

	return errs
}
