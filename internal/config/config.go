// Package config loads CLI configuration with a predictable priority:
// values from the yaml config file, overridden by AI_PLATFORM_* environment
// variables, overridden by command-line flags (applied by the caller).
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the client-side settings. The backend API itself carries no
// configuration here - it is an external service the client merely targets.
type Config struct {
	// APIURL is the REST base URL including the version prefix.
	APIURL string `yaml:"api_url" env:"AI_PLATFORM_API_URL" env-default:"http://localhost:8000/api/v1"`

	// WSURL overrides the websocket base URL for streaming chat. Empty derives
	// it from APIURL by swapping the scheme.
	WSURL string `yaml:"ws_url,omitempty" env:"AI_PLATFORM_WS_URL"`

	// DefaultModel is used by playground commands when no model flag is given.
	DefaultModel string `yaml:"default_model" env:"AI_PLATFORM_DEFAULT_MODEL" env-default:"gpt-4-turbo"`

	// OutputFormat selects CLI rendering: "table" or "json".
	OutputFormat string `yaml:"output_format" env:"AI_PLATFORM_OUTPUT_FORMAT" env-default:"table"`

	// RefreshLeeway refreshes the session this long before the access token
	// expires instead of waiting for a 401.
	RefreshLeeway time.Duration `yaml:"refresh_leeway,omitempty" env:"AI_PLATFORM_REFRESH_LEEWAY" env-default:"30s"`
}

// DefaultPath returns the config file location, ~/.ai-platform/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "[config.DefaultPath] resolving home directory")
	}
	return filepath.Join(home, ".ai-platform", "config.yaml"), nil
}

// Load reads the config file at path and applies environment overrides. A
// missing file is not an error - environment and defaults apply alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "[config.Load] reading %s", path)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "[config.Load] reading environment")
	}
	return &cfg, nil
}

// Save writes the config as yaml to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "[Config.Save] encoding config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrapf(err, "[Config.Save] creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "[Config.Save] writing %s", path)
	}
	return nil
}
