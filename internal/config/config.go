package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quillforge/quill/internal/errors"
)

// DefaultAPIURL is used when neither the config file nor the environment
// provide an endpoint.
const DefaultAPIURL = "http://localhost:8000/api/v1"

// DefaultTimeout bounds every API request unless overridden.
const DefaultTimeout = 30 * time.Second

// Config holds client configuration loaded from ~/.quill/config.yaml
// with environment variable overrides.
type Config struct {
	// APIURL is the base URL of the QuillForge REST API
	APIURL string `yaml:"api_url"`

	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format (text, json)
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Dir returns the quill configuration directory (~/.quill), creating
// nothing. QUILL_HOME overrides the location, which keeps tests hermetic.
func Dir() string {
	if dir := os.Getenv("QUILL_HOME"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a project-local dot directory
		return ".quill"
	}
	return filepath.Join(home, ".quill")
}

// Path returns the config file location inside Dir
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file if present, applies environment overrides, and
// fills defaults. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path())
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, "could not parse config file", err).
				WithSuggestion("Check the YAML syntax in " + Path())
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeConfigRead, "could not read config file", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return cfg, nil
}

// Save writes the configuration to the config file, creating Dir if needed
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, "could not create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "could not encode config", err)
	}

	if err := os.WriteFile(Path(), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, "could not write config file", err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QUILL_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("QUILL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QUILL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("QUILL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}
