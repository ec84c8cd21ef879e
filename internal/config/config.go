package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/staffdeck/staffdeck/internal/errors"
)

// DefaultTimeout bounds every outbound API call.
const DefaultTimeout = 10 * time.Second

// Config holds client configuration, resolved from (in increasing
// precedence) built-in defaults, the YAML config file, and STAFFDECK_*
// environment variables.
type Config struct {
	// APIURL is the base URL of the HR platform API
	APIURL string `yaml:"api_url"`

	// TimeoutSeconds bounds every outbound request
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// CredentialsFile is where the session token is persisted
	CredentialsFile string `yaml:"credentials_file"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format (text, json)
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:          "http://localhost:5001/api",
		TimeoutSeconds:  int(DefaultTimeout / time.Second),
		CredentialsFile: filepath.Join(homeDir(), ".staffdeck", "credentials.json"),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(homeDir(), ".staffdeck", "config.yaml")
}

// Load resolves configuration from the given file path plus environment.
// A missing config file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	// A .env in the working directory is picked up when present.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("failed to parse config file: %s", path), err).
				WithSuggestion("Check the YAML syntax of the config file")
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return Config{}, errors.Wrap(errors.ErrCodeConfigNotFound,
			fmt.Sprintf("failed to read config file: %s", path), err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STAFFDECK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("STAFFDECK_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("STAFFDECK_CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("STAFFDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STAFFDECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

// Validate checks the resolved configuration
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "api_url must not be empty").
			WithSuggestion("Set api_url in the config file or STAFFDECK_API_URL in the environment")
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("timeout_seconds must be positive, got %d", c.TimeoutSeconds))
	}
	if c.CredentialsFile == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "credentials_file must not be empty")
	}
	return nil
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
