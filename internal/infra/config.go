package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"sadaqah_go/internal/domain"
)

// Request policy. These are fixed and not read from the config file.
const (
	RequestTimeout = 30 * time.Second
	RetryAttempts  = 3
	RetryBaseDelay = 1 * time.Second
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Environment variables that take precedence over the config file.
const (
	EnvAPIHost       = "SADAQAH_API_HOST"
	EnvAPIKey        = "SADAQAH_API_KEY"
	EnvStorageDriver = "SADAQAH_STORAGE_DRIVER"
	EnvLogLevel      = "SADAQAH_LOG_LEVEL"
)

// Config holds every setting of the application.
// After LoadConfig the environment has already been applied on top of the file.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		Host      string `yaml:"host"`
		Key       string `yaml:"key"`
		RateLimit struct {
			PerSecond float64 `yaml:"per_second"`
			Burst     int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"api"`

	Storage struct {
		Driver string `yaml:"driver"`
		// Path overrides the database file location inside the workspace.
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "sadaqah"
	cfg.App.Version = "1.0.0"
	cfg.API.Host = "http://localhost:3000"
	cfg.API.RateLimit.PerSecond = 10
	cfg.API.RateLimit.Burst = 5
	cfg.Storage.Driver = DriverSQLite
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "text"
	return &cfg
}

// LoadConfig reads the config file at path on top of the defaults.
// A missing file is not an error; .env and the environment are enough to run.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("Config file not found, using defaults", slog.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.Any("error", err))
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity and normalises the API host.
func (c *Config) Validate() error {
	host, err := domain.SanitizeURL(c.API.Host)
	if err != nil {
		return fmt.Errorf("api host: %w", err)
	}
	c.API.Host = host

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverSQLite, DriverBolt, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if c.API.RateLimit.PerSecond <= 0 || c.API.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	return nil
}

// overrideWithEnv applies environment variables over file values.
func overrideWithEnv(cfg *Config) {
	if cfg.API.Key != "" {
		slog.Warn("API key found in config file",
			slog.String("recommendation", "set "+EnvAPIKey+" instead"))
	}

	if host := os.Getenv(EnvAPIHost); host != "" {
		cfg.API.Host = host
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.API.Key = key
	}
	if driver := os.Getenv(EnvStorageDriver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
}
