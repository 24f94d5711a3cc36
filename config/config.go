package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDatabaseDriver = "sqlite"
	DefaultDatabaseURL    = "quiz-host.db"
	DefaultHTTPAddress    = "127.0.0.1:7420"
)

// Config struct to hold the configuration settings
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	HTTP          HTTPConfig          `yaml:"http"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
	Seed          SeedConfig          `yaml:"seed"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER"`
	// URL is a file path for sqlite and a DSN for postgres.
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// HTTPConfig holds the RPC listener settings. RateLimit and RateBurst budget
// reads per client; WriteRateLimit and WriteRateBurst budget mutating RPCs.
type HTTPConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	RateLimit       float64       `yaml:"rate_limit" env:"HTTP_RATE_LIMIT"`
	RateBurst       int           `yaml:"rate_burst" env:"HTTP_RATE_BURST"`
	WriteRateLimit  float64       `yaml:"write_rate_limit" env:"HTTP_WRITE_RATE_LIMIT"`
	WriteRateBurst  int           `yaml:"write_rate_burst" env:"HTTP_WRITE_RATE_BURST"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// LoggingConfig holds slog handler settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"` // json|text
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
	Environment    string `yaml:"environment" env:"ENV"`
}

// SeedConfig controls the catalogue seed.
type SeedConfig struct {
	// File is a YAML seed; empty selects the embedded default.
	File string `yaml:"file" env:"SEED_FILE"`
	// OnStart seeds an empty catalogue when the server starts.
	OnStart bool `yaml:"on_start" env:"SEED_ON_START"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Driver: DefaultDatabaseDriver, URL: DefaultDatabaseURL},
		HTTP: HTTPConfig{
			Address:         DefaultHTTPAddress,
			RateLimit:       50,
			RateBurst:       100,
			WriteRateLimit:  10,
			WriteRateBurst:  20,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging:       LoggingConfig{Level: "info", Format: "text"},
		Observability: ObservabilityConfig{Environment: "local"},
		Seed:          SeedConfig{OnStart: true},
	}
}

// LoadConfig loads the configuration from a YAML file layered over the
// defaults, then applies environment overrides. A missing file is not an
// error: the defaults and environment are used.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if _, _, err := net.SplitHostPort(c.HTTP.Address); err != nil {
		return fmt.Errorf("http.address %q: %w", c.HTTP.Address, err)
	}
	if c.HTTP.RateLimit <= 0 || c.HTTP.RateBurst <= 0 {
		return errors.New("http.rate_limit and http.rate_burst must be positive")
	}
	if c.HTTP.WriteRateLimit <= 0 || c.HTTP.WriteRateBurst <= 0 {
		return errors.New("http.write_rate_limit and http.write_rate_burst must be positive")
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
