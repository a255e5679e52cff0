package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config captures process-level settings for the passport demo driver.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"PASSPORT_LOG_LEVEL" envDefault:"info"`
	// LogFormat is text or json.
	LogFormat string `env:"PASSPORT_LOG_FORMAT" envDefault:"text"`
	// AuditBuffer > 0 makes audit publishing asynchronous with that queue size.
	AuditBuffer int `env:"PASSPORT_AUDIT_BUFFER" envDefault:"0"`
	// MetricsDump prints gathered metrics when the driver finishes.
	MetricsDump bool `env:"PASSPORT_METRICS_DUMP" envDefault:"false"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.LogFormat)
	}
	if c.AuditBuffer < 0 {
		return fmt.Errorf("audit buffer must not be negative, got %d", c.AuditBuffer)
	}
	return nil
}

// Level parses LogLevel case-insensitively.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
