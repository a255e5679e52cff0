package logger

import (
	"io"
	"log/slog"

	"passport/internal/platform/config"
)

// New returns a structured logger writing to w at the configured level and
// format. Config is assumed validated; an unparseable level falls back to info.
func New(cfg config.Config, w io.Writer) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
