package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the diagnostic logger. An invalid level falls back to warn.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.ToLower(cfg.LogFormat) == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
