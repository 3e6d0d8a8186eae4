package utils

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// ParseLogLevel maps "debug", "info", "warn" or "error" to a slog level.
// An empty string means info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", level)
}

// NewLogger returns a text logger writing to w at the configured level.
func NewLogger(w io.Writer, config Config) *slog.Logger {
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
