package utils

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("verbose")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	config := DefaultConfig()
	config.LogLevel = "warn"

	logger := NewLogger(&out, config)
	logger.Info("hidden")
	logger.Warn("shown", "generation", 3)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=shown generation=3")
}
