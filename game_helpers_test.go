package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-gol/ctxlog"
	"github.com/sheikhrachel/go-gol/session"
	"github.com/sheikhrachel/go-gol/utils"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// emptyConfig is a 3x3 board with no random fill.
func emptyConfig() utils.Config {
	config := utils.DefaultConfig()
	config.Width, config.Height = 3, 3
	config.RandomDensity = 0
	config.TickInterval = time.Millisecond
	return config
}

func blinkerConfig() utils.Config {
	config := emptyConfig()
	config.Alive = []utils.CellConfig{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}}
	return config
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	config := loadConfig(testContext(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, utils.DefaultConfig(), config)
}

func TestLoadConfig_LogsThroughContextLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	config := loadConfig(ctx, path)
	assert.Equal(t, utils.DefaultConfig(), config)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Using default configuration")
	assert.Contains(t, logs.String(), "broken.json")
}

func TestCheckStopConditions(t *testing.T) {
	ctx := testContext()

	t.Run("extinction", func(t *testing.T) {
		config := emptyConfig()
		s, err := session.New(ctx, config)
		require.NoError(t, err)
		done, reason := checkStopConditions(s, config)
		assert.True(t, done)
		assert.Equal(t, "extinction", reason)
	})

	t.Run("default board starts populated", func(t *testing.T) {
		config := utils.DefaultConfig()
		config.Seed = 1
		s, err := session.New(ctx, config)
		require.NoError(t, err)
		done, reason := checkStopConditions(s, config)
		assert.False(t, done, reason)
	})

	t.Run("still active", func(t *testing.T) {
		config := blinkerConfig()
		s, err := session.New(ctx, config)
		require.NoError(t, err)
		done, _ := checkStopConditions(s, config)
		assert.False(t, done)
	})

	t.Run("max generations", func(t *testing.T) {
		config := blinkerConfig()
		config.MaxGenerations = 1
		config.StagnationThreshold = 0
		s, err := session.New(ctx, config)
		require.NoError(t, err)
		s.ToggleMode(ctx)
		_, err = s.Tick(ctx)
		require.NoError(t, err)

		done, reason := checkStopConditions(s, config)
		assert.True(t, done)
		assert.Equal(t, "maximum generations reached", reason)
	})

	t.Run("stagnation", func(t *testing.T) {
		config := blinkerConfig()
		config.MaxGenerations = 0
		config.StagnationThreshold = 2
		s, err := session.New(ctx, config)
		require.NoError(t, err)
		s.ToggleMode(ctx)
		for range 3 {
			_, err = s.Tick(ctx)
			require.NoError(t, err)
		}

		done, reason := checkStopConditions(s, config)
		assert.True(t, done)
		assert.Equal(t, "stagnation detected", reason)
	})
}

func TestRun_StopsOnExtinction(t *testing.T) {
	config := emptyConfig()
	config.Alive = []utils.CellConfig{{Row: 1, Col: 1}}

	var out bytes.Buffer
	require.NoError(t, run(testContext(), &out, config))
	assert.Contains(t, out.String(), "Gen: 0 | Living: 1")
	assert.Contains(t, out.String(), "Gen: 1 | Living: 0")
	assert.Contains(t, out.String(), "Status: Extinct")
}

func TestRun_StopsAtMaxGenerations(t *testing.T) {
	config := blinkerConfig()
	config.MaxGenerations = 3
	config.StagnationThreshold = 0

	var out bytes.Buffer
	require.NoError(t, run(testContext(), &out, config))
	assert.Contains(t, out.String(), "Gen: 3 | Living: 3")
	assert.NotContains(t, out.String(), "Gen: 4")
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	config := blinkerConfig()
	config.TickInterval = time.Hour
	config.MaxGenerations = 0
	config.StagnationThreshold = 0

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, &out, config))
	assert.Contains(t, out.String(), "Gen: 0")
	assert.NotContains(t, out.String(), "Gen: 1")
}

func TestRun_InvalidConfig(t *testing.T) {
	config := utils.DefaultConfig()
	config.Patterns = []utils.PatternConfig{{Name: "glider", Row: 29, Col: 0}}

	err := run(testContext(), io.Discard, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize game")
}
