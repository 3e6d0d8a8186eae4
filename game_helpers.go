package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/ctxlog"
	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/session"
	"github.com/sheikhrachel/go-gol/utils"
)

// loadConfig reads the config file, falling back to defaults when it is
// missing or unusable.
func loadConfig(ctx context.Context, path string) utils.Config {
	config, err := utils.LoadConfig(path)
	if err != nil {
		logger := ctxlog.FromContext(ctx)
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("Using default configuration", "path", path)
		} else {
			logger.Warn("Using default configuration", "path", path, "error", err)
		}
		return utils.DefaultConfig()
	}
	return config
}

// initializeGame sets up the initial game state
func initializeGame(ctx context.Context, config utils.Config, out io.Writer) (
	*session.Session,
	*model.TerminalRenderer,
	error,
) {
	sess, err := session.New(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	return sess, &model.TerminalRenderer{Out: out}, nil
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, sess *session.Session) {
	var (
		grid    = sess.Grid()
		stats   = sess.Stats()
		living  = grid.CountLivingCells()
		density = float64(living) / float64(grid.GetWidth()*grid.GetHeight()) * 100
	)

	status := "Active"
	if sess.IsStagnant() {
		status = fmt.Sprintf("Stagnant (%d)", sess.StagnantFor())
	}
	if living == 0 {
		status = "Extinct"
	}

	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		sess.Generation(), living, density, status)
	fmt.Fprintf(out, "Births: %d | Deaths: %d | Avg Pop: %.1f | %.1f gen/sec\n",
		stats.LastBirths, stats.LastDeaths, stats.AveragePopulation, stats.GenerationsPerSecond)
	fmt.Fprintln(out)
}

// checkStopConditions determines if the simulation should end
func checkStopConditions(sess *session.Session, config utils.Config) (bool, string) {
	if sess.Grid().CountLivingCells() == 0 {
		return true, "extinction"
	}
	if config.MaxGenerations > 0 && sess.Generation() >= config.MaxGenerations {
		return true, "maximum generations reached"
	}
	if config.StagnationThreshold > 0 && sess.StagnantFor() >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// run seeds the grid from config and advances it once per tick until a
// stop condition holds or ctx is cancelled.
func run(ctx context.Context, out io.Writer, config utils.Config) error {
	logger := ctxlog.FromContext(ctx)

	sess, renderer, err := initializeGame(ctx, config, out)
	if err != nil {
		return errors.Wrap(err, "[run] failed to initialize game")
	}
	logger.Info("Starting simulation",
		slog.Int("width", config.Width),
		slog.Int("height", config.Height),
		slog.Int("alive", sess.Grid().CountLivingCells()),
		slog.Duration("tick", config.TickInterval),
	)
	sess.ToggleMode(ctx)

	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()

	for {
		renderer.Clear()
		displayGameStatus(out, sess)
		renderer.Display(sess.Grid())

		if done, reason := checkStopConditions(sess, config); done {
			logger.Info("Simulation finished", "reason", reason, "generation", sess.Generation())
			return nil
		}

		select {
		case <-ctx.Done():
			stats := sess.Stats()
			logger.Info("Shutting down gracefully",
				"generation", sess.Generation(),
				"runtime", time.Since(stats.StartTime).Round(time.Millisecond),
				"avg_population", stats.AveragePopulation,
			)
			return nil
		case <-ticker.C:
		}

		if _, err = sess.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Shutting down gracefully", "generation", sess.Generation())
				return nil
			}
			return errors.Wrap(err, "[run]")
		}
	}
}
