package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-gol/ctxlog"
	"github.com/sheikhrachel/go-gol/utils"
)

const defaultConfigPath = "config.json"

func main() {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Log config problems with the default level until the file is read.
	logger := utils.NewLogger(os.Stderr, utils.DefaultConfig())
	config := loadConfig(ctxlog.WithLogger(ctx, logger), configPath)

	logger = utils.NewLogger(os.Stderr, config)
	ctx = ctxlog.WithLogger(ctx, logger)

	if err := run(ctx, os.Stdout, config); err != nil {
		logger.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}
