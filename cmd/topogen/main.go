// Package main runs topogen, the synthetic display-topology generator.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/frudas24/convertible-couch/internal/config"
	"github.com/frudas24/convertible-couch/internal/logging"
)

// main loads configuration, builds the logger and executes the command tree.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	var levelVar slog.LevelVar
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("LOG_LEVEL invalid", "error", err)
		os.Exit(1)
	}
	levelVar.Set(level)

	logger := logging.New(os.Stderr, &levelVar, cfg.LogJSON)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(cfg, logger, &levelVar)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("command interrupted", "error", err)
			os.Exit(130)
		}
		logger.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
