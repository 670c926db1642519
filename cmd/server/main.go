// Package main is the entry point for the event booking API server.
//
// main stays minimal: load configuration, build the logger, hand both to
// internal/server and block in Start. Configuration comes from environment
// variables; see internal/config for the full list.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/event-booking/internal/config"
	"github.com/sakif/event-booking/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No configured logger yet.
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()

	srv, err := server.New(ctx, *cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
