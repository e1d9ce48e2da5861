// Payment-ops - mock payment operations backend for agent workflows
package main

import (
	"context"
	"os"

	"github.com/triagehq/paymentops/internal/config"
	"github.com/triagehq/paymentops/internal/logging"
	"github.com/triagehq/paymentops/internal/server"
)

// Build info - set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	logger := logging.New("info", "text")

	logger.Info("starting paymentops",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"env", cfg.Env,
		"retry_success_rate", cfg.RetrySuccessRate,
		"notify_success_rate", cfg.NotifySuccessRate,
	)

	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
