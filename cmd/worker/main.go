// The worker recalculates workspace scores on a fixed interval so the
// persisted snapshot and cache stay fresh without anyone running the CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gablehq/gable/internal/app"
	"github.com/gablehq/gable/internal/crm/application/commands"
	"github.com/gablehq/gable/pkg/config"
	"github.com/gablehq/gable/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()
	logger.Info("starting gable worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	logger.Info("recalculation loop started",
		"workspace_id", container.WorkspaceID,
		"interval", cfg.RecalcInterval,
	)

	recalculate := func() {
		result, err := container.RecalculateScoresHandler.Handle(ctx, commands.RecalculateScoresCommand{
			WorkspaceID: container.WorkspaceID,
		})
		if err != nil {
			logger.Error("recalculation failed", "error", err)
			return
		}
		logger.Info("recalculation complete",
			"scored", result.ScoredCount,
			"overdue", result.OverdueCount,
		)
	}

	// One pass at startup, then on the ticker.
	recalculate()

	ticker := time.NewTicker(cfg.RecalcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("gable worker stopped")
			return
		case <-ticker.C:
			recalculate()
		}
	}
}
