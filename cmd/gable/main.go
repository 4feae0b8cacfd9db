package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gablehq/gable/adapter/cli"
	_ "github.com/gablehq/gable/adapter/cli/brief"
	_ "github.com/gablehq/gable/adapter/cli/contact"
	_ "github.com/gablehq/gable/adapter/cli/deal"
	_ "github.com/gablehq/gable/adapter/cli/inbox"
	_ "github.com/gablehq/gable/adapter/cli/scores"
	"github.com/gablehq/gable/internal/app"
	"github.com/gablehq/gable/pkg/config"
	"github.com/gablehq/gable/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(&cli.App{
		RankInboxHandler:         container.RankInboxHandler,
		MorningBriefHandler:      container.MorningBriefHandler,
		ContactEngagementHandler: container.ContactEngagementHandler,
		AssessDealRiskHandler:    container.AssessDealRiskHandler,
		ListScoresHandler:        container.ListScoresHandler,
		RecalculateScoresHandler: container.RecalculateScoresHandler,
		CurrentWorkspaceID:       container.WorkspaceID,
		BriefLimit:               cfg.BriefLimit,
	})

	cli.Execute()
}
