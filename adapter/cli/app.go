package cli

import (
	"github.com/gablehq/gable/internal/crm/application/commands"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Query Handlers
	RankInboxHandler         *queries.RankInboxHandler
	MorningBriefHandler      *queries.MorningBriefHandler
	ContactEngagementHandler *queries.ContactEngagementHandler
	AssessDealRiskHandler    *queries.AssessDealRiskHandler
	ListScoresHandler        *queries.ListScoresHandler

	// Command Handlers
	RecalculateScoresHandler *commands.RecalculateScoresHandler

	// CurrentWorkspaceID scopes every command.
	CurrentWorkspaceID uuid.UUID

	// BriefLimit is the configured top-N for the morning brief.
	BriefLimit int
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
