package scores

import (
	"fmt"

	"github.com/gablehq/gable/adapter/cli"
	"github.com/gablehq/gable/internal/crm/application/commands"
	"github.com/spf13/cobra"
)

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Rescore every thread and rebuild the workspace snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecalculateScoresHandler == nil {
			fmt.Println("Score commands require an initialized workspace.")
			return nil
		}

		result, err := app.RecalculateScoresHandler.Handle(cmd.Context(), commands.RecalculateScoresCommand{
			WorkspaceID: app.CurrentWorkspaceID,
		})
		if err != nil {
			return fmt.Errorf("failed to recalculate scores: %w", err)
		}

		fmt.Printf("Recalculated %d scores (%d overdue).\n", result.ScoredCount, result.OverdueCount)
		return nil
	},
}
