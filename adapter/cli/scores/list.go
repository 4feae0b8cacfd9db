package scores

import (
	"fmt"

	"github.com/gablehq/gable/adapter/cli"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the persisted score snapshot for the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListScoresHandler == nil {
			fmt.Println("Score commands require an initialized workspace.")
			return nil
		}

		result, err := app.ListScoresHandler.Handle(cmd.Context(), queries.ListScoresQuery{
			WorkspaceID: app.CurrentWorkspaceID,
		})
		if err != nil {
			return fmt.Errorf("failed to list scores: %w", err)
		}

		if len(result.Scores) == 0 {
			fmt.Println("No scores yet. Run 'gable scores recalculate' first.")
			return nil
		}

		source := "database"
		if result.FromCache {
			source = "cache"
		}
		fmt.Printf("Snapshot (%d entries, from %s):\n", len(result.Scores), source)

		for i, score := range result.Scores {
			overdue := ""
			if score.IsOverdue {
				overdue = " OVERDUE"
			}
			fmt.Printf("%2d. [%5.1f]%s %s %s\n", i+1, score.Score, overdue, score.EntityType, score.EntityID)
			fmt.Printf("    Factors: risk=%.0f age=%.0f class=%.0f  Updated: %s\n",
				score.RiskFactor, score.AgeFactor, score.ClassificationFactor, score.UpdatedAt)
		}

		return nil
	},
}
