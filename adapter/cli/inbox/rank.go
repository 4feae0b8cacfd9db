package inbox

import (
	"fmt"
	"strings"

	"github.com/gablehq/gable/adapter/cli"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank inbox threads by priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RankInboxHandler == nil {
			fmt.Println("Inbox commands require an initialized workspace.")
			return nil
		}

		threads, err := app.RankInboxHandler.Handle(cmd.Context(), queries.RankInboxQuery{
			WorkspaceID: app.CurrentWorkspaceID,
		})
		if err != nil {
			return fmt.Errorf("failed to rank inbox: %w", err)
		}

		if len(threads) == 0 {
			fmt.Println("No threads found.")
			return nil
		}

		for i, thread := range threads {
			overdue := ""
			if thread.IsOverdue {
				overdue = " OVERDUE"
			}
			fmt.Printf("%2d. [%5.1f]%s %s\n", i+1, thread.Score, overdue, thread.Subject)
			fmt.Printf("    From: %s (%s, risk %s)\n", thread.Participant, thread.Classification, thread.Risk)
			fmt.Printf("    Factors: risk=%.0f age=%.0f class=%.0f  Last message: %s\n",
				thread.RiskFactor, thread.AgeFactor, thread.ClassificationFactor, thread.LastMessageAt)
			fmt.Println(strings.Repeat("-", 60))
		}

		return nil
	},
}
