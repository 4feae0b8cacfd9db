// Package brief provides the morning brief command.
package brief

import (
	"fmt"
	"strings"

	"github.com/gablehq/gable/adapter/cli"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var limit int

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Show the morning brief: top priorities and overdue counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.MorningBriefHandler == nil {
			fmt.Println("The brief requires an initialized workspace.")
			return nil
		}

		effectiveLimit := limit
		if effectiveLimit <= 0 {
			effectiveLimit = app.BriefLimit
		}

		brief, err := app.MorningBriefHandler.Handle(cmd.Context(), queries.MorningBriefQuery{
			WorkspaceID: app.CurrentWorkspaceID,
			Limit:       effectiveLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to build brief: %w", err)
		}

		fmt.Printf("Morning brief: %d threads, %d overdue, average score %.1f\n",
			brief.TotalThreads, brief.OverdueCount, brief.AverageScore)
		fmt.Println(strings.Repeat("=", 60))

		if len(brief.TopThreads) == 0 {
			fmt.Println("Nothing needs attention. Enjoy the quiet.")
			return nil
		}

		for i, thread := range brief.TopThreads {
			overdue := ""
			if thread.IsOverdue {
				overdue = " OVERDUE"
			}
			fmt.Printf("%d. [%5.1f]%s %s - %s\n", i+1, thread.Score, overdue, thread.Subject, thread.Participant)
		}

		return nil
	},
}

func init() {
	briefCmd.Flags().IntVarP(&limit, "limit", "n", 0, "how many threads to show (default from config)")
	cli.AddCommand(briefCmd)
}
