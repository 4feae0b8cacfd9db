package contact

import (
	"fmt"

	"github.com/gablehq/gable/adapter/cli"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var engagementCmd = &cobra.Command{
	Use:   "engagement <contact-id>",
	Short: "Show a contact's engagement score, momentum, and next actions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ContactEngagementHandler == nil {
			fmt.Println("Contact commands require an initialized workspace.")
			return nil
		}

		contactID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid contact id %q: %w", args[0], err)
		}

		result, err := app.ContactEngagementHandler.Handle(cmd.Context(), queries.ContactEngagementQuery{
			WorkspaceID: app.CurrentWorkspaceID,
			ContactID:   contactID,
		})
		if err != nil {
			return fmt.Errorf("failed to score engagement: %w", err)
		}

		status := "behind target"
		if result.IsOnTrack {
			status = "on track"
		}

		fmt.Printf("%s (%s, stage %s)\n", result.Name, result.Role, result.Stage)
		fmt.Printf("  Engagement: %.0f/100 (target %.0f, %s)\n", result.Score, result.AdjustedTarget, status)
		fmt.Printf("  Momentum: %+d%% (expected: %s, %s)\n", result.Momentum, result.MomentumExpectation, result.ContextLabel)
		if len(result.Tips) > 0 {
			fmt.Println("  Next actions:")
			for _, tip := range result.Tips {
				fmt.Printf("    - %s\n", tip)
			}
		}

		return nil
	},
}
