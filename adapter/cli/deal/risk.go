package deal

import (
	"fmt"
	"strings"

	"github.com/gablehq/gable/adapter/cli"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Assess deal risk across the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AssessDealRiskHandler == nil {
			fmt.Println("Deal commands require an initialized workspace.")
			return nil
		}

		deals, err := app.AssessDealRiskHandler.Handle(cmd.Context(), queries.AssessDealRiskQuery{
			WorkspaceID: app.CurrentWorkspaceID,
		})
		if err != nil {
			return fmt.Errorf("failed to assess deal risk: %w", err)
		}

		if len(deals) == 0 {
			fmt.Println("No deals in the pipeline.")
			return nil
		}

		for _, deal := range deals {
			fmt.Printf("[%-8s] %5.1f  %s (%s side, stage %s)\n",
				strings.ToUpper(string(deal.Urgency)), deal.Score, deal.Title, deal.Side, deal.Stage)
			fmt.Printf("           %s  Last activity: %s\n", deal.SuggestedAction, deal.LastActivityAt)
		}

		return nil
	},
}
