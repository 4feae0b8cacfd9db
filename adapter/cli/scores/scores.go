// Package scores wires the score maintenance subcommands into the CLI.
package scores

import (
	"github.com/gablehq/gable/adapter/cli"
	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Maintain and inspect the persisted score snapshot",
}

func init() {
	scoresCmd.AddCommand(recalculateCmd)
	scoresCmd.AddCommand(listCmd)
	cli.AddCommand(scoresCmd)
}
