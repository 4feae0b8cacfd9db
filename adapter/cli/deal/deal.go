// Package deal wires the deal subcommands into the CLI.
package deal

import (
	"github.com/gablehq/gable/adapter/cli"
	"github.com/spf13/cobra"
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Work with pipeline deals",
}

func init() {
	dealCmd.AddCommand(riskCmd)
	cli.AddCommand(dealCmd)
}
