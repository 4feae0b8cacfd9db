// Package inbox wires the inbox subcommands into the CLI.
package inbox

import (
	"github.com/gablehq/gable/adapter/cli"
	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Work with the ranked email inbox",
}

func init() {
	inboxCmd.AddCommand(rankCmd)
	cli.AddCommand(inboxCmd)
}
