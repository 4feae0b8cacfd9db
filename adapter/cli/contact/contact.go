// Package contact wires the contact subcommands into the CLI.
package contact

import (
	"github.com/gablehq/gable/adapter/cli"
	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Work with CRM contacts",
}

func init() {
	contactCmd.AddCommand(engagementCmd)
	cli.AddCommand(contactCmd)
}
