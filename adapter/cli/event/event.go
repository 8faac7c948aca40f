package event

import (
	"github.com/spf13/cobra"
)

// Cmd is the event command group
var Cmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events",
	Long:  `Create, list, deactivate, and manage attendance events.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(deactivateCmd)
	Cmd.AddCommand(qrcodeCmd)
	Cmd.AddCommand(reportCmd)
}
