package checkpoint

import (
	"github.com/spf13/cobra"
)

// Cmd is the checkpoint command group
var Cmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Manage checkpoints",
	Long:  `Define and inspect the checkpoints scans are classified against.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
}
