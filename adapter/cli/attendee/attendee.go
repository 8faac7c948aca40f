package attendee

import (
	"github.com/spf13/cobra"
)

// Cmd is the attendee command group
var Cmd = &cobra.Command{
	Use:   "attendee",
	Short: "Manage attendees",
	Long:  `Register, import, list, and validate attendees.`,
}

func init() {
	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(importCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(recordsCmd)
}
