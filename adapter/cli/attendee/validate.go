package attendee

import (
	"fmt"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendees/application/queries"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [attendee-id]",
	Short: "Validate an attendee ID",
	Long:  `Check that an attendee ID exists and belongs to an active attendee.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ValidateAttendeeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		attendee, err := app.ValidateAttendeeHandler.Handle(ctx, queries.ValidateAttendeeQuery{AttendeeID: args[0]})
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("Valid: %s (%s)\n", attendee.FullName, attendee.AttendeeID)
		return nil
	},
}
