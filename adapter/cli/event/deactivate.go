package event

import (
	"fmt"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/events/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deactivateCmd = &cobra.Command{
	Use:   "deactivate [event-id]",
	Short: "Deactivate an event",
	Long:  `Deactivate an event so its QR codes stop accepting scans.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeactivateEventHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		ctx := cmd.Context()
		if err := app.DeactivateEventHandler.Handle(ctx, commands.DeactivateEventCommand{EventID: eventID}); err != nil {
			return fmt.Errorf("failed to deactivate event: %w", err)
		}

		fmt.Printf("Event deactivated: %s\n", eventID)
		return nil
	},
}
