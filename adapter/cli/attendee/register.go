package attendee

import (
	"fmt"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendees/application/commands"
	"github.com/spf13/cobra"
)

var (
	email string
	phone string
)

var registerCmd = &cobra.Command{
	Use:   "register [first-name] [last-name]",
	Short: "Register a new attendee",
	Long: `Register a new attendee and assign their attendee ID.

The attendee ID is the short numeric code typed in at check-in
stations.

Examples:
  turnout attendee register Dana Whitfield
  turnout attendee register Dana Whitfield --email dana@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RegisterAttendeeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		register := commands.RegisterAttendeeCommand{
			FirstName: args[0],
			LastName:  args[1],
			Email:     email,
			Phone:     phone,
		}

		ctx := cmd.Context()
		result, err := app.RegisterAttendeeHandler.Handle(ctx, register)
		if err != nil {
			return fmt.Errorf("failed to register attendee: %w", err)
		}

		fmt.Printf("Attendee registered: %s\n", result.ID)
		fmt.Printf("  attendee ID: %s\n", result.AttendeeID)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "attendee email")
	registerCmd.Flags().StringVarP(&phone, "phone", "p", "", "attendee phone")
}
