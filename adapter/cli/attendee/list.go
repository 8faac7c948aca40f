package attendee

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendees/application/queries"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List attendees",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListAttendeesHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		attendees, err := app.ListAttendeesHandler.Handle(ctx, queries.ListAttendeesQuery{})
		if err != nil {
			return fmt.Errorf("failed to list attendees: %w", err)
		}

		if len(attendees) == 0 {
			fmt.Println("No attendees found.")
			return nil
		}

		fmt.Printf("Attendees (%d):\n", len(attendees))
		fmt.Println(strings.Repeat("-", 60))

		for _, a := range attendees {
			marker := ""
			if !a.IsActive {
				marker = " (inactive)"
			}
			fmt.Printf("%s  %s%s\n", a.AttendeeID, a.FullName, marker)
			if a.Email != "" {
				fmt.Printf("   Email: %s\n", a.Email)
			}
			if a.Phone != "" {
				fmt.Printf("   Phone: %s\n", a.Phone)
			}
		}

		return nil
	},
}
