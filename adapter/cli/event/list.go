package event

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/events/application/queries"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List active events",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListEventsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		events, err := app.ListEventsHandler.Handle(ctx, queries.ListEventsQuery{})
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No active events.")
			return nil
		}

		fmt.Printf("Events (%d):\n", len(events))
		fmt.Println(strings.Repeat("-", 60))

		for _, e := range events {
			fmt.Printf("%s (%s)\n", e.Name, e.Type)
			fmt.Printf("   ID: %s\n", e.ID.String()[:8])
			fmt.Printf("   QR: %s\n", e.QRCode)
			if e.EndDate != "" {
				fmt.Printf("   Dates: %s to %s (%d days)\n", e.Date, e.EndDate, e.DurationDays)
			} else {
				fmt.Printf("   Date: %s\n", e.Date)
			}
			fmt.Printf("   Hours: %s-%s\n", e.StartTime, e.EndTime)
			if e.Location != "" {
				fmt.Printf("   Location: %s\n", e.Location)
			}
			fmt.Println()
		}

		return nil
	},
}
