package event

import (
	"fmt"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/events/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [qr-code]",
	Short: "Show the event behind a QR code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EventLookup == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		event, err := app.EventLookup.Handle(ctx, queries.GetEventByQRCodeQuery{QRCode: args[0]})
		if err != nil {
			return fmt.Errorf("failed to look up event: %w", err)
		}

		fmt.Printf("%s (%s)\n", event.Name, event.Type)
		fmt.Printf("  ID: %s\n", event.ID)
		fmt.Printf("  QR: %s\n", event.QRCode)
		if event.EndDate != "" {
			fmt.Printf("  Dates: %s to %s (%d days)\n", event.Date, event.EndDate, event.DurationDays)
		} else {
			fmt.Printf("  Date: %s\n", event.Date)
		}
		fmt.Printf("  Hours: %s-%s\n", event.StartTime, event.EndTime)
		if event.Location != "" {
			fmt.Printf("  Location: %s\n", event.Location)
		}
		if !event.IsActive {
			fmt.Println("  Status: inactive")
		}

		if len(event.Sessions) > 0 {
			fmt.Printf("\nSessions (%d):\n", len(event.Sessions))
			for _, s := range event.Sessions {
				marker := ""
				if !s.IsActive {
					marker = " (inactive)"
				}
				fmt.Printf("  day %d: %s %s-%s  QR %s%s\n",
					s.Number, s.Date, s.StartTime, s.EndTime, s.QRCode, marker)
			}
		}

		return nil
	},
}
