package attendee

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	attendanceQueries "github.com/felixgeelhaar/turnout/internal/attendance/application/queries"
	"github.com/felixgeelhaar/turnout/internal/attendees/application/queries"
	"github.com/spf13/cobra"
)

var recordsLimit int

var recordsCmd = &cobra.Command{
	Use:   "records [attendee-id]",
	Short: "Show an attendee's recent scans",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AttendeeRecordsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		attendee, err := app.ValidateAttendeeHandler.Handle(ctx, queries.ValidateAttendeeQuery{AttendeeID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to resolve attendee: %w", err)
		}

		records, err := app.AttendeeRecordsHandler.Handle(ctx, attendanceQueries.ListAttendeeRecordsQuery{
			AttendeeID: attendee.ID,
			Limit:      recordsLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		if len(records) == 0 {
			fmt.Printf("No records for %s.\n", attendee.FullName)
			return nil
		}

		fmt.Printf("Records for %s (%d):\n", attendee.FullName, len(records))
		for _, r := range records {
			fmt.Printf("  %s  %-10s %s\n",
				r.RecordedAt.Format(time.RFC3339), r.Status, r.Date)
		}

		return nil
	},
}

func init() {
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 20, "maximum records to show")
}
