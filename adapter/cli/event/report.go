package event

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendance/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [event-id]",
	Short: "Show an event's attendance report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ReportHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		ctx := cmd.Context()
		report, err := app.ReportHandler.Handle(ctx, queries.AttendanceReportQuery{EventID: eventID})
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		fmt.Printf("Attendance report: %s\n", report.EventName)
		fmt.Printf("  total records: %d\n", report.TotalRecords)

		statuses := make([]string, 0, len(report.ByStatus))
		for status := range report.ByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			fmt.Printf("  %-10s %d\n", status, report.ByStatus[status])
		}

		return nil
	},
}
