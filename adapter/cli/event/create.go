package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/events/application/commands"
	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/spf13/cobra"
)

var (
	eventType   string
	description string
	location    string
	date        string
	endDate     string
	startTime   string
	endTime     string
	frequency   string
	weekdays    []string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new event",
	Long: `Create a new event and generate its QR code.

Single events occupy one calendar day. Multi-day events span
consecutive days and get one session per day, each with its own QR
code. Recurring events generate sessions on a cadence within their
date range.

Examples:
  turnout event create "Sales Training" --date 2026-09-14 --start 09:00 --end 17:00
  turnout event create "Bootcamp" --type span --date 2026-09-14 --end-date 2026-09-18 --start 09:00 --end 17:00
  turnout event create "Weekly Standup" --type recurring --date 2026-09-01 --end-date 2026-12-01 \
    --start 10:00 --end 10:30 --frequency weekly --weekday monday`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateEventHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		create := commands.CreateEventCommand{
			Type:        domain.EventType(eventType),
			Name:        args[0],
			Description: description,
			Location:    location,
			Frequency:   domain.Frequency(frequency),
		}

		var err error
		if create.Date, err = sharedDomain.ParseDate(date); err != nil {
			return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
		}
		if endDate != "" {
			if create.EndDate, err = sharedDomain.ParseDate(endDate); err != nil {
				return fmt.Errorf("invalid --end-date format, use YYYY-MM-DD: %w", err)
			}
		}
		if create.StartTime, err = sharedDomain.ParseTimeOfDay(startTime); err != nil {
			return fmt.Errorf("invalid --start format, use HH:MM: %w", err)
		}
		if create.EndTime, err = sharedDomain.ParseTimeOfDay(endTime); err != nil {
			return fmt.Errorf("invalid --end format, use HH:MM: %w", err)
		}
		if create.Weekdays, err = parseWeekdays(weekdays); err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.CreateEventHandler.Handle(ctx, create)
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		fmt.Printf("Event created: %s\n", result.EventID)
		fmt.Printf("  qr code: %s\n", result.QRCode)
		if result.SessionCount > 0 {
			fmt.Printf("  sessions: %d\n", result.SessionCount)
		}

		return nil
	},
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, nil
	}

	byName := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func init() {
	createCmd.Flags().StringVarP(&eventType, "type", "t", "single", "event type (single, span, recurring)")
	createCmd.Flags().StringVar(&description, "description", "", "event description")
	createCmd.Flags().StringVarP(&location, "location", "l", "", "event location")
	createCmd.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&endDate, "end-date", "", "end date for span and recurring events (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&startTime, "start", "", "start time (HH:MM)")
	createCmd.Flags().StringVar(&endTime, "end", "", "end time (HH:MM)")
	createCmd.Flags().StringVar(&frequency, "frequency", "", "recurrence frequency (daily, weekly, biweekly, monthly)")
	createCmd.Flags().StringSliceVar(&weekdays, "weekday", nil, "weekday for weekly recurrence (repeatable)")
	_ = createCmd.MarkFlagRequired("date")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
}
