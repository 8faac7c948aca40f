package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/application/commands"
	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/spf13/cobra"
)

var (
	scanCheckpointCode string
	scanAt             string
	scanDate           string
	scanDevice         string
)

var scanCmd = &cobra.Command{
	Use:   "scan [qr-code] [attendee-id]",
	Short: "Record an attendance scan",
	Long: `Record an attendance scan for an attendee against an event QR code.

With --checkpoint the scan is classified against that checkpoint's
attendance window (on_time, late, or early). Without it the scan marks
plain presence.

Examples:
  turnout scan EVT7K2M9QXWP4AGT 10482
  turnout scan EVT7K2M9QXWP4AGT 10482 --checkpoint CHKR5N8D
  turnout scan EVT7K2M9QXWP4AGT 10482 --at 2026-09-14T09:05:00Z`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RecordScanHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		scan := commands.RecordScanCommand{
			QRCode:         args[0],
			AttendeeID:     args[1],
			CheckpointCode: scanCheckpointCode,
			Metadata: domain.ScanMetadata{
				DeviceFingerprint: scanDevice,
			},
		}

		if scanAt != "" {
			parsed, err := time.Parse(time.RFC3339, scanAt)
			if err != nil {
				return fmt.Errorf("invalid --at format, use RFC 3339: %w", err)
			}
			scan.ScannedAt = parsed
		}
		if scanDate != "" {
			parsed, err := sharedDomain.ParseDate(scanDate)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			scan.TargetDate = parsed
		}

		ctx := cmd.Context()
		result, err := app.RecordScanHandler.Handle(ctx, scan)
		if err != nil {
			return fmt.Errorf("failed to record scan: %w", err)
		}

		fmt.Printf("Scan recorded: %s\n", result.RecordID)
		fmt.Printf("  attendee: %s\n", result.AttendeeName)
		fmt.Printf("  event:    %s\n", result.EventName)
		fmt.Printf("  status:   %s\n", result.Status)
		fmt.Printf("  at:       %s\n", result.RecordedAt.Format(time.RFC3339))

		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanCheckpointCode, "checkpoint", "", "checkpoint code to classify against")
	scanCmd.Flags().StringVar(&scanAt, "at", "", "scan instant (RFC 3339, defaults to now)")
	scanCmd.Flags().StringVar(&scanDate, "date", "", "occurrence date override (YYYY-MM-DD)")
	scanCmd.Flags().StringVar(&scanDevice, "device", "", "device fingerprint")
	rootCmd.AddCommand(scanCmd)
}
