package event

import (
	"fmt"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/events/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var qrcodeCmd = &cobra.Command{
	Use:   "qrcode [event-id]",
	Short: "Replace an event's QR code",
	Long: `Replace an event's QR code with a fresh one.

The old code stops resolving immediately, so printed copies of it
become useless. Use this when a code has leaked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RenewQRCodeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		eventID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID: %w", err)
		}

		ctx := cmd.Context()
		result, err := app.RenewQRCodeHandler.Handle(ctx, commands.RenewQRCodeCommand{EventID: eventID})
		if err != nil {
			return fmt.Errorf("failed to renew QR code: %w", err)
		}

		fmt.Printf("QR code renewed: %s\n", result.QRCode)
		return nil
	},
}
