package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/felixgeelhaar/turnout/adapter/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server that check-in stations and kiosks talk to.

The server exposes scan, event, attendee, and checkpoint endpoints plus
a health endpoint, and shuts down when the process receives SIGINT or
SIGTERM.

Examples:
  turnout serve
  turnout serve --addr 0.0.0.0:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RecordScanHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		handler := api.NewHandler(api.HandlerConfig{
			RecordScan:        app.RecordScanHandler,
			CreateCheckpoint:  app.CreateCheckpointHandler,
			ListCheckpoints:   app.ListCheckpointsHandler,
			Report:            app.ReportHandler,
			OccurrenceRecords: app.OccurrenceRecordsHandler,
			AttendeeRecords:   app.AttendeeRecordsHandler,
			CreateEvent:       app.CreateEventHandler,
			DeactivateEvent:   app.DeactivateEventHandler,
			RenewQRCode:       app.RenewQRCodeHandler,
			ListEvents:        app.ListEventsHandler,
			EventLookup:       app.EventLookup,
			RegisterAttendee:  app.RegisterAttendeeHandler,
			ImportAttendees:   app.ImportAttendeesHandler,
			ValidateAttendee:  app.ValidateAttendeeHandler,
			ListAttendees:     app.ListAttendeesHandler,
			Logger:            logger,
		})

		serverCfg := api.DefaultServerConfig()
		if serveAddr != "" {
			serverCfg.Addr = serveAddr
		} else if app.ListenAddr != "" {
			serverCfg.Addr = app.ListenAddr
		}

		server := api.NewServer(serverCfg, handler, app.HealthHandler, logger)

		ctx := cmd.Context()
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()
		fmt.Printf("Listening on %s\n", serverCfg.Addr)

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}
