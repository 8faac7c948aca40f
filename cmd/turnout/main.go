package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/adapter/cli/attendee"
	"github.com/felixgeelhaar/turnout/adapter/cli/checkpoint"
	"github.com/felixgeelhaar/turnout/adapter/cli/event"
	"github.com/felixgeelhaar/turnout/internal/app"
	"github.com/felixgeelhaar/turnout/pkg/config"
	"github.com/felixgeelhaar/turnout/pkg/observability"
)

func main() {
	// Setup logger
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = observability.NewLogger(observability.LogConfig{
			Level:       observability.LogLevelDebug,
			Format:      observability.LogFormatText,
			ServiceName: "turnout",
		})
	}
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without database
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Start outbox processor in background (optional in CLI)
		if cfg.OutboxProcessorEnabled {
			go container.OutboxProcessor.Start(ctx)
		} else {
			logger.Info("outbox processor disabled in CLI")
		}

		// Create CLI app with handlers
		cliApp = &cli.App{
			CreateEventHandler:       container.CreateEventHandler,
			DeactivateEventHandler:   container.DeactivateEventHandler,
			RenewQRCodeHandler:       container.RenewQRCodeHandler,
			ListEventsHandler:        container.ListEventsHandler,
			EventLookup:              container.EventLookup,
			RegisterAttendeeHandler:  container.RegisterAttendeeHandler,
			ImportAttendeesHandler:   container.ImportAttendeesHandler,
			ValidateAttendeeHandler:  container.ValidateAttendeeHandler,
			ListAttendeesHandler:     container.ListAttendeesHandler,
			RecordScanHandler:        container.RecordScanHandler,
			CreateCheckpointHandler:  container.CreateCheckpointHandler,
			ListCheckpointsHandler:   container.ListCheckpointsHandler,
			ReportHandler:            container.AttendanceReportHandler,
			OccurrenceRecordsHandler: container.ListOccurrenceRecordsHandler,
			AttendeeRecordsHandler:   container.ListAttendeeRecordsHandler,
			HealthHandler:            container.HealthRegistry.Handler(),
			ListenAddr:               cfg.APIAddr,
		}
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(event.Cmd)
	cli.AddCommand(attendee.Cmd)
	cli.AddCommand(checkpoint.Cmd)

	// Execute CLI
	cli.Execute()
}
