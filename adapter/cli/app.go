package cli

import (
	"net/http"

	attendanceCommands "github.com/felixgeelhaar/turnout/internal/attendance/application/commands"
	attendanceQueries "github.com/felixgeelhaar/turnout/internal/attendance/application/queries"
	attendeeCommands "github.com/felixgeelhaar/turnout/internal/attendees/application/commands"
	attendeeQueries "github.com/felixgeelhaar/turnout/internal/attendees/application/queries"
	eventCommands "github.com/felixgeelhaar/turnout/internal/events/application/commands"
	eventQueries "github.com/felixgeelhaar/turnout/internal/events/application/queries"
	"github.com/felixgeelhaar/turnout/internal/events/infrastructure/cache"
)

// App holds the application handlers the CLI commands dispatch to.
type App struct {
	// Event handlers
	CreateEventHandler     *eventCommands.CreateEventHandler
	DeactivateEventHandler *eventCommands.DeactivateEventHandler
	RenewQRCodeHandler     *eventCommands.RenewQRCodeHandler
	ListEventsHandler      *eventQueries.ListEventsHandler
	EventLookup            *cache.CachedEventLookup

	// Attendee handlers
	RegisterAttendeeHandler *attendeeCommands.RegisterAttendeeHandler
	ImportAttendeesHandler  *attendeeCommands.ImportAttendeesHandler
	ValidateAttendeeHandler *attendeeQueries.ValidateAttendeeHandler
	ListAttendeesHandler    *attendeeQueries.ListAttendeesHandler

	// Attendance handlers
	RecordScanHandler        *attendanceCommands.RecordScanHandler
	CreateCheckpointHandler  *attendanceCommands.CreateCheckpointHandler
	ListCheckpointsHandler   *attendanceQueries.ListCheckpointsHandler
	ReportHandler            *attendanceQueries.AttendanceReportHandler
	OccurrenceRecordsHandler *attendanceQueries.ListOccurrenceRecordsHandler
	AttendeeRecordsHandler   *attendanceQueries.ListAttendeeRecordsHandler

	// Serve wiring
	HealthHandler http.Handler
	ListenAddr    string
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
