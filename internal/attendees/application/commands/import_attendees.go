package commands

import (
	"context"
)

// ImportRow is one line of a bulk attendee import.
type ImportRow struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ImportAttendeesCommand registers many attendees in one pass. Rows that
// fail validation are reported and skipped; the rest are committed.
type ImportAttendeesCommand struct {
	Rows []ImportRow
}

// ImportFailure records why one row was skipped.
type ImportFailure struct {
	Row   int
	Error string
}

// ImportAttendeesResult summarizes a bulk import.
type ImportAttendeesResult struct {
	Imported    int
	AttendeeIDs []string
	Failures    []ImportFailure
}

// ImportAttendeesHandler handles the ImportAttendeesCommand.
type ImportAttendeesHandler struct {
	register *RegisterAttendeeHandler
}

// NewImportAttendeesHandler creates a new ImportAttendeesHandler.
func NewImportAttendeesHandler(register *RegisterAttendeeHandler) *ImportAttendeesHandler {
	return &ImportAttendeesHandler{register: register}
}

// Handle executes the ImportAttendeesCommand. Each row is its own unit of
// work so one bad row cannot poison the batch.
func (h *ImportAttendeesHandler) Handle(ctx context.Context, cmd ImportAttendeesCommand) (*ImportAttendeesResult, error) {
	result := &ImportAttendeesResult{}
	for i, row := range cmd.Rows {
		res, err := h.register.Handle(ctx, RegisterAttendeeCommand{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
		})
		if err != nil {
			result.Failures = append(result.Failures, ImportFailure{Row: i + 1, Error: err.Error()})
			continue
		}
		result.Imported++
		result.AttendeeIDs = append(result.AttendeeIDs, res.AttendeeID)
	}
	return result, nil
}
