package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	"github.com/google/uuid"
)

// AttendanceReportQuery aggregates an event's records by status.
type AttendanceReportQuery struct {
	EventID uuid.UUID
}

// AttendanceReportDTO summarizes scan outcomes for an event.
type AttendanceReportDTO struct {
	EventID      uuid.UUID      `json:"event_id"`
	EventName    string         `json:"event_name"`
	TotalRecords int            `json:"total_records"`
	ByStatus     map[string]int `json:"by_status"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// AttendanceReportHandler handles the AttendanceReportQuery.
type AttendanceReportHandler struct {
	eventRepo  eventsDomain.EventRepository
	recordRepo domain.RecordRepository
}

// NewAttendanceReportHandler creates a new AttendanceReportHandler.
func NewAttendanceReportHandler(eventRepo eventsDomain.EventRepository, recordRepo domain.RecordRepository) *AttendanceReportHandler {
	return &AttendanceReportHandler{eventRepo: eventRepo, recordRepo: recordRepo}
}

// Handle executes the AttendanceReportQuery.
func (h *AttendanceReportHandler) Handle(ctx context.Context, query AttendanceReportQuery) (*AttendanceReportDTO, error) {
	event, err := h.eventRepo.FindByID(ctx, query.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	counts, err := h.recordRepo.CountByStatus(ctx, event.ID())
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &AttendanceReportDTO{
		EventID:      event.ID(),
		EventName:    event.Name(),
		TotalRecords: total,
		ByStatus:     counts,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
