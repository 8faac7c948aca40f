package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// RecordDTO is the read model for one attendance record.
type RecordDTO struct {
	ID             uuid.UUID  `json:"id"`
	AttendeeID     uuid.UUID  `json:"attendee_id"`
	OccurrenceKind string     `json:"occurrence_kind"`
	OccurrenceID   uuid.UUID  `json:"occurrence_id"`
	Date           string     `json:"date"`
	CheckpointID   *uuid.UUID `json:"checkpoint_id,omitempty"`
	Status         string     `json:"status"`
	RecordedAt     time.Time  `json:"recorded_at"`
	IPAddress      string     `json:"ip_address,omitempty"`
}

func toRecordDTO(r *domain.AttendanceRecord) RecordDTO {
	return RecordDTO{
		ID:             r.ID(),
		AttendeeID:     r.AttendeeID(),
		OccurrenceKind: string(r.Occurrence().Kind()),
		OccurrenceID:   r.Occurrence().TargetID(),
		Date:           r.Occurrence().Date().String(),
		CheckpointID:   r.CheckpointID(),
		Status:         r.Status(),
		RecordedAt:     r.RecordedAt(),
		IPAddress:      r.Metadata().IPAddress,
	}
}

// ListOccurrenceRecordsQuery lists the records for one occurrence.
type ListOccurrenceRecordsQuery struct {
	Kind eventsDomain.OccurrenceKind
	ID   uuid.UUID
	Date sharedDomain.Date
}

// ListOccurrenceRecordsHandler handles the ListOccurrenceRecordsQuery.
type ListOccurrenceRecordsHandler struct {
	recordRepo domain.RecordRepository
}

// NewListOccurrenceRecordsHandler creates a new ListOccurrenceRecordsHandler.
func NewListOccurrenceRecordsHandler(recordRepo domain.RecordRepository) *ListOccurrenceRecordsHandler {
	return &ListOccurrenceRecordsHandler{recordRepo: recordRepo}
}

// Handle executes the ListOccurrenceRecordsQuery.
func (h *ListOccurrenceRecordsHandler) Handle(ctx context.Context, query ListOccurrenceRecordsQuery) ([]RecordDTO, error) {
	var occ eventsDomain.OccurrenceRef
	if query.Kind == eventsDomain.OccurrenceSession {
		occ = eventsDomain.SessionOccurrence(query.ID, query.Date)
	} else {
		occ = eventsDomain.EventOccurrence(query.ID, query.Date)
	}

	records, err := h.recordRepo.ListByOccurrence(ctx, occ)
	if err != nil {
		return nil, err
	}

	dtos := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toRecordDTO(r))
	}
	return dtos, nil
}

// ListAttendeeRecordsQuery lists an attendee's most recent records.
type ListAttendeeRecordsQuery struct {
	AttendeeID uuid.UUID
	Limit      int
}

// ListAttendeeRecordsHandler handles the ListAttendeeRecordsQuery.
type ListAttendeeRecordsHandler struct {
	recordRepo domain.RecordRepository
}

// NewListAttendeeRecordsHandler creates a new ListAttendeeRecordsHandler.
func NewListAttendeeRecordsHandler(recordRepo domain.RecordRepository) *ListAttendeeRecordsHandler {
	return &ListAttendeeRecordsHandler{recordRepo: recordRepo}
}

// Handle executes the ListAttendeeRecordsQuery.
func (h *ListAttendeeRecordsHandler) Handle(ctx context.Context, query ListAttendeeRecordsQuery) ([]RecordDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	records, err := h.recordRepo.ListByAttendee(ctx, query.AttendeeID, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toRecordDTO(r))
	}
	return dtos, nil
}
