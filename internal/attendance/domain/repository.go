package domain

import (
	"context"

	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	"github.com/google/uuid"
)

// CheckpointRepository persists checkpoints.
type CheckpointRepository interface {
	// Save inserts or updates a checkpoint.
	Save(ctx context.Context, checkpoint *Checkpoint) error
	// FindByID returns a checkpoint by ID, or nil when none exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Checkpoint, error)
	// FindByCode returns a checkpoint by its scan code, or nil when none exists.
	FindByCode(ctx context.Context, code string) (*Checkpoint, error)
	// ListByOwner returns the owner's active checkpoints ordered by their
	// configured order.
	ListByOwner(ctx context.Context, owner Owner) ([]*Checkpoint, error)
}

// RecordRepository persists attendance records. Save must surface the
// storage uniqueness constraint as ErrDuplicateAttendance.
type RecordRepository interface {
	// Save inserts a record. Returns ErrDuplicateAttendance when the
	// attendee already has a record for the same checkpoint and occurrence.
	Save(ctx context.Context, record *AttendanceRecord) error
	// FindExisting returns the attendee's record for the given checkpoint
	// (nil checkpointID for plain occurrence attendance) and occurrence,
	// or nil when none exists.
	FindExisting(ctx context.Context, attendeeID uuid.UUID, checkpointID *uuid.UUID, occ eventsDomain.OccurrenceRef) (*AttendanceRecord, error)
	// ListByOccurrence returns all records for an occurrence, newest first.
	ListByOccurrence(ctx context.Context, occ eventsDomain.OccurrenceRef) ([]*AttendanceRecord, error)
	// ListByAttendee returns an attendee's records, newest first.
	ListByAttendee(ctx context.Context, attendeeID uuid.UUID, limit int) ([]*AttendanceRecord, error)
	// CountByStatus aggregates record counts per status for an event's
	// occurrences.
	CountByStatus(ctx context.Context, eventID uuid.UUID) (map[string]int, error)
}
