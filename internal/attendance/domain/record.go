package domain

import (
	"errors"
	"time"

	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	// ErrDuplicateAttendance means the attendee already has a record for
	// this checkpoint and occurrence.
	ErrDuplicateAttendance = errors.New("attendance already recorded")
	// ErrCheckpointNotApplicable means the checkpoint is not in effect on
	// the scanned date.
	ErrCheckpointNotApplicable = errors.New("checkpoint does not apply on this date")
	// ErrCheckpointMismatch means the checkpoint belongs to a different
	// event or session than the one scanned.
	ErrCheckpointMismatch = errors.New("checkpoint does not belong to this occurrence")
)

// GeoFix is an optional GPS position captured at scan time.
type GeoFix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // meters
}

// ScanMetadata carries the device context a scan arrived with. All
// fields are optional.
type ScanMetadata struct {
	DeviceFingerprint string
	IPAddress         string
	UserAgent         string
	Location          *GeoFix
}

// AttendanceRecord is one attendee's scan against one occurrence,
// optionally tied to a checkpoint. Checkpoint records carry a timing
// outcome; plain occurrence records just mark presence.
type AttendanceRecord struct {
	sharedDomain.BaseAggregateRoot
	attendeeID   uuid.UUID
	occurrence   eventsDomain.OccurrenceRef
	checkpointID *uuid.UUID
	recordedAt   time.Time
	status       string
	outcome      Outcome
	metadata     ScanMetadata
}

// NewCheckpointAttendance records a scan against a checkpoint, classifying
// it against the checkpoint's window at the given instant.
func NewCheckpointAttendance(
	attendeeID uuid.UUID,
	checkpoint *Checkpoint,
	occ eventsDomain.OccurrenceRef,
	at time.Time,
	metadata ScanMetadata,
) *AttendanceRecord {
	outcome := checkpoint.Evaluate(at)
	checkpointID := checkpoint.ID()
	r := &AttendanceRecord{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		attendeeID:        attendeeID,
		occurrence:        occ,
		checkpointID:      &checkpointID,
		recordedAt:        at.UTC(),
		status:            outcome.Status(),
		outcome:           outcome,
		metadata:          metadata,
	}
	r.AddDomainEvent(NewAttendanceRecorded(r))
	return r
}

// NewOccurrenceAttendance records plain presence at an occurrence, with
// no checkpoint and no timing classification.
func NewOccurrenceAttendance(
	attendeeID uuid.UUID,
	occ eventsDomain.OccurrenceRef,
	at time.Time,
	metadata ScanMetadata,
) *AttendanceRecord {
	r := &AttendanceRecord{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		attendeeID:        attendeeID,
		occurrence:        occ,
		recordedAt:        at.UTC(),
		status:            StatusAttended,
		metadata:          metadata,
	}
	r.AddDomainEvent(NewAttendanceRecorded(r))
	return r
}

// RehydrateAttendanceRecord recreates a record from persisted state.
func RehydrateAttendanceRecord(
	base sharedDomain.BaseEntity,
	attendeeID uuid.UUID,
	occ eventsDomain.OccurrenceRef,
	checkpointID *uuid.UUID,
	recordedAt time.Time,
	status string,
	metadata ScanMetadata,
) *AttendanceRecord {
	return &AttendanceRecord{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(base),
		attendeeID:        attendeeID,
		occurrence:        occ,
		checkpointID:      checkpointID,
		recordedAt:        recordedAt,
		status:            status,
		outcome: Outcome{
			OnTime: status == StatusOnTime,
			Late:   status == StatusLate,
		},
		metadata: metadata,
	}
}

func (r *AttendanceRecord) AttendeeID() uuid.UUID                  { return r.attendeeID }
func (r *AttendanceRecord) Occurrence() eventsDomain.OccurrenceRef { return r.occurrence }
func (r *AttendanceRecord) CheckpointID() *uuid.UUID               { return r.checkpointID }
func (r *AttendanceRecord) RecordedAt() time.Time                  { return r.recordedAt }
func (r *AttendanceRecord) Status() string                         { return r.status }
func (r *AttendanceRecord) Outcome() Outcome                       { return r.outcome }
func (r *AttendanceRecord) Metadata() ScanMetadata                 { return r.metadata }

// IsCheckpointRecord reports whether the record is tied to a checkpoint.
func (r *AttendanceRecord) IsCheckpointRecord() bool {
	return r.checkpointID != nil
}
