package domain

import (
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// Routing keys for attendance domain events.
const (
	AttendanceRecordedKey   = "attendance.record.created"
	CheckpointCreatedKey    = "attendance.checkpoint.created"
	aggregateTypeRecord     = "AttendanceRecord"
	aggregateTypeCheckpoint = "Checkpoint"
)

// AttendanceRecorded is emitted when a scan is accepted and stored.
type AttendanceRecorded struct {
	sharedDomain.BaseEvent
	AttendeeID     uuid.UUID  `json:"attendee_id"`
	OccurrenceKind string     `json:"occurrence_kind"`
	OccurrenceID   uuid.UUID  `json:"occurrence_id"`
	Date           string     `json:"date"`
	CheckpointID   *uuid.UUID `json:"checkpoint_id,omitempty"`
	Status         string     `json:"status"`
}

// NewAttendanceRecorded creates an AttendanceRecorded event.
func NewAttendanceRecorded(r *AttendanceRecord) *AttendanceRecorded {
	return &AttendanceRecorded{
		BaseEvent:      sharedDomain.NewBaseEvent(r.ID(), aggregateTypeRecord, AttendanceRecordedKey),
		AttendeeID:     r.AttendeeID(),
		OccurrenceKind: string(r.Occurrence().Kind()),
		OccurrenceID:   r.Occurrence().TargetID(),
		Date:           r.Occurrence().Date().String(),
		CheckpointID:   r.CheckpointID(),
		Status:         r.Status(),
	}
}

// CheckpointCreated is emitted when a new checkpoint is defined.
type CheckpointCreated struct {
	sharedDomain.BaseEvent
	OwnerKind    string         `json:"owner_kind"`
	OwnerID      uuid.UUID      `json:"owner_id"`
	Type         CheckpointType `json:"type"`
	Name         string         `json:"name"`
	RequiredTime string         `json:"required_time"`
	GraceMinutes int            `json:"grace_minutes"`
	Code         string         `json:"code"`
}

// NewCheckpointCreated creates a CheckpointCreated event.
func NewCheckpointCreated(c *Checkpoint) *CheckpointCreated {
	return &CheckpointCreated{
		BaseEvent:    sharedDomain.NewBaseEvent(c.ID(), aggregateTypeCheckpoint, CheckpointCreatedKey),
		OwnerKind:    string(c.Owner().Kind()),
		OwnerID:      c.Owner().TargetID(),
		Type:         c.Type(),
		Name:         c.Name(),
		RequiredTime: c.RequiredTime().String(),
		GraceMinutes: c.GraceMinutes(),
		Code:         c.Code(),
	}
}
