package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventsOccurrence(eventID uuid.UUID, date sharedDomain.Date) eventsDomain.OccurrenceRef {
	return eventsDomain.EventOccurrence(eventID, date)
}

func sessionsOccurrence(sessionID uuid.UUID, date sharedDomain.Date) eventsDomain.OccurrenceRef {
	return eventsDomain.SessionOccurrence(sessionID, date)
}

func TestNewCheckpointAttendance(t *testing.T) {
	cp := newEntranceCheckpoint(t, 9, 0, 15)
	attendeeID := uuid.New()
	date := sharedDomain.DateOf(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))
	occ := eventsOccurrence(cp.Owner().TargetID(), date)
	scannedAt := time.Date(2024, 10, 1, 9, 10, 0, 0, time.UTC)

	r := domain.NewCheckpointAttendance(attendeeID, cp, occ, scannedAt, domain.ScanMetadata{
		DeviceFingerprint: "fp-1",
		IPAddress:         "10.0.0.7",
		UserAgent:         "scanner/1.0",
		Location:          &domain.GeoFix{Latitude: 52.52, Longitude: 13.405, Accuracy: 8},
	})

	require.True(t, r.IsCheckpointRecord())
	assert.Equal(t, cp.ID(), *r.CheckpointID())
	assert.Equal(t, attendeeID, r.AttendeeID())
	assert.Equal(t, domain.StatusOnTime, r.Status())
	assert.True(t, r.Outcome().OnTime)
	assert.False(t, r.Outcome().Late)
	assert.Equal(t, scannedAt, r.RecordedAt())
	assert.Equal(t, "fp-1", r.Metadata().DeviceFingerprint)
	require.NotNil(t, r.Metadata().Location)
	assert.InDelta(t, 52.52, r.Metadata().Location.Latitude, 0.001)
	assert.Len(t, r.DomainEvents(), 1)

	recorded, ok := r.DomainEvents()[0].(*domain.AttendanceRecorded)
	require.True(t, ok)
	assert.Equal(t, domain.StatusOnTime, recorded.Status)
	assert.Equal(t, "event", recorded.OccurrenceKind)
}

func TestNewCheckpointAttendance_LateAndEarly(t *testing.T) {
	cp := newEntranceCheckpoint(t, 9, 0, 15)
	date := sharedDomain.DateOf(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))
	occ := eventsOccurrence(cp.Owner().TargetID(), date)

	late := domain.NewCheckpointAttendance(uuid.New(), cp, occ,
		time.Date(2024, 10, 1, 9, 20, 0, 0, time.UTC), domain.ScanMetadata{})
	assert.Equal(t, domain.StatusLate, late.Status())

	early := domain.NewCheckpointAttendance(uuid.New(), cp, occ,
		time.Date(2024, 10, 1, 8, 30, 0, 0, time.UTC), domain.ScanMetadata{})
	assert.Equal(t, domain.StatusEarly, early.Status())
	assert.False(t, early.Outcome().OnTime)
	assert.False(t, early.Outcome().Late)
}

func TestNewOccurrenceAttendance(t *testing.T) {
	attendeeID := uuid.New()
	date := sharedDomain.DateOf(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))
	occ := sessionsOccurrence(uuid.New(), date)
	scannedAt := time.Date(2024, 10, 1, 14, 3, 0, 0, time.UTC)

	r := domain.NewOccurrenceAttendance(attendeeID, occ, scannedAt, domain.ScanMetadata{})

	assert.False(t, r.IsCheckpointRecord())
	assert.Nil(t, r.CheckpointID())
	assert.Equal(t, domain.StatusAttended, r.Status())
	assert.Len(t, r.DomainEvents(), 1)
}

func TestRehydrateAttendanceRecord(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	checkpointID := uuid.New()
	date := sharedDomain.DateOf(now)
	occ := sessionsOccurrence(uuid.New(), date)

	r := domain.RehydrateAttendanceRecord(
		sharedDomain.RehydrateBaseEntity(id, now, now),
		uuid.New(), occ, &checkpointID, now, domain.StatusLate,
		domain.ScanMetadata{IPAddress: "10.0.0.9"},
	)

	assert.Equal(t, id, r.ID())
	assert.Equal(t, domain.StatusLate, r.Status())
	assert.True(t, r.Outcome().Late)
	assert.False(t, r.Outcome().OnTime)
	assert.Empty(t, r.DomainEvents())
}
