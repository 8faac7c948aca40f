package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOccurrence_SingleEvent(t *testing.T) {
	date := sharedDomain.NewDate(2024, time.October, 1)
	event, err := domain.NewSingleEvent("Day", "", date,
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	ref, err := event.ResolveOccurrence(date, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OccurrenceEvent, ref.Kind())
	assert.Equal(t, event.ID(), ref.TargetID())
	assert.Equal(t, date, ref.Date())
	assert.False(t, ref.IsSession())
}

func TestResolveOccurrence_SingleEvent_WrongDate(t *testing.T) {
	event, err := domain.NewSingleEvent("Day", "",
		sharedDomain.NewDate(2024, time.October, 1),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	_, err = event.ResolveOccurrence(sharedDomain.NewDate(2024, time.October, 2), nil)
	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)
}

func TestResolveOccurrence_SpanEvent(t *testing.T) {
	event, err := domain.NewSpanEvent("Week", "",
		sharedDomain.NewDate(2024, time.October, 1),
		sharedDomain.NewDate(2024, time.October, 5),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	sessions := event.GenerateSessions()
	target := sharedDomain.NewDate(2024, time.October, 3)

	ref, err := event.ResolveOccurrence(target, sessions[2])
	require.NoError(t, err)
	assert.Equal(t, domain.OccurrenceSession, ref.Kind())
	assert.Equal(t, sessions[2].ID(), ref.TargetID())
	assert.Equal(t, target, ref.Date())
	assert.True(t, ref.IsSession())
}

func TestResolveOccurrence_SpanEvent_OutOfRange(t *testing.T) {
	event, err := domain.NewSpanEvent("Week", "",
		sharedDomain.NewDate(2024, time.October, 1),
		sharedDomain.NewDate(2024, time.October, 5),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	_, err = event.ResolveOccurrence(sharedDomain.NewDate(2024, time.October, 10), nil)
	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)

	_, err = event.ResolveOccurrence(sharedDomain.NewDate(2024, time.September, 30), nil)
	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)
}

func TestResolveOccurrence_InRangeWithoutSession(t *testing.T) {
	// Weekday-only recurring event: Saturday is in range but has no session.
	rec, err := domain.NewRecurrence(domain.FrequencyWeekly, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	})
	require.NoError(t, err)

	event, err := domain.NewRecurringEvent("Standup", "",
		sharedDomain.NewDate(2024, time.September, 30), // a Monday
		sharedDomain.NewDate(2024, time.October, 13),
		mustTime(t, 9, 0), mustTime(t, 9, 30), "", rec)
	require.NoError(t, err)

	saturday := sharedDomain.NewDate(2024, time.October, 5)
	_, err = event.ResolveOccurrence(saturday, nil)
	assert.ErrorIs(t, err, domain.ErrOccurrenceNotFound)
}

func TestResolveOccurrence_SessionDateMismatch(t *testing.T) {
	event, err := domain.NewSpanEvent("Week", "",
		sharedDomain.NewDate(2024, time.October, 1),
		sharedDomain.NewDate(2024, time.October, 5),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	sessions := event.GenerateSessions()
	target := sharedDomain.NewDate(2024, time.October, 3)

	// Caller passed the wrong day's session; treated as missing.
	_, err = event.ResolveOccurrence(target, sessions[0])
	assert.ErrorIs(t, err, domain.ErrOccurrenceNotFound)
}

func TestOccurrenceRef_Key(t *testing.T) {
	date := sharedDomain.NewDate(2024, time.October, 1)
	event, err := domain.NewSingleEvent("Day", "", date,
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	ref, err := event.ResolveOccurrence(date, nil)
	require.NoError(t, err)
	assert.Contains(t, ref.Key(), "event:")
	assert.Contains(t, ref.Key(), "2024-10-01")
}
