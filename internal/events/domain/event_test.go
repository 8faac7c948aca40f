package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, hour, minute int) sharedDomain.TimeOfDay {
	t.Helper()
	tod, err := sharedDomain.NewTimeOfDay(hour, minute)
	require.NoError(t, err)
	return tod
}

func TestNewSingleEvent(t *testing.T) {
	date := sharedDomain.NewDate(2024, time.October, 1)

	event, err := domain.NewSingleEvent(
		"Tech Conference", "Annual meetup",
		date, mustTime(t, 9, 0), mustTime(t, 17, 0), "Main Hall",
	)

	require.NoError(t, err)
	assert.Equal(t, "Tech Conference", event.Name())
	assert.Equal(t, domain.EventTypeSingle, event.Type())
	assert.Equal(t, date, event.Date())
	assert.True(t, event.EndDate().IsZero())
	assert.Len(t, event.QRCode(), domain.QRCodeLength)
	assert.True(t, event.IsActive())
	assert.False(t, event.IsMultiDay())
	assert.Equal(t, 1, event.DurationDays())
	assert.Len(t, event.DomainEvents(), 1)
}

func TestNewSingleEvent_Validation(t *testing.T) {
	date := sharedDomain.NewDate(2024, time.October, 1)

	_, err := domain.NewSingleEvent("", "", date, mustTime(t, 9, 0), mustTime(t, 17, 0), "Hall")
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = domain.NewSingleEvent("X", "", date, mustTime(t, 17, 0), mustTime(t, 9, 0), "Hall")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestNewSpanEvent(t *testing.T) {
	start := sharedDomain.NewDate(2024, time.October, 1)
	end := sharedDomain.NewDate(2024, time.October, 5)

	event, err := domain.NewSpanEvent(
		"Training Week", "",
		start, end, mustTime(t, 9, 0), mustTime(t, 17, 0), "Room 2",
	)

	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeSpan, event.Type())
	assert.True(t, event.IsMultiDay())
	assert.Equal(t, 5, event.DurationDays())
}

func TestNewSpanEvent_Validation(t *testing.T) {
	start := sharedDomain.NewDate(2024, time.October, 5)
	end := sharedDomain.NewDate(2024, time.October, 1)

	_, err := domain.NewSpanEvent("X", "", start, end, mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = domain.NewSpanEvent("X", "", start, sharedDomain.Date{}, mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	assert.ErrorIs(t, err, domain.ErrEndDateRequired)
}

func TestNewRecurringEvent_RequiresRecurrence(t *testing.T) {
	start := sharedDomain.NewDate(2024, time.October, 1)
	end := sharedDomain.NewDate(2024, time.October, 31)

	_, err := domain.NewRecurringEvent("X", "", start, end,
		mustTime(t, 9, 0), mustTime(t, 17, 0), "", domain.Recurrence{})
	assert.ErrorIs(t, err, domain.ErrRecurrenceRequired)
}

func TestEvent_SessionDates_Span(t *testing.T) {
	start := sharedDomain.NewDate(2024, time.October, 1)
	end := sharedDomain.NewDate(2024, time.October, 5)
	event, err := domain.NewSpanEvent("Week", "", start, end,
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	dates := event.SessionDates()
	require.Len(t, dates, 5)
	assert.Equal(t, "2024-10-01", dates[0].String())
	assert.Equal(t, "2024-10-05", dates[4].String())
}

func TestEvent_GenerateSessions(t *testing.T) {
	start := sharedDomain.NewDate(2024, time.October, 1)
	end := sharedDomain.NewDate(2024, time.October, 3)
	event, err := domain.NewSpanEvent("Week", "", start, end,
		mustTime(t, 9, 0), mustTime(t, 17, 0), "Room 2")
	require.NoError(t, err)

	sessions := event.GenerateSessions()
	require.Len(t, sessions, 3)
	for i, s := range sessions {
		assert.Equal(t, event.ID(), s.EventID())
		assert.Equal(t, i+1, s.Number())
		assert.Equal(t, start.AddDays(i), s.SessionDate())
		assert.Len(t, s.QRCode(), domain.QRCodeLength)
		assert.Equal(t, "Room 2", s.Location())
		assert.True(t, s.IsActive())
	}
}

func TestEvent_GenerateSessions_SingleHasNone(t *testing.T) {
	event, err := domain.NewSingleEvent("Day", "",
		sharedDomain.NewDate(2024, time.October, 1),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	assert.Empty(t, event.GenerateSessions())
}

func TestEvent_RenewQRCode(t *testing.T) {
	event, err := domain.NewSingleEvent("Day", "",
		sharedDomain.NewDate(2024, time.October, 1),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	old := event.QRCode()
	renewed := event.RenewQRCode()
	assert.Len(t, renewed, domain.QRCodeLength)
	assert.NotEqual(t, old, renewed)
	assert.Equal(t, renewed, event.QRCode())
}

func TestEvent_Deactivate(t *testing.T) {
	event, err := domain.NewSingleEvent("Day", "",
		sharedDomain.NewDate(2024, time.October, 1),
		mustTime(t, 9, 0), mustTime(t, 17, 0), "")
	require.NoError(t, err)

	event.Deactivate()
	assert.False(t, event.IsActive())
	event.Activate()
	assert.True(t, event.IsActive())
}
