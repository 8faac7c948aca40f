package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecurrence_InvalidFrequency(t *testing.T) {
	_, err := domain.NewRecurrence("fortnightly", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
}

func TestRecurrence_Dates_Daily(t *testing.T) {
	rec, err := domain.NewRecurrence(domain.FrequencyDaily, nil)
	require.NoError(t, err)

	dates := rec.Dates(
		sharedDomain.NewDate(2024, time.October, 1),
		sharedDomain.NewDate(2024, time.October, 4),
	)
	require.Len(t, dates, 4)
	assert.Equal(t, "2024-10-01", dates[0].String())
	assert.Equal(t, "2024-10-04", dates[3].String())
}

func TestRecurrence_Dates_WeekdaysOnly(t *testing.T) {
	rec, err := domain.NewRecurrence(domain.FrequencyWeekly, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	})
	require.NoError(t, err)

	// Mon 2024-09-30 through Sun 2024-10-13: two full work weeks.
	dates := rec.Dates(
		sharedDomain.NewDate(2024, time.September, 30),
		sharedDomain.NewDate(2024, time.October, 13),
	)
	require.Len(t, dates, 10)
	for _, d := range dates {
		assert.False(t, d.IsWeekend(), "unexpected weekend session on %s", d)
	}
}

func TestRecurrence_Dates_Biweekly(t *testing.T) {
	rec, err := domain.NewRecurrence(domain.FrequencyBiweekly, []time.Weekday{time.Monday})
	require.NoError(t, err)

	dates := rec.Dates(
		sharedDomain.NewDate(2024, time.September, 30), // a Monday
		sharedDomain.NewDate(2024, time.October, 28),
	)
	require.Len(t, dates, 3)
	assert.Equal(t, "2024-09-30", dates[0].String())
	assert.Equal(t, "2024-10-14", dates[1].String())
	assert.Equal(t, "2024-10-28", dates[2].String())
}

func TestRecurrence_Zero(t *testing.T) {
	var rec domain.Recurrence
	assert.True(t, rec.IsZero())
	assert.Nil(t, rec.Dates(
		sharedDomain.NewDate(2024, time.October, 1),
		sharedDomain.NewDate(2024, time.October, 5),
	))
}
