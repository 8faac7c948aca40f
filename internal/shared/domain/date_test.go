package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-10-03")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.October, d.Month())
	assert.Equal(t, 3, d.Day())
	assert.Equal(t, "2024-10-03", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := domain.ParseDate("03/10/2024")
	require.Error(t, err)

	_, err = domain.ParseDate("2024-13-40")
	require.Error(t, err)
}

func TestDate_Weekday(t *testing.T) {
	// 2024-10-05 is a Saturday
	sat := domain.NewDate(2024, time.October, 5)
	assert.Equal(t, time.Saturday, sat.Weekday())
	assert.True(t, sat.IsWeekend())

	tue := domain.NewDate(2024, time.October, 1)
	assert.Equal(t, time.Tuesday, tue.Weekday())
	assert.False(t, tue.IsWeekend())
}

func TestDate_AddDays(t *testing.T) {
	d := domain.NewDate(2024, time.October, 30)
	assert.Equal(t, "2024-11-02", d.AddDays(3).String())
	assert.Equal(t, "2024-10-29", d.AddDays(-1).String())
}

func TestDate_Ordering(t *testing.T) {
	a := domain.NewDate(2024, time.October, 1)
	b := domain.NewDate(2024, time.October, 5)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.Equal(t, 4, a.DaysUntil(b))
	assert.Equal(t, -4, b.DaysUntil(a))
}

func TestDate_Equals(t *testing.T) {
	a := domain.NewDate(2024, time.October, 1)
	b := domain.NewDate(2024, time.October, 1)
	c := domain.NewDate(2024, time.October, 2)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestDateOf_UsesInstantLocation(t *testing.T) {
	// 2024-10-01 23:30 UTC is already 2024-10-02 in UTC+2, and the scan's
	// server-side timestamp is what determines the calendar date.
	utc := time.Date(2024, 10, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-10-01", domain.DateOf(utc).String())
}
