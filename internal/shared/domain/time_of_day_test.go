package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeOfDay(t *testing.T) {
	tod, err := domain.NewTimeOfDay(9, 30)
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "09:30", tod.String())
}

func TestNewTimeOfDay_OutOfRange(t *testing.T) {
	_, err := domain.NewTimeOfDay(24, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)

	_, err = domain.NewTimeOfDay(12, 60)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)

	_, err = domain.NewTimeOfDay(-1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := domain.ParseTimeOfDay("14:05")
	require.NoError(t, err)
	assert.Equal(t, 14, tod.Hour())
	assert.Equal(t, 5, tod.Minute())

	tod, err = domain.ParseTimeOfDay("14:05:33")
	require.NoError(t, err)
	assert.Equal(t, 33, tod.Second())

	_, err = domain.ParseTimeOfDay("2pm")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	nine, _ := domain.NewTimeOfDay(9, 0)

	assert.Equal(t, "09:15", nine.AddMinutes(15).String())
	assert.Equal(t, "08:45", nine.AddMinutes(-15).String())
}

func TestTimeOfDay_AddMinutes_ClampsToDay(t *testing.T) {
	late, _ := domain.NewTimeOfDay(23, 55)
	end := late.AddMinutes(30)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())

	early, _ := domain.NewTimeOfDay(0, 10)
	start := early.AddMinutes(-30)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 0, start.Second())
}

func TestTimeOfDay_Ordering(t *testing.T) {
	a, _ := domain.NewTimeOfDay(8, 45)
	b, _ := domain.NewTimeOfDay(9, 15)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.False(t, a.Before(a))
}

func TestTimeOfDay_On(t *testing.T) {
	tod, _ := domain.NewTimeOfDay(9, 30)
	d := domain.NewDate(2024, time.October, 3)

	instant := tod.On(d)
	assert.Equal(t, time.Date(2024, 10, 3, 9, 30, 0, 0, time.UTC), instant)
}

func TestTimeOfDayOf(t *testing.T) {
	instant := time.Date(2024, 10, 3, 9, 10, 42, 0, time.UTC)
	tod := domain.TimeOfDayOf(instant)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 10, tod.Minute())
	assert.Equal(t, 42, tod.Second())
}
