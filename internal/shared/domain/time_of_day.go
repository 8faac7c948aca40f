package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeOfDay is returned for out-of-range clock components.
var ErrInvalidTimeOfDay = errors.New("time of day out of range")

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a clock time within a single calendar day, second resolution.
type TimeOfDay struct {
	seconds int // since midnight
}

// NewTimeOfDay creates a clock time from hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}
	return TimeOfDay{seconds: hour*3600 + minute*60}, nil
}

// TimeOfDayOf extracts the clock time of an instant in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}
}

// ParseTimeOfDay parses "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

func (t TimeOfDay) Hour() int   { return t.seconds / 3600 }
func (t TimeOfDay) Minute() int { return (t.seconds % 3600) / 60 }
func (t TimeOfDay) Second() int { return t.seconds % 60 }

// String returns the HH:MM representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// AddMinutes shifts the clock time by m minutes, clamped to the same
// calendar day. A shift past midnight in either direction saturates at
// 00:00:00 or 23:59:59 rather than wrapping.
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	s := t.seconds + m*60
	if s < 0 {
		s = 0
	}
	if s > secondsPerDay-1 {
		s = secondsPerDay - 1
	}
	return TimeOfDay{seconds: s}
}

// Before reports whether t is before other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds < other.seconds
}

// After reports whether t is after other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.seconds > other.seconds
}

// On combines the clock time with a calendar date into a UTC instant.
func (t TimeOfDay) On(d Date) time.Time {
	return d.Time().Add(time.Duration(t.seconds) * time.Second)
}

// Equals checks if two clock times are equal.
func (t TimeOfDay) Equals(other ValueObject) bool {
	if otherTime, ok := other.(TimeOfDay); ok {
		return t == otherTime
	}
	return false
}
