package domain

import (
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/teambition/rrule-go"
)

// ErrInvalidFrequency is returned for an unknown recurrence frequency.
var ErrInvalidFrequency = errors.New("invalid recurrence frequency")

// Frequency is the cadence at which a recurring event holds sessions.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// IsValid returns true for a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Recurrence describes the session cadence of a recurring event. The zero
// value means "no recurrence" and is only valid for non-recurring events.
type Recurrence struct {
	frequency Frequency
	weekdays  []time.Weekday // optional restriction, e.g. Mon/Wed/Fri
}

// NewRecurrence creates a recurrence rule.
func NewRecurrence(frequency Frequency, weekdays []time.Weekday) (Recurrence, error) {
	if !frequency.IsValid() {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, frequency)
	}
	return Recurrence{frequency: frequency, weekdays: weekdays}, nil
}

func (r Recurrence) Frequency() Frequency     { return r.frequency }
func (r Recurrence) Weekdays() []time.Weekday { return r.weekdays }

// IsZero reports whether no recurrence is set.
func (r Recurrence) IsZero() bool {
	return r.frequency == ""
}

// Dates expands the rule to the session dates within [from, until].
func (r Recurrence) Dates(from, until sharedDomain.Date) []sharedDomain.Date {
	if r.IsZero() {
		return nil
	}

	opt := rrule.ROption{
		Dtstart:  from.Time(),
		Until:    until.Time(),
		Interval: 1,
	}

	switch r.frequency {
	case FrequencyDaily:
		opt.Freq = rrule.DAILY
	case FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
	case FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
	}

	for _, wd := range r.weekdays {
		opt.Byweekday = append(opt.Byweekday, rruleWeekday(wd))
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		// Options are validated at construction; an error here means a
		// zero date range, which has no occurrences.
		return nil
	}

	times := rule.All()
	dates := make([]sharedDomain.Date, 0, len(times))
	for _, t := range times {
		dates = append(dates, sharedDomain.DateOf(t))
	}
	return dates
}

func rruleWeekday(wd time.Weekday) rrule.Weekday {
	switch wd {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}
