package domain

import (
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
)

// Attendance statuses as exposed on the wire and in reports.
const (
	StatusOnTime   = "on_time"
	StatusLate     = "late"
	StatusEarly    = "early"
	StatusAttended = "attended"
)

// Window is the span of clock time during which a scan counts as on
// time. Both boundaries are inclusive and clamp to the same calendar
// day: a window never crosses midnight.
type Window struct {
	start sharedDomain.TimeOfDay
	end   sharedDomain.TimeOfDay
}

// NewWindow builds the window around a required time with a symmetric
// grace period in minutes.
func NewWindow(requiredTime sharedDomain.TimeOfDay, graceMinutes int) Window {
	return Window{
		start: requiredTime.AddMinutes(-graceMinutes),
		end:   requiredTime.AddMinutes(graceMinutes),
	}
}

func (w Window) Start() sharedDomain.TimeOfDay { return w.start }
func (w Window) End() sharedDomain.TimeOfDay   { return w.end }

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t sharedDomain.TimeOfDay) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", w.start, w.end)
}

// Outcome classifies a scan against a checkpoint window. Exactly one of
// the three states holds: on time, late, or early (neither flag set).
type Outcome struct {
	OnTime bool
	Late   bool
}

// Status renders the outcome as its wire status.
func (o Outcome) Status() string {
	switch {
	case o.OnTime:
		return StatusOnTime
	case o.Late:
		return StatusLate
	default:
		return StatusEarly
	}
}

// Classify evaluates a scan instant against the window. Scans inside the
// window are on time, scans after it are late, scans before it are early.
func (w Window) Classify(at sharedDomain.TimeOfDay) Outcome {
	if w.Contains(at) {
		return Outcome{OnTime: true}
	}
	if at.After(w.end) {
		return Outcome{Late: true}
	}
	return Outcome{}
}

// Evaluate classifies a scan timestamp against the checkpoint's window.
// Only the clock time matters; the date was validated by occurrence
// resolution.
func (c *Checkpoint) Evaluate(at time.Time) Outcome {
	return c.Window().Classify(sharedDomain.TimeOfDayOf(at))
}
