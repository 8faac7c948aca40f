package domain

import (
	"errors"

	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
)

var (
	ErrEmptyName          = errors.New("event name must not be empty")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrEndDateRequired    = errors.New("multi-day events require an end date")
	ErrEndDateNotAllowed  = errors.New("single events must not have an end date")
	ErrRecurrenceRequired = errors.New("recurring events require a recurrence rule")
	ErrEventInactive      = errors.New("event is not active")
)

// QRCodeLength is the length of generated event and session QR codes.
const QRCodeLength = 12

// EventType distinguishes how an event maps to calendar days.
type EventType string

const (
	// EventTypeSingle is a one-day event with no sessions.
	EventTypeSingle EventType = "single"
	// EventTypeSpan covers consecutive calendar days, one session per day.
	EventTypeSpan EventType = "span"
	// EventTypeRecurring has sessions on a fixed cadence within its range.
	EventTypeRecurring EventType = "recurring"
)

// Event is the aggregate root for an attendable event.
type Event struct {
	sharedDomain.BaseAggregateRoot
	name        string
	description string
	eventType   EventType
	date        sharedDomain.Date
	endDate     sharedDomain.Date // zero for single events
	startTime   sharedDomain.TimeOfDay
	endTime     sharedDomain.TimeOfDay
	location    string
	qrCode      string
	recurrence  Recurrence // zero unless recurring
	active      bool
}

// NewSingleEvent creates a one-day event.
func NewSingleEvent(name, description string, date sharedDomain.Date, startTime, endTime sharedDomain.TimeOfDay, location string) (*Event, error) {
	return newEvent(EventTypeSingle, name, description, date, sharedDomain.Date{}, startTime, endTime, location, Recurrence{})
}

// NewSpanEvent creates a multi-day event with one session per calendar day.
func NewSpanEvent(name, description string, date, endDate sharedDomain.Date, startTime, endTime sharedDomain.TimeOfDay, location string) (*Event, error) {
	return newEvent(EventTypeSpan, name, description, date, endDate, startTime, endTime, location, Recurrence{})
}

// NewRecurringEvent creates an event with sessions on the given cadence.
func NewRecurringEvent(name, description string, date, endDate sharedDomain.Date, startTime, endTime sharedDomain.TimeOfDay, location string, recurrence Recurrence) (*Event, error) {
	if recurrence.IsZero() {
		return nil, ErrRecurrenceRequired
	}
	return newEvent(EventTypeRecurring, name, description, date, endDate, startTime, endTime, location, recurrence)
}

func newEvent(eventType EventType, name, description string, date, endDate sharedDomain.Date, startTime, endTime sharedDomain.TimeOfDay, location string, recurrence Recurrence) (*Event, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}

	switch eventType {
	case EventTypeSingle:
		if !endDate.IsZero() {
			return nil, ErrEndDateNotAllowed
		}
	default:
		if endDate.IsZero() {
			return nil, ErrEndDateRequired
		}
		if endDate.Before(date) {
			return nil, ErrInvalidDateRange
		}
	}

	e := &Event{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		description:       description,
		eventType:         eventType,
		date:              date,
		endDate:           endDate,
		startTime:         startTime,
		endTime:           endTime,
		location:          location,
		qrCode:            sharedDomain.RandomCode(QRCodeLength, sharedDomain.CodeAlphabet),
		recurrence:        recurrence,
		active:            true,
	}
	e.AddDomainEvent(NewEventCreated(e))
	return e, nil
}

// RehydrateEvent recreates an event from persisted state.
func RehydrateEvent(
	base sharedDomain.BaseEntity,
	name, description string,
	eventType EventType,
	date, endDate sharedDomain.Date,
	startTime, endTime sharedDomain.TimeOfDay,
	location, qrCode string,
	recurrence Recurrence,
	active bool,
) *Event {
	return &Event{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(base),
		name:              name,
		description:       description,
		eventType:         eventType,
		date:              date,
		endDate:           endDate,
		startTime:         startTime,
		endTime:           endTime,
		location:          location,
		qrCode:            qrCode,
		recurrence:        recurrence,
		active:            active,
	}
}

func (e *Event) Name() string                      { return e.name }
func (e *Event) Description() string               { return e.description }
func (e *Event) Type() EventType                   { return e.eventType }
func (e *Event) Date() sharedDomain.Date           { return e.date }
func (e *Event) EndDate() sharedDomain.Date        { return e.endDate }
func (e *Event) StartTime() sharedDomain.TimeOfDay { return e.startTime }
func (e *Event) EndTime() sharedDomain.TimeOfDay   { return e.endTime }
func (e *Event) Location() string                  { return e.location }
func (e *Event) QRCode() string                    { return e.qrCode }
func (e *Event) Recurrence() Recurrence            { return e.recurrence }
func (e *Event) IsActive() bool                    { return e.active }

// IsMultiDay reports whether the event has per-day sessions.
func (e *Event) IsMultiDay() bool {
	return e.eventType != EventTypeSingle
}

// DurationDays returns the number of calendar days the event covers.
func (e *Event) DurationDays() int {
	if e.endDate.IsZero() {
		return 1
	}
	return e.date.DaysUntil(e.endDate) + 1
}

// SessionDates returns the calendar dates on which sessions exist: every
// day in range for span events, rule dates for recurring events, and the
// event date alone for single events.
func (e *Event) SessionDates() []sharedDomain.Date {
	switch e.eventType {
	case EventTypeSingle:
		return []sharedDomain.Date{e.date}
	case EventTypeSpan:
		dates := make([]sharedDomain.Date, 0, e.DurationDays())
		for d := e.date; !d.After(e.endDate); d = d.AddDays(1) {
			dates = append(dates, d)
		}
		return dates
	default:
		return e.recurrence.Dates(e.date, e.endDate)
	}
}

// GenerateSessions pre-generates the session entities for a multi-day
// event, numbered densely from 1 in date order. Single events have no
// sessions; attendance attaches to the event itself.
func (e *Event) GenerateSessions() []*EventSession {
	if !e.IsMultiDay() {
		return nil
	}
	dates := e.SessionDates()
	sessions := make([]*EventSession, 0, len(dates))
	for i, d := range dates {
		sessions = append(sessions, newEventSession(e.ID(), d, i+1, e.startTime, e.endTime, e.location))
	}
	return sessions
}

// Deactivate takes the event out of the scannable set.
func (e *Event) Deactivate() {
	e.active = false
	e.Touch()
}

// Activate returns the event to the scannable set.
func (e *Event) Activate() {
	e.active = true
	e.Touch()
}

// RenewQRCode replaces the event's QR code, invalidating printed copies.
func (e *Event) RenewQRCode() string {
	e.qrCode = sharedDomain.RandomCode(QRCodeLength, sharedDomain.CodeAlphabet)
	e.Touch()
	return e.qrCode
}
