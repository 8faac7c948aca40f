package domain

import (
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
)

// AttendeeRegisteredKey is the routing key for attendee registrations.
const AttendeeRegisteredKey = "attendees.attendee.registered"

const aggregateTypeAttendee = "Attendee"

// AttendeeRegistered is emitted when an attendee is registered.
type AttendeeRegistered struct {
	sharedDomain.BaseEvent
	AttendeeID string `json:"attendee_id"`
	FullName   string `json:"full_name"`
}

// NewAttendeeRegistered creates an AttendeeRegistered event.
func NewAttendeeRegistered(a *Attendee) *AttendeeRegistered {
	return &AttendeeRegistered{
		BaseEvent:  sharedDomain.NewBaseEvent(a.ID(), aggregateTypeAttendee, AttendeeRegisteredKey),
		AttendeeID: a.AttendeeID(),
		FullName:   a.FullName(),
	}
}
