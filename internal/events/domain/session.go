package domain

import (
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// EventSession is one calendar-day instance of a multi-day event. Sessions
// carry their own QR codes so a day's poster can encode the day directly.
type EventSession struct {
	sharedDomain.BaseEntity
	eventID     uuid.UUID
	sessionDate sharedDomain.Date
	number      int
	startTime   sharedDomain.TimeOfDay
	endTime     sharedDomain.TimeOfDay
	location    string
	qrCode      string
	notes       string
	active      bool
}

func newEventSession(eventID uuid.UUID, sessionDate sharedDomain.Date, number int, startTime, endTime sharedDomain.TimeOfDay, location string) *EventSession {
	return &EventSession{
		BaseEntity:  sharedDomain.NewBaseEntity(),
		eventID:     eventID,
		sessionDate: sessionDate,
		number:      number,
		startTime:   startTime,
		endTime:     endTime,
		location:    location,
		qrCode:      sharedDomain.RandomCode(QRCodeLength, sharedDomain.CodeAlphabet),
		active:      true,
	}
}

// RehydrateEventSession recreates a session from persisted state.
func RehydrateEventSession(
	base sharedDomain.BaseEntity,
	eventID uuid.UUID,
	sessionDate sharedDomain.Date,
	number int,
	startTime, endTime sharedDomain.TimeOfDay,
	location, qrCode, notes string,
	active bool,
) *EventSession {
	return &EventSession{
		BaseEntity:  base,
		eventID:     eventID,
		sessionDate: sessionDate,
		number:      number,
		startTime:   startTime,
		endTime:     endTime,
		location:    location,
		qrCode:      qrCode,
		notes:       notes,
		active:      active,
	}
}

func (s *EventSession) EventID() uuid.UUID                { return s.eventID }
func (s *EventSession) SessionDate() sharedDomain.Date    { return s.sessionDate }
func (s *EventSession) Number() int                       { return s.number }
func (s *EventSession) StartTime() sharedDomain.TimeOfDay { return s.startTime }
func (s *EventSession) EndTime() sharedDomain.TimeOfDay   { return s.endTime }
func (s *EventSession) Location() string                  { return s.location }
func (s *EventSession) QRCode() string                    { return s.qrCode }
func (s *EventSession) Notes() string                     { return s.notes }
func (s *EventSession) IsActive() bool                    { return s.active }

// SetNotes attaches free-form notes to the session.
func (s *EventSession) SetNotes(notes string) {
	s.notes = notes
	s.Touch()
}
