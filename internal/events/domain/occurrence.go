package domain

import (
	"errors"
	"fmt"

	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	// ErrDateOutOfRange means the target date is outside the event's range.
	ErrDateOutOfRange = errors.New("date is outside the event's range")
	// ErrOccurrenceNotFound means the date is in range but no session exists
	// on it (recurring cadences skip days).
	ErrOccurrenceNotFound = errors.New("no session exists on this date")
)

// OccurrenceKind says whether an occurrence is the event itself or one of
// its sessions.
type OccurrenceKind string

const (
	// OccurrenceEvent is a single event's sole occurrence.
	OccurrenceEvent OccurrenceKind = "event"
	// OccurrenceSession is one day of a multi-day event.
	OccurrenceSession OccurrenceKind = "session"
)

// OccurrenceRef identifies the concrete calendar-day instance a scan
// applies to: the event itself for single events, a session otherwise.
// It is derived, never stored.
type OccurrenceRef struct {
	kind OccurrenceKind
	id   uuid.UUID // event ID or session ID, per kind
	date sharedDomain.Date
}

// EventOccurrence references a single event's own occurrence.
func EventOccurrence(eventID uuid.UUID, date sharedDomain.Date) OccurrenceRef {
	return OccurrenceRef{kind: OccurrenceEvent, id: eventID, date: date}
}

// SessionOccurrence references one session day of a multi-day event.
func SessionOccurrence(sessionID uuid.UUID, date sharedDomain.Date) OccurrenceRef {
	return OccurrenceRef{kind: OccurrenceSession, id: sessionID, date: date}
}

func (o OccurrenceRef) Kind() OccurrenceKind    { return o.kind }
func (o OccurrenceRef) TargetID() uuid.UUID     { return o.id }
func (o OccurrenceRef) Date() sharedDomain.Date { return o.date }

// IsSession reports whether the occurrence is session-backed.
func (o OccurrenceRef) IsSession() bool {
	return o.kind == OccurrenceSession
}

// Key returns a stable identity string for uniqueness checks and logs.
func (o OccurrenceRef) Key() string {
	return fmt.Sprintf("%s:%s:%s", o.kind, o.id, o.date)
}

// ResolveOccurrence maps a target date to the event's concrete occurrence.
// For multi-day events the caller supplies the session found for that date
// (nil when none exists); the event itself cannot know which sessions were
// persisted.
func (e *Event) ResolveOccurrence(targetDate sharedDomain.Date, session *EventSession) (OccurrenceRef, error) {
	if e.eventType == EventTypeSingle {
		if !targetDate.Equals(e.date) {
			return OccurrenceRef{}, fmt.Errorf("%w: %s is a single event on %s, got %s",
				ErrDateOutOfRange, e.name, e.date, targetDate)
		}
		return EventOccurrence(e.ID(), targetDate), nil
	}

	if targetDate.Before(e.date) || targetDate.After(e.endDate) {
		return OccurrenceRef{}, fmt.Errorf("%w: %s runs %s to %s, got %s",
			ErrDateOutOfRange, e.name, e.date, e.endDate, targetDate)
	}

	if session == nil || !session.SessionDate().Equals(targetDate) {
		return OccurrenceRef{}, fmt.Errorf("%w: %s on %s", ErrOccurrenceNotFound, e.name, targetDate)
	}

	return SessionOccurrence(session.ID(), targetDate), nil
}
