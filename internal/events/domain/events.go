package domain

import (
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// Routing keys for event domain events.
const (
	EventCreatedKey      = "events.event.created"
	EventDeactivatedKey  = "events.event.deactivated"
	SessionsGeneratedKey = "events.sessions.generated"
	aggregateTypeEvent   = "Event"
)

// EventCreated is emitted when a new event is created.
type EventCreated struct {
	sharedDomain.BaseEvent
	Name      string    `json:"name"`
	EventType EventType `json:"event_type"`
	Date      string    `json:"date"`
	EndDate   string    `json:"end_date,omitempty"`
	QRCode    string    `json:"qr_code"`
}

// NewEventCreated creates an EventCreated event.
func NewEventCreated(e *Event) *EventCreated {
	endDate := ""
	if !e.EndDate().IsZero() {
		endDate = e.EndDate().String()
	}
	return &EventCreated{
		BaseEvent: sharedDomain.NewBaseEvent(e.ID(), aggregateTypeEvent, EventCreatedKey),
		Name:      e.Name(),
		EventType: e.Type(),
		Date:      e.Date().String(),
		EndDate:   endDate,
		QRCode:    e.QRCode(),
	}
}

// SessionsGenerated is emitted when a multi-day event's sessions are generated.
type SessionsGenerated struct {
	sharedDomain.BaseEvent
	SourceEventID uuid.UUID `json:"event_id"`
	SessionCount  int       `json:"session_count"`
}

// NewSessionsGenerated creates a SessionsGenerated event.
func NewSessionsGenerated(eventID uuid.UUID, count int) *SessionsGenerated {
	return &SessionsGenerated{
		BaseEvent:     sharedDomain.NewBaseEvent(eventID, aggregateTypeEvent, SessionsGeneratedKey),
		SourceEventID: eventID,
		SessionCount:  count,
	}
}
