package queries

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
)

// ErrEventNotFound is returned when no event matches the query.
var ErrEventNotFound = errors.New("event not found")

// GetEventByQRCodeQuery looks up an event by a scanned QR code. Session
// codes resolve to their parent event.
type GetEventByQRCodeQuery struct {
	QRCode string
}

// GetEventByQRCodeHandler handles the GetEventByQRCodeQuery.
type GetEventByQRCodeHandler struct {
	eventRepo   domain.EventRepository
	sessionRepo domain.SessionRepository
}

// NewGetEventByQRCodeHandler creates a new GetEventByQRCodeHandler.
func NewGetEventByQRCodeHandler(eventRepo domain.EventRepository, sessionRepo domain.SessionRepository) *GetEventByQRCodeHandler {
	return &GetEventByQRCodeHandler{eventRepo: eventRepo, sessionRepo: sessionRepo}
}

// Handle executes the GetEventByQRCodeQuery.
func (h *GetEventByQRCodeHandler) Handle(ctx context.Context, query GetEventByQRCodeQuery) (*EventDTO, error) {
	event, err := h.eventRepo.FindByQRCode(ctx, query.QRCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		session, err := h.sessionRepo.FindByQRCode(ctx, query.QRCode)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrEventNotFound
		}
		event, err = h.eventRepo.FindByID(ctx, session.EventID())
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
	}

	var sessions []*domain.EventSession
	if event.IsMultiDay() {
		sessions, err = h.sessionRepo.ListByEvent(ctx, event.ID())
		if err != nil {
			return nil, err
		}
	}

	dto := toEventDTO(event, sessions)
	return &dto, nil
}
