package queries

import (
	"context"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
)

// ListEventsQuery lists all active events.
type ListEventsQuery struct{}

// ListEventsHandler handles the ListEventsQuery.
type ListEventsHandler struct {
	eventRepo domain.EventRepository
}

// NewListEventsHandler creates a new ListEventsHandler.
func NewListEventsHandler(eventRepo domain.EventRepository) *ListEventsHandler {
	return &ListEventsHandler{eventRepo: eventRepo}
}

// Handle executes the ListEventsQuery.
func (h *ListEventsHandler) Handle(ctx context.Context, _ ListEventsQuery) ([]EventDTO, error) {
	events, err := h.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, toEventDTO(event, nil))
	}
	return dtos, nil
}
