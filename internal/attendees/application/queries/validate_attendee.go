package queries

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendees/domain"
	"github.com/google/uuid"
)

// ErrAttendeeNotFound is returned when no attendee matches the query.
var ErrAttendeeNotFound = errors.New("attendee not found")

// AttendeeDTO is the read model for an attendee.
type AttendeeDTO struct {
	ID         uuid.UUID `json:"id"`
	AttendeeID string    `json:"attendee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAttendeeDTO(a *domain.Attendee) AttendeeDTO {
	return AttendeeDTO{
		ID:         a.ID(),
		AttendeeID: a.AttendeeID(),
		FirstName:  a.FirstName(),
		LastName:   a.LastName(),
		FullName:   a.FullName(),
		Email:      a.Email(),
		Phone:      a.Phone(),
		IsActive:   a.IsActive(),
		CreatedAt:  a.CreatedAt(),
	}
}

// ValidateAttendeeQuery checks a typed-in attendee ID before a scan is
// submitted.
type ValidateAttendeeQuery struct {
	AttendeeID string
}

// ValidateAttendeeHandler handles the ValidateAttendeeQuery.
type ValidateAttendeeHandler struct {
	attendeeRepo domain.Repository
}

// NewValidateAttendeeHandler creates a new ValidateAttendeeHandler.
func NewValidateAttendeeHandler(attendeeRepo domain.Repository) *ValidateAttendeeHandler {
	return &ValidateAttendeeHandler{attendeeRepo: attendeeRepo}
}

// Handle executes the ValidateAttendeeQuery.
func (h *ValidateAttendeeHandler) Handle(ctx context.Context, query ValidateAttendeeQuery) (*AttendeeDTO, error) {
	attendee, err := h.attendeeRepo.FindByAttendeeID(ctx, query.AttendeeID)
	if err != nil {
		return nil, err
	}
	if attendee == nil || !attendee.IsActive() {
		return nil, ErrAttendeeNotFound
	}
	dto := toAttendeeDTO(attendee)
	return &dto, nil
}

// ListAttendeesQuery lists all attendees.
type ListAttendeesQuery struct{}

// ListAttendeesHandler handles the ListAttendeesQuery.
type ListAttendeesHandler struct {
	attendeeRepo domain.Repository
}

// NewListAttendeesHandler creates a new ListAttendeesHandler.
func NewListAttendeesHandler(attendeeRepo domain.Repository) *ListAttendeesHandler {
	return &ListAttendeesHandler{attendeeRepo: attendeeRepo}
}

// Handle executes the ListAttendeesQuery.
func (h *ListAttendeesHandler) Handle(ctx context.Context, _ ListAttendeesQuery) ([]AttendeeDTO, error) {
	attendees, err := h.attendeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]AttendeeDTO, 0, len(attendees))
	for _, a := range attendees {
		dtos = append(dtos, toAttendeeDTO(a))
	}
	return dtos, nil
}
