package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists attendees. Lookups return nil without error when
// nothing matches.
type Repository interface {
	Save(ctx context.Context, attendee *Attendee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Attendee, error)
	FindByAttendeeID(ctx context.Context, attendeeID string) (*Attendee, error)
	List(ctx context.Context) ([]*Attendee, error)
}
