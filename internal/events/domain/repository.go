package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// EventRepository persists events. Lookups return nil without error when
// nothing matches.
type EventRepository interface {
	Save(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindByQRCode(ctx context.Context, qrCode string) (*Event, error)
	ListActive(ctx context.Context) ([]*Event, error)
}

// SessionRepository persists event sessions.
type SessionRepository interface {
	SaveBatch(ctx context.Context, sessions []*EventSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*EventSession, error)
	FindByEventAndDate(ctx context.Context, eventID uuid.UUID, date sharedDomain.Date) (*EventSession, error)
	FindByQRCode(ctx context.Context, qrCode string) (*EventSession, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*EventSession, error)
}
