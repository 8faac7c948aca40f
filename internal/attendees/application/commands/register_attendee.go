package commands

import (
	"context"

	"github.com/felixgeelhaar/turnout/internal/attendees/domain"
	sharedApplication "github.com/felixgeelhaar/turnout/internal/shared/application"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// attendeeIDRetries bounds how often a colliding generated attendee ID is
// replaced before giving up.
const attendeeIDRetries = 5

// RegisterAttendeeCommand contains the data needed to register an attendee.
type RegisterAttendeeCommand struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// RegisterAttendeeResult contains the result of registering an attendee.
type RegisterAttendeeResult struct {
	ID         uuid.UUID
	AttendeeID string
}

// RegisterAttendeeHandler handles the RegisterAttendeeCommand.
type RegisterAttendeeHandler struct {
	attendeeRepo domain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
}

// NewRegisterAttendeeHandler creates a new RegisterAttendeeHandler.
func NewRegisterAttendeeHandler(attendeeRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RegisterAttendeeHandler {
	return &RegisterAttendeeHandler{
		attendeeRepo: attendeeRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
	}
}

// Handle executes the RegisterAttendeeCommand.
func (h *RegisterAttendeeHandler) Handle(ctx context.Context, cmd RegisterAttendeeCommand) (*RegisterAttendeeResult, error) {
	attendee, err := domain.NewAttendee(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Phone)
	if err != nil {
		return nil, err
	}

	var result *RegisterAttendeeResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.ensureUniqueID(txCtx, attendee); err != nil {
			return err
		}
		if err := h.attendeeRepo.Save(txCtx, attendee); err != nil {
			return err
		}

		events := attendee.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata())

		msgs := make([]*outbox.Message, 0, len(events))
		for _, event := range events {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &RegisterAttendeeResult{
			ID:         attendee.ID(),
			AttendeeID: attendee.AttendeeID(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ensureUniqueID regenerates the short numeric ID while it collides with
// an existing attendee. The ID space is small enough that collisions
// happen in practice.
func (h *RegisterAttendeeHandler) ensureUniqueID(ctx context.Context, attendee *domain.Attendee) error {
	for range attendeeIDRetries {
		existing, err := h.attendeeRepo.FindByAttendeeID(ctx, attendee.AttendeeID())
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		attendee.RegenerateID()
	}
	return domain.ErrAttendeeIDExhausted
}
