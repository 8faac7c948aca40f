package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedApplication "github.com/felixgeelhaar/turnout/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CreateEventCommand contains the data needed to create an event. For
// multi-day events the sessions are generated immediately, one per
// covered day.
type CreateEventCommand struct {
	Type        domain.EventType
	Name        string
	Description string
	Location    string
	Date        sharedDomain.Date
	EndDate     sharedDomain.Date // multi-day only
	StartTime   sharedDomain.TimeOfDay
	EndTime     sharedDomain.TimeOfDay
	Frequency   domain.Frequency // recurring only
	Weekdays    []time.Weekday   // recurring only
}

// CreateEventResult contains the result of creating an event.
type CreateEventResult struct {
	EventID      uuid.UUID
	QRCode       string
	SessionCount int
}

// CreateEventHandler handles the CreateEventCommand.
type CreateEventHandler struct {
	eventRepo   domain.EventRepository
	sessionRepo domain.SessionRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewCreateEventHandler creates a new CreateEventHandler.
func NewCreateEventHandler(eventRepo domain.EventRepository, sessionRepo domain.SessionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateEventHandler {
	return &CreateEventHandler{
		eventRepo:   eventRepo,
		sessionRepo: sessionRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the CreateEventCommand.
func (h *CreateEventHandler) Handle(ctx context.Context, cmd CreateEventCommand) (*CreateEventResult, error) {
	event, err := h.buildEvent(cmd)
	if err != nil {
		return nil, err
	}

	sessions := event.GenerateSessions()
	if len(sessions) > 0 {
		event.AddDomainEvent(domain.NewSessionsGenerated(event.ID(), len(sessions)))
	}

	var result *CreateEventResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.eventRepo.Save(txCtx, event); err != nil {
			return err
		}
		if len(sessions) > 0 {
			if err := h.sessionRepo.SaveBatch(txCtx, sessions); err != nil {
				return err
			}
		}

		events := event.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata())

		msgs := make([]*outbox.Message, 0, len(events))
		for _, evt := range events {
			msg, err := outbox.NewMessage(evt)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &CreateEventResult{
			EventID:      event.ID(),
			QRCode:       event.QRCode(),
			SessionCount: len(sessions),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h *CreateEventHandler) buildEvent(cmd CreateEventCommand) (*domain.Event, error) {
	switch cmd.Type {
	case domain.EventTypeSpan:
		return domain.NewSpanEvent(cmd.Name, cmd.Description, cmd.Date, cmd.EndDate, cmd.StartTime, cmd.EndTime, cmd.Location)
	case domain.EventTypeRecurring:
		recurrence, err := domain.NewRecurrence(cmd.Frequency, cmd.Weekdays)
		if err != nil {
			return nil, err
		}
		return domain.NewRecurringEvent(cmd.Name, cmd.Description, cmd.Date, cmd.EndDate, cmd.StartTime, cmd.EndTime, cmd.Location, recurrence)
	default:
		return domain.NewSingleEvent(cmd.Name, cmd.Description, cmd.Date, cmd.StartTime, cmd.EndTime, cmd.Location)
	}
}
