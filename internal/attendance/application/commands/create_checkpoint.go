package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedApplication "github.com/felixgeelhaar/turnout/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ErrOwnerNotFound means the event or session a checkpoint should attach
// to does not exist.
var ErrOwnerNotFound = errors.New("checkpoint owner not found")

// CreateCheckpointCommand contains the data needed to define a checkpoint.
type CreateCheckpointCommand struct {
	OwnerKind    domain.OwnerKind
	OwnerID      uuid.UUID
	Type         domain.CheckpointType
	Name         string
	Description  string
	RequiredTime sharedDomain.TimeOfDay
	GraceMinutes int
	AppliesTo    domain.AppliesTo
	SpecificDate sharedDomain.Date
	IsRequired   bool
	Order        int
}

// CreateCheckpointResult contains the result of defining a checkpoint.
type CreateCheckpointResult struct {
	CheckpointID uuid.UUID
	Code         string
	WindowStart  string
	WindowEnd    string
}

// CreateCheckpointHandler handles the CreateCheckpointCommand.
type CreateCheckpointHandler struct {
	checkpointRepo domain.CheckpointRepository
	eventRepo      eventsDomain.EventRepository
	sessionRepo    eventsDomain.SessionRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
}

// NewCreateCheckpointHandler creates a new CreateCheckpointHandler.
func NewCreateCheckpointHandler(
	checkpointRepo domain.CheckpointRepository,
	eventRepo eventsDomain.EventRepository,
	sessionRepo eventsDomain.SessionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CreateCheckpointHandler {
	return &CreateCheckpointHandler{
		checkpointRepo: checkpointRepo,
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
	}
}

// Handle executes the CreateCheckpointCommand.
func (h *CreateCheckpointHandler) Handle(ctx context.Context, cmd CreateCheckpointCommand) (*CreateCheckpointResult, error) {
	owner, err := domain.RehydrateOwner(cmd.OwnerKind, cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := h.ownerExists(ctx, owner); err != nil {
		return nil, err
	}

	checkpoint, err := domain.NewCheckpoint(
		owner, cmd.Type, cmd.Name, cmd.Description,
		cmd.RequiredTime, cmd.GraceMinutes,
		cmd.AppliesTo, cmd.SpecificDate,
		cmd.IsRequired, cmd.Order,
	)
	if err != nil {
		return nil, err
	}

	var result *CreateCheckpointResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.checkpointRepo.Save(txCtx, checkpoint); err != nil {
			return err
		}

		events := checkpoint.DomainEvents()
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

		window := checkpoint.Window()
		result = &CreateCheckpointResult{
			CheckpointID: checkpoint.ID(),
			Code:         checkpoint.Code(),
			WindowStart:  window.Start().String(),
			WindowEnd:    window.End().String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h *CreateCheckpointHandler) ownerExists(ctx context.Context, owner domain.Owner) error {
	if owner.IsEvent() {
		event, err := h.eventRepo.FindByID(ctx, owner.TargetID())
		if err != nil {
			return err
		}
		if event == nil {
			return ErrOwnerNotFound
		}
		return nil
	}
	session, err := h.sessionRepo.FindByID(ctx, owner.TargetID())
	if err != nil {
		return err
	}
	if session == nil {
		return ErrOwnerNotFound
	}
	return nil
}
