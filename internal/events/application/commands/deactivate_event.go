package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedApplication "github.com/felixgeelhaar/turnout/internal/shared/application"
	"github.com/google/uuid"
)

// ErrEventNotFound is returned when an event does not exist.
var ErrEventNotFound = errors.New("event not found")

// QRCodeInvalidator drops cached lookups for QR codes that are no longer
// scannable. A nil invalidator disables invalidation.
type QRCodeInvalidator interface {
	Invalidate(ctx context.Context, qrCodes ...string)
}

// DeactivateEventCommand removes an event from the scannable set.
type DeactivateEventCommand struct {
	EventID uuid.UUID
}

// DeactivateEventHandler handles the DeactivateEventCommand.
type DeactivateEventHandler struct {
	eventRepo   domain.EventRepository
	sessionRepo domain.SessionRepository
	cache       QRCodeInvalidator
	uow         sharedApplication.UnitOfWork
}

// NewDeactivateEventHandler creates a new DeactivateEventHandler.
func NewDeactivateEventHandler(eventRepo domain.EventRepository, sessionRepo domain.SessionRepository, cache QRCodeInvalidator, uow sharedApplication.UnitOfWork) *DeactivateEventHandler {
	return &DeactivateEventHandler{eventRepo: eventRepo, sessionRepo: sessionRepo, cache: cache, uow: uow}
}

// Handle executes the DeactivateEventCommand. The event's QR code and its
// session codes are dropped from the lookup cache once the change commits.
func (h *DeactivateEventHandler) Handle(ctx context.Context, cmd DeactivateEventCommand) error {
	var revoked []string
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		event, err := h.eventRepo.FindByID(txCtx, cmd.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}
		event.Deactivate()
		if err := h.eventRepo.Save(txCtx, event); err != nil {
			return err
		}

		revoked = append(revoked, event.QRCode())
		sessions, err := h.sessionRepo.ListByEvent(txCtx, event.ID())
		if err != nil {
			return err
		}
		for _, session := range sessions {
			revoked = append(revoked, session.QRCode())
		}
		return nil
	})
	if err != nil {
		return err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, revoked...)
	}
	return nil
}

// RenewQRCodeCommand replaces an event's QR code, invalidating printed
// copies.
type RenewQRCodeCommand struct {
	EventID uuid.UUID
}

// RenewQRCodeResult carries the replacement code.
type RenewQRCodeResult struct {
	QRCode string
}

// RenewQRCodeHandler handles the RenewQRCodeCommand.
type RenewQRCodeHandler struct {
	eventRepo domain.EventRepository
	cache     QRCodeInvalidator
	uow       sharedApplication.UnitOfWork
}

// NewRenewQRCodeHandler creates a new RenewQRCodeHandler.
func NewRenewQRCodeHandler(eventRepo domain.EventRepository, cache QRCodeInvalidator, uow sharedApplication.UnitOfWork) *RenewQRCodeHandler {
	return &RenewQRCodeHandler{eventRepo: eventRepo, cache: cache, uow: uow}
}

// Handle executes the RenewQRCodeCommand. The replaced code is dropped from
// the lookup cache once the change commits, so stale printed copies stop
// resolving immediately rather than at TTL expiry.
func (h *RenewQRCodeHandler) Handle(ctx context.Context, cmd RenewQRCodeCommand) (*RenewQRCodeResult, error) {
	var result *RenewQRCodeResult
	var replaced string
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		event, err := h.eventRepo.FindByID(txCtx, cmd.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}
		replaced = event.QRCode()
		code := event.RenewQRCode()
		if err := h.eventRepo.Save(txCtx, event); err != nil {
			return err
		}
		result = &RenewQRCodeResult{QRCode: code}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, replaced)
	}
	return result, nil
}
