package queries

import (
	"context"
	"errors"
	"sort"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
)

// ErrEventNotFound is returned when no event matches the query.
var ErrEventNotFound = errors.New("event not found")

// CheckpointDTO is the read model for a checkpoint with its computed
// window on a given day.
type CheckpointDTO struct {
	ID           uuid.UUID `json:"id"`
	OwnerKind    string    `json:"owner_kind"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	RequiredTime string    `json:"required_time"`
	GraceMinutes int       `json:"grace_minutes"`
	WindowStart  string    `json:"window_start"`
	WindowEnd    string    `json:"window_end"`
	AppliesTo    string    `json:"applies_to"`
	IsRequired   bool      `json:"is_required"`
	Order        int       `json:"order"`
	Code         string    `json:"code"`
}

func toCheckpointDTO(c *domain.Checkpoint) CheckpointDTO {
	window := c.Window()
	return CheckpointDTO{
		ID:           c.ID(),
		OwnerKind:    string(c.Owner().Kind()),
		OwnerID:      c.Owner().TargetID(),
		Type:         string(c.Type()),
		Name:         c.Name(),
		Description:  c.Description(),
		RequiredTime: c.RequiredTime().String(),
		GraceMinutes: c.GraceMinutes(),
		WindowStart:  window.Start().String(),
		WindowEnd:    window.End().String(),
		AppliesTo:    string(c.AppliesTo()),
		IsRequired:   c.IsRequired(),
		Order:        c.Order(),
		Code:         c.Code(),
	}
}

// ListCheckpointsQuery returns the checkpoints in effect for an event on
// one date: the event's own checkpoints plus those of that date's
// session, filtered by day applicability and sorted by order.
type ListCheckpointsQuery struct {
	QRCode string
	Date   sharedDomain.Date
}

// ListCheckpointsHandler handles the ListCheckpointsQuery.
type ListCheckpointsHandler struct {
	eventRepo      eventsDomain.EventRepository
	sessionRepo    eventsDomain.SessionRepository
	checkpointRepo domain.CheckpointRepository
}

// NewListCheckpointsHandler creates a new ListCheckpointsHandler.
func NewListCheckpointsHandler(
	eventRepo eventsDomain.EventRepository,
	sessionRepo eventsDomain.SessionRepository,
	checkpointRepo domain.CheckpointRepository,
) *ListCheckpointsHandler {
	return &ListCheckpointsHandler{
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		checkpointRepo: checkpointRepo,
	}
}

// Handle executes the ListCheckpointsQuery.
func (h *ListCheckpointsHandler) Handle(ctx context.Context, query ListCheckpointsQuery) ([]CheckpointDTO, error) {
	event, err := h.eventRepo.FindByQRCode(ctx, query.QRCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	checkpoints, err := h.checkpointRepo.ListByOwner(ctx, domain.EventOwner(event.ID()))
	if err != nil {
		return nil, err
	}

	if event.IsMultiDay() {
		session, err := h.sessionRepo.FindByEventAndDate(ctx, event.ID(), query.Date)
		if err != nil {
			return nil, err
		}
		if session != nil {
			sessionCheckpoints, err := h.checkpointRepo.ListByOwner(ctx, domain.SessionOwner(session.ID()))
			if err != nil {
				return nil, err
			}
			checkpoints = append(checkpoints, sessionCheckpoints...)
		}
	}

	dtos := make([]CheckpointDTO, 0, len(checkpoints))
	for _, c := range checkpoints {
		if !c.AppliesOn(query.Date) {
			continue
		}
		dtos = append(dtos, toCheckpointDTO(c))
	}
	sort.SliceStable(dtos, func(i, j int) bool { return dtos[i].Order < dtos[j].Order })
	return dtos, nil
}
