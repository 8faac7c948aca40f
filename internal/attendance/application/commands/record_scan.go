package commands

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	attendeesDomain "github.com/felixgeelhaar/turnout/internal/attendees/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedApplication "github.com/felixgeelhaar/turnout/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

var (
	// ErrUnknownQRCode means the scanned code matches no active event or session.
	ErrUnknownQRCode = errors.New("unknown QR code")
	// ErrUnknownCheckpointCode means the checkpoint code matches no active checkpoint.
	ErrUnknownCheckpointCode = errors.New("unknown checkpoint code")
	// ErrUnknownAttendee means the attendee ID matches no active attendee.
	ErrUnknownAttendee = errors.New("unknown attendee")
)

// RecordScanCommand is one scan submission: an event or session QR code,
// an attendee ID, and optionally a checkpoint code. Without a checkpoint
// the scan records plain presence; with one it is classified against the
// checkpoint's window.
type RecordScanCommand struct {
	QRCode         string
	AttendeeID     string
	CheckpointCode string            // optional
	ScannedAt      time.Time         // zero means now
	TargetDate     sharedDomain.Date // zero means the scan instant's date
	Metadata       domain.ScanMetadata
}

// RecordScanResult describes the stored record.
type RecordScanResult struct {
	RecordID     uuid.UUID
	AttendeeName string
	EventName    string
	Status       string
	RecordedAt   time.Time
}

// RecordScanHandler handles the RecordScanCommand.
type RecordScanHandler struct {
	eventRepo      eventsDomain.EventRepository
	sessionRepo    eventsDomain.SessionRepository
	attendeeRepo   attendeesDomain.Repository
	checkpointRepo domain.CheckpointRepository
	recordRepo     domain.RecordRepository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	now            func() time.Time
}

// NewRecordScanHandler creates a new RecordScanHandler.
func NewRecordScanHandler(
	eventRepo eventsDomain.EventRepository,
	sessionRepo eventsDomain.SessionRepository,
	attendeeRepo attendeesDomain.Repository,
	checkpointRepo domain.CheckpointRepository,
	recordRepo domain.RecordRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *RecordScanHandler {
	return &RecordScanHandler{
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		attendeeRepo:   attendeeRepo,
		checkpointRepo: checkpointRepo,
		recordRepo:     recordRepo,
		outboxRepo:     outboxRepo,
		uow:            uow,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes the RecordScanCommand. The scan instant is sampled once
// and used for both the date the occurrence resolves on and the window
// classification; an explicit TargetDate overrides the occurrence date
// only.
func (h *RecordScanHandler) Handle(ctx context.Context, cmd RecordScanCommand) (*RecordScanResult, error) {
	scannedAt := cmd.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = h.now()
	}
	scanDate := cmd.TargetDate
	if scanDate.IsZero() {
		scanDate = sharedDomain.DateOf(scannedAt)
	}

	var (
		event         *eventsDomain.Event
		presetSession *eventsDomain.EventSession
		checkpoint    *domain.Checkpoint
		err           error
	)
	switch {
	case cmd.QRCode != "":
		event, presetSession, err = h.resolveQRCode(ctx, cmd.QRCode)
	case cmd.CheckpointCode != "":
		// Direct checkpoint scan: the station shows the checkpoint's own
		// code, so the occurrence comes from the checkpoint's owner.
		checkpoint, event, presetSession, err = h.resolveCheckpointCode(ctx, cmd.CheckpointCode)
	default:
		return nil, ErrUnknownQRCode
	}
	if err != nil {
		return nil, err
	}
	if !event.IsActive() {
		return nil, eventsDomain.ErrEventInactive
	}

	attendee, err := h.attendeeRepo.FindByAttendeeID(ctx, cmd.AttendeeID)
	if err != nil {
		return nil, err
	}
	if attendee == nil || !attendee.IsActive() {
		return nil, ErrUnknownAttendee
	}

	session := presetSession
	if session == nil && event.IsMultiDay() {
		session, err = h.sessionRepo.FindByEventAndDate(ctx, event.ID(), scanDate)
		if err != nil {
			return nil, err
		}
	}

	occ, err := event.ResolveOccurrence(scanDate, session)
	if err != nil {
		return nil, err
	}

	if cmd.CheckpointCode != "" {
		if checkpoint == nil {
			checkpoint, err = h.checkpointRepo.FindByCode(ctx, cmd.CheckpointCode)
			if err != nil {
				return nil, err
			}
		}
		if checkpoint == nil || !checkpoint.IsActive() {
			return nil, ErrUnknownCheckpointCode
		}
		if !checkpoint.BelongsTo(event.ID(), occ) {
			return nil, domain.ErrCheckpointMismatch
		}
		if !checkpoint.AppliesOn(scanDate) {
			return nil, domain.ErrCheckpointNotApplicable
		}
	}

	var result *RecordScanResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var checkpointID *uuid.UUID
		if checkpoint != nil {
			id := checkpoint.ID()
			checkpointID = &id
		}
		existing, err := h.recordRepo.FindExisting(txCtx, attendee.ID(), checkpointID, occ)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateAttendance
		}

		var record *domain.AttendanceRecord
		if checkpoint != nil {
			record = domain.NewCheckpointAttendance(attendee.ID(), checkpoint, occ, scannedAt, cmd.Metadata)
		} else {
			record = domain.NewOccurrenceAttendance(attendee.ID(), occ, scannedAt, cmd.Metadata)
		}

		// The storage uniqueness constraint backstops the read-then-write
		// race between concurrent scans of the same attendee.
		if err := h.recordRepo.Save(txCtx, record); err != nil {
			return err
		}

		events := record.DomainEvents()
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

		result = &RecordScanResult{
			RecordID:     record.ID(),
			AttendeeName: attendee.FullName(),
			EventName:    event.Name(),
			Status:       record.Status(),
			RecordedAt:   record.RecordedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// resolveQRCode finds the event a scanned code belongs to. Session codes
// pin the occurrence to their session; event codes leave it to the scan
// date.
func (h *RecordScanHandler) resolveQRCode(ctx context.Context, qrCode string) (*eventsDomain.Event, *eventsDomain.EventSession, error) {
	event, err := h.eventRepo.FindByQRCode(ctx, qrCode)
	if err != nil {
		return nil, nil, err
	}
	if event != nil {
		return event, nil, nil
	}

	session, err := h.sessionRepo.FindByQRCode(ctx, qrCode)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || !session.IsActive() {
		return nil, nil, ErrUnknownQRCode
	}

	event, err = h.eventRepo.FindByID(ctx, session.EventID())
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return nil, nil, ErrUnknownQRCode
	}
	return event, session, nil
}

// resolveCheckpointCode resolves a scan submitted with only a checkpoint
// code. Session-owned checkpoints pin the occurrence to their session.
func (h *RecordScanHandler) resolveCheckpointCode(ctx context.Context, code string) (*domain.Checkpoint, *eventsDomain.Event, *eventsDomain.EventSession, error) {
	checkpoint, err := h.checkpointRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, nil, err
	}
	if checkpoint == nil || !checkpoint.IsActive() {
		return nil, nil, nil, ErrUnknownCheckpointCode
	}

	owner := checkpoint.Owner()
	if owner.IsEvent() {
		event, err := h.eventRepo.FindByID(ctx, owner.TargetID())
		if err != nil {
			return nil, nil, nil, err
		}
		if event == nil {
			return nil, nil, nil, ErrOwnerNotFound
		}
		return checkpoint, event, nil, nil
	}

	session, err := h.sessionRepo.FindByID(ctx, owner.TargetID())
	if err != nil {
		return nil, nil, nil, err
	}
	if session == nil || !session.IsActive() {
		return nil, nil, nil, ErrOwnerNotFound
	}
	event, err := h.eventRepo.FindByID(ctx, session.EventID())
	if err != nil {
		return nil, nil, nil, err
	}
	if event == nil {
		return nil, nil, nil, ErrOwnerNotFound
	}
	return checkpoint, event, session, nil
}
