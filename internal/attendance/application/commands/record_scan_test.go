package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	attendeesDomain "github.com/felixgeelhaar/turnout/internal/attendees/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockEventRepo is a mock implementation of eventsDomain.EventRepository.
type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Save(ctx context.Context, event *eventsDomain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*eventsDomain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventsDomain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByQRCode(ctx context.Context, qrCode string) (*eventsDomain.Event, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventsDomain.Event), args.Error(1)
}

func (m *mockEventRepo) ListActive(ctx context.Context) ([]*eventsDomain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventsDomain.Event), args.Error(1)
}

// mockSessionRepo is a mock implementation of eventsDomain.SessionRepository.
type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) SaveBatch(ctx context.Context, sessions []*eventsDomain.EventSession) error {
	args := m.Called(ctx, sessions)
	return args.Error(0)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*eventsDomain.EventSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventsDomain.EventSession), args.Error(1)
}

func (m *mockSessionRepo) FindByEventAndDate(ctx context.Context, eventID uuid.UUID, date sharedDomain.Date) (*eventsDomain.EventSession, error) {
	args := m.Called(ctx, eventID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventsDomain.EventSession), args.Error(1)
}

func (m *mockSessionRepo) FindByQRCode(ctx context.Context, qrCode string) (*eventsDomain.EventSession, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventsDomain.EventSession), args.Error(1)
}

func (m *mockSessionRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*eventsDomain.EventSession, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventsDomain.EventSession), args.Error(1)
}

// mockAttendeeRepo is a mock implementation of attendeesDomain.Repository.
type mockAttendeeRepo struct {
	mock.Mock
}

func (m *mockAttendeeRepo) Save(ctx context.Context, attendee *attendeesDomain.Attendee) error {
	args := m.Called(ctx, attendee)
	return args.Error(0)
}

func (m *mockAttendeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*attendeesDomain.Attendee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendeesDomain.Attendee), args.Error(1)
}

func (m *mockAttendeeRepo) FindByAttendeeID(ctx context.Context, attendeeID string) (*attendeesDomain.Attendee, error) {
	args := m.Called(ctx, attendeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendeesDomain.Attendee), args.Error(1)
}

func (m *mockAttendeeRepo) List(ctx context.Context) ([]*attendeesDomain.Attendee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendeesDomain.Attendee), args.Error(1)
}

// mockCheckpointRepo is a mock implementation of domain.CheckpointRepository.
type mockCheckpointRepo struct {
	mock.Mock
}

func (m *mockCheckpointRepo) Save(ctx context.Context, checkpoint *domain.Checkpoint) error {
	args := m.Called(ctx, checkpoint)
	return args.Error(0)
}

func (m *mockCheckpointRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkpoint), args.Error(1)
}

func (m *mockCheckpointRepo) FindByCode(ctx context.Context, code string) (*domain.Checkpoint, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkpoint), args.Error(1)
}

func (m *mockCheckpointRepo) ListByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Checkpoint, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Checkpoint), args.Error(1)
}

// mockRecordRepo is a mock implementation of domain.RecordRepository.
type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRecordRepo) FindExisting(ctx context.Context, attendeeID uuid.UUID, checkpointID *uuid.UUID, occ eventsDomain.OccurrenceRef) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, attendeeID, checkpointID, occ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceRecord), args.Error(1)
}

func (m *mockRecordRepo) ListByOccurrence(ctx context.Context, occ eventsDomain.OccurrenceRef) ([]*domain.AttendanceRecord, error) {
	args := m.Called(ctx, occ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttendanceRecord), args.Error(1)
}

func (m *mockRecordRepo) ListByAttendee(ctx context.Context, attendeeID uuid.UUID, limit int) ([]*domain.AttendanceRecord, error) {
	args := m.Called(ctx, attendeeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttendanceRecord), args.Error(1)
}

func (m *mockRecordRepo) CountByStatus(ctx context.Context, eventID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type txKey struct{}

type scanFixture struct {
	eventRepo      *mockEventRepo
	sessionRepo    *mockSessionRepo
	attendeeRepo   *mockAttendeeRepo
	checkpointRepo *mockCheckpointRepo
	recordRepo     *mockRecordRepo
	outboxRepo     *mockOutboxRepo
	uow            *mockUnitOfWork
	handler        *RecordScanHandler
	ctx            context.Context
	txCtx          context.Context
}

func newScanFixture() *scanFixture {
	f := &scanFixture{
		eventRepo:      new(mockEventRepo),
		sessionRepo:    new(mockSessionRepo),
		attendeeRepo:   new(mockAttendeeRepo),
		checkpointRepo: new(mockCheckpointRepo),
		recordRepo:     new(mockRecordRepo),
		outboxRepo:     new(mockOutboxRepo),
		uow:            new(mockUnitOfWork),
	}
	f.handler = NewRecordScanHandler(
		f.eventRepo, f.sessionRepo, f.attendeeRepo,
		f.checkpointRepo, f.recordRepo, f.outboxRepo, f.uow,
	)
	f.ctx = context.Background()
	f.txCtx = context.WithValue(f.ctx, txKey{}, "transaction")
	return f
}

func (f *scanFixture) expectCommit() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("Commit", f.txCtx).Return(nil)
}

func newTestEvent(t *testing.T, date sharedDomain.Date) *eventsDomain.Event {
	t.Helper()
	start, err := sharedDomain.NewTimeOfDay(9, 0)
	require.NoError(t, err)
	end, err := sharedDomain.NewTimeOfDay(17, 0)
	require.NoError(t, err)
	event, err := eventsDomain.NewSingleEvent("Workshop", "", date, start, end, "Room A")
	require.NoError(t, err)
	return event
}

func newTestAttendee(t *testing.T) *attendeesDomain.Attendee {
	t.Helper()
	attendee, err := attendeesDomain.NewAttendee("Ada", "Lovelace", "ada@example.com", "")
	require.NoError(t, err)
	return attendee
}

func newTestCheckpoint(t *testing.T, owner domain.Owner) *domain.Checkpoint {
	t.Helper()
	nine, err := sharedDomain.NewTimeOfDay(9, 0)
	require.NoError(t, err)
	cp, err := domain.NewCheckpoint(owner, domain.CheckpointEntrance,
		"Morning entrance", "", nine, 15, domain.AppliesAllDays, sharedDomain.Date{}, true, 1)
	require.NoError(t, err)
	return cp
}

func TestRecordScanHandler_Handle(t *testing.T) {
	scannedAt := time.Date(2024, 10, 1, 9, 10, 0, 0, time.UTC)
	scanDate := sharedDomain.DateOf(scannedAt)

	t.Run("records an on-time checkpoint scan", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)
		checkpoint := newTestCheckpoint(t, domain.EventOwner(event.ID()))

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.checkpointRepo.On("FindByCode", f.ctx, checkpoint.Code()).Return(checkpoint, nil)
		f.expectCommit()
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), mock.Anything, mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:         event.QRCode(),
			AttendeeID:     attendee.AttendeeID(),
			CheckpointCode: checkpoint.Code(),
			ScannedAt:      scannedAt,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, domain.StatusOnTime, result.Status)
		assert.Equal(t, "Ada Lovelace", result.AttendeeName)
		assert.Equal(t, "Workshop", result.EventName)

		f.recordRepo.AssertExpectations(t)
		f.outboxRepo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("classifies a scan past the window as late", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)
		checkpoint := newTestCheckpoint(t, domain.EventOwner(event.ID()))
		lateAt := time.Date(2024, 10, 1, 9, 20, 0, 0, time.UTC)

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.checkpointRepo.On("FindByCode", f.ctx, checkpoint.Code()).Return(checkpoint, nil)
		f.expectCommit()
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), mock.Anything, mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:         event.QRCode(),
			AttendeeID:     attendee.AttendeeID(),
			CheckpointCode: checkpoint.Code(),
			ScannedAt:      lateAt,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusLate, result.Status)
	})

	t.Run("records plain presence without a checkpoint", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.expectCommit()
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), (*uuid.UUID)(nil), mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     event.QRCode(),
			AttendeeID: attendee.AttendeeID(),
			ScannedAt:  scannedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAttended, result.Status)
		f.checkpointRepo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	})

	t.Run("resolves a session QR code to its parent event", func(t *testing.T) {
		f := newScanFixture()
		start, err := sharedDomain.NewTimeOfDay(9, 0)
		require.NoError(t, err)
		end, err := sharedDomain.NewTimeOfDay(17, 0)
		require.NoError(t, err)
		endDate := scanDate.AddDays(2)
		event, err := eventsDomain.NewSpanEvent("Conference", "", scanDate, endDate, start, end, "Hall 1")
		require.NoError(t, err)
		sessions := event.GenerateSessions()
		require.Len(t, sessions, 3)
		today := sessions[0]
		attendee := newTestAttendee(t)

		f.eventRepo.On("FindByQRCode", f.ctx, today.QRCode()).Return(nil, nil)
		f.sessionRepo.On("FindByQRCode", f.ctx, today.QRCode()).Return(today, nil)
		f.eventRepo.On("FindByID", f.ctx, event.ID()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.expectCommit()
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), (*uuid.UUID)(nil), mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     today.QRCode(),
			AttendeeID: attendee.AttendeeID(),
			ScannedAt:  scannedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, "Conference", result.EventName)
		f.sessionRepo.AssertNotCalled(t, "FindByEventAndDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown QR codes", func(t *testing.T) {
		f := newScanFixture()

		f.eventRepo.On("FindByQRCode", f.ctx, "NOPE").Return(nil, nil)
		f.sessionRepo.On("FindByQRCode", f.ctx, "NOPE").Return(nil, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     "NOPE",
			AttendeeID: "12345",
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, ErrUnknownQRCode)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rejects scans on the wrong date", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate.AddDays(7))
		attendee := newTestAttendee(t)

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     event.QRCode(),
			AttendeeID: attendee.AttendeeID(),
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, eventsDomain.ErrDateOutOfRange)
	})

	t.Run("rejects unknown attendees", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, "99999").Return(nil, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     event.QRCode(),
			AttendeeID: "99999",
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, ErrUnknownAttendee)
	})

	t.Run("rejects checkpoints of another event", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)
		foreign := newTestCheckpoint(t, domain.EventOwner(uuid.New()))

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.checkpointRepo.On("FindByCode", f.ctx, foreign.Code()).Return(foreign, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:         event.QRCode(),
			AttendeeID:     attendee.AttendeeID(),
			CheckpointCode: foreign.Code(),
			ScannedAt:      scannedAt,
		})

		assert.ErrorIs(t, err, domain.ErrCheckpointMismatch)
	})

	t.Run("rejects checkpoints not in effect on the scan date", func(t *testing.T) {
		f := newScanFixture()
		// Sat 2024-10-05.
		saturday := time.Date(2024, 10, 5, 9, 10, 0, 0, time.UTC)
		saturdayDate := sharedDomain.DateOf(saturday)
		event := newTestEvent(t, saturdayDate)
		attendee := newTestAttendee(t)

		nine, err := sharedDomain.NewTimeOfDay(9, 0)
		require.NoError(t, err)
		weekdaysOnly, err := domain.NewCheckpoint(domain.EventOwner(event.ID()), domain.CheckpointEntrance,
			"Entrance", "", nine, 15, domain.AppliesWeekdays, sharedDomain.Date{}, true, 1)
		require.NoError(t, err)

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.checkpointRepo.On("FindByCode", f.ctx, weekdaysOnly.Code()).Return(weekdaysOnly, nil)

		_, err = f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:         event.QRCode(),
			AttendeeID:     attendee.AttendeeID(),
			CheckpointCode: weekdaysOnly.Code(),
			ScannedAt:      saturday,
		})

		assert.ErrorIs(t, err, domain.ErrCheckpointNotApplicable)
	})

	t.Run("rejects duplicate scans before writing", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)
		occ := eventsDomain.EventOccurrence(event.ID(), scanDate)
		existing := domain.NewOccurrenceAttendance(attendee.ID(), occ, scannedAt, domain.ScanMetadata{})

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), (*uuid.UUID)(nil), mock.Anything).Return(existing, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     event.QRCode(),
			AttendeeID: attendee.AttendeeID(),
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, domain.ErrDuplicateAttendance)
		f.recordRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("surfaces the storage constraint when concurrent scans race", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), (*uuid.UUID)(nil), mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(domain.ErrDuplicateAttendance)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     event.QRCode(),
			AttendeeID: attendee.AttendeeID(),
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, domain.ErrDuplicateAttendance)
		f.uow.AssertExpectations(t)
	})

	t.Run("rejects inactive events", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		event.Deactivate()

		f.eventRepo.On("FindByQRCode", f.ctx, event.QRCode()).Return(event, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     event.QRCode(),
			AttendeeID: "12345",
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, eventsDomain.ErrEventInactive)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		f := newScanFixture()
		repoErr := errors.New("connection reset")

		f.eventRepo.On("FindByQRCode", f.ctx, "ABCDEF123456").Return(nil, repoErr)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			QRCode:     "ABCDEF123456",
			AttendeeID: "12345",
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestRecordScanHandler_CheckpointCodeOnly(t *testing.T) {
	scannedAt := time.Date(2024, 10, 1, 9, 10, 0, 0, time.UTC)
	scanDate := sharedDomain.DateOf(scannedAt)

	t.Run("resolves an event-owned checkpoint without a QR code", func(t *testing.T) {
		f := newScanFixture()
		event := newTestEvent(t, scanDate)
		attendee := newTestAttendee(t)
		checkpoint := newTestCheckpoint(t, domain.EventOwner(event.ID()))

		f.checkpointRepo.On("FindByCode", f.ctx, checkpoint.Code()).Return(checkpoint, nil)
		f.eventRepo.On("FindByID", f.ctx, event.ID()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.expectCommit()
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), mock.Anything, mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, RecordScanCommand{
			AttendeeID:     attendee.AttendeeID(),
			CheckpointCode: checkpoint.Code(),
			ScannedAt:      scannedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusOnTime, result.Status)
		f.eventRepo.AssertNotCalled(t, "FindByQRCode", mock.Anything, mock.Anything)
		f.checkpointRepo.AssertNumberOfCalls(t, "FindByCode", 1)
	})

	t.Run("resolves a session-owned checkpoint to its session and event", func(t *testing.T) {
		f := newScanFixture()
		start, err := sharedDomain.NewTimeOfDay(9, 0)
		require.NoError(t, err)
		end, err := sharedDomain.NewTimeOfDay(17, 0)
		require.NoError(t, err)
		endDate := scanDate.AddDays(2)
		event, err := eventsDomain.NewSpanEvent("Conference", "", scanDate, endDate, start, end, "Hall 1")
		require.NoError(t, err)
		sessions := event.GenerateSessions()
		require.Len(t, sessions, 3)
		today := sessions[0]
		attendee := newTestAttendee(t)
		checkpoint := newTestCheckpoint(t, domain.SessionOwner(today.ID()))

		f.checkpointRepo.On("FindByCode", f.ctx, checkpoint.Code()).Return(checkpoint, nil)
		f.sessionRepo.On("FindByID", f.ctx, today.ID()).Return(today, nil)
		f.eventRepo.On("FindByID", f.ctx, event.ID()).Return(event, nil)
		f.attendeeRepo.On("FindByAttendeeID", f.ctx, attendee.AttendeeID()).Return(attendee, nil)
		f.expectCommit()
		f.recordRepo.On("FindExisting", f.txCtx, attendee.ID(), mock.Anything, mock.Anything).Return(nil, nil)
		f.recordRepo.On("Save", f.txCtx, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, RecordScanCommand{
			AttendeeID:     attendee.AttendeeID(),
			CheckpointCode: checkpoint.Code(),
			ScannedAt:      scannedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, "Conference", result.EventName)
		assert.Equal(t, domain.StatusOnTime, result.Status)
	})

	t.Run("rejects unknown checkpoint codes", func(t *testing.T) {
		f := newScanFixture()

		f.checkpointRepo.On("FindByCode", f.ctx, "NOPE").Return(nil, nil)

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			AttendeeID:     "12345",
			CheckpointCode: "NOPE",
			ScannedAt:      scannedAt,
		})

		assert.ErrorIs(t, err, ErrUnknownCheckpointCode)
	})

	t.Run("rejects scans with neither code", func(t *testing.T) {
		f := newScanFixture()

		_, err := f.handler.Handle(f.ctx, RecordScanCommand{
			AttendeeID: "12345",
			ScannedAt:  scannedAt,
		})

		assert.ErrorIs(t, err, ErrUnknownQRCode)
	})
}
