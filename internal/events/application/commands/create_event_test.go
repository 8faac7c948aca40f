package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockEventRepo is a mock implementation of domain.EventRepository.
type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Save(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByQRCode(ctx context.Context, qrCode string) (*domain.Event, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventRepo) ListActive(ctx context.Context) ([]*domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

// mockSessionRepo is a mock implementation of domain.SessionRepository.
type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) SaveBatch(ctx context.Context, sessions []*domain.EventSession) error {
	args := m.Called(ctx, sessions)
	return args.Error(0)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.EventSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSession), args.Error(1)
}

func (m *mockSessionRepo) FindByEventAndDate(ctx context.Context, eventID uuid.UUID, date sharedDomain.Date) (*domain.EventSession, error) {
	args := m.Called(ctx, eventID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSession), args.Error(1)
}

func (m *mockSessionRepo) FindByQRCode(ctx context.Context, qrCode string) (*domain.EventSession, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSession), args.Error(1)
}

func (m *mockSessionRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.EventSession, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EventSession), args.Error(1)
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

func txContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, "transaction")
}

func TestCreateEventHandler_Handle(t *testing.T) {
	date := sharedDomain.DateOf(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))
	endDate := sharedDomain.DateOf(time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC))
	start, err := sharedDomain.NewTimeOfDay(9, 0)
	require.NoError(t, err)
	end, err := sharedDomain.NewTimeOfDay(17, 0)
	require.NoError(t, err)

	t.Run("creates single event without sessions", func(t *testing.T) {
		eventRepo := new(mockEventRepo)
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateEventHandler(eventRepo, sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		eventRepo.On("Save", txCtx, mock.AnythingOfType("*domain.Event")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, CreateEventCommand{
			Type:      domain.EventTypeSingle,
			Name:      "Team day",
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEqual(t, uuid.Nil, result.EventID)
		assert.Len(t, result.QRCode, domain.QRCodeLength)
		assert.Zero(t, result.SessionCount)

		sessionRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
		eventRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("creates span event with a session per day", func(t *testing.T) {
		eventRepo := new(mockEventRepo)
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateEventHandler(eventRepo, sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		eventRepo.On("Save", txCtx, mock.AnythingOfType("*domain.Event")).Return(nil)
		sessionRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*domain.EventSession")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, CreateEventCommand{
			Type:      domain.EventTypeSpan,
			Name:      "Conference",
			Date:      date,
			EndDate:   endDate,
			StartTime: start,
			EndTime:   end,
		})

		require.NoError(t, err)
		assert.Equal(t, 5, result.SessionCount)

		sessionRepo.AssertExpectations(t)
	})

	t.Run("creates recurring event on weekdays only", func(t *testing.T) {
		eventRepo := new(mockEventRepo)
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateEventHandler(eventRepo, sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		eventRepo.On("Save", txCtx, mock.AnythingOfType("*domain.Event")).Return(nil)
		sessionRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*domain.EventSession")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		// Tue 2024-10-01 through Sat 2024-10-05: four weekdays.
		result, err := handler.Handle(ctx, CreateEventCommand{
			Type:      domain.EventTypeRecurring,
			Name:      "Training",
			Date:      date,
			EndDate:   endDate,
			StartTime: start,
			EndTime:   end,
			Frequency: domain.FrequencyWeekly,
			Weekdays: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 4, result.SessionCount)
	})

	t.Run("returns domain validation errors without touching storage", func(t *testing.T) {
		eventRepo := new(mockEventRepo)
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateEventHandler(eventRepo, sessionRepo, outboxRepo, uow)

		_, err := handler.Handle(context.Background(), CreateEventCommand{
			Type:      domain.EventTypeSpan,
			Name:      "Conference",
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})

		assert.ErrorIs(t, err, domain.ErrEndDateRequired)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rolls back when session save fails", func(t *testing.T) {
		eventRepo := new(mockEventRepo)
		sessionRepo := new(mockSessionRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateEventHandler(eventRepo, sessionRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)
		saveErr := errors.New("session insert failed")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		eventRepo.On("Save", txCtx, mock.AnythingOfType("*domain.Event")).Return(nil)
		sessionRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*domain.EventSession")).Return(saveErr)

		_, err := handler.Handle(ctx, CreateEventCommand{
			Type:      domain.EventTypeSpan,
			Name:      "Conference",
			Date:      date,
			EndDate:   endDate,
			StartTime: start,
			EndTime:   end,
		})

		assert.ErrorIs(t, err, saveErr)
		uow.AssertExpectations(t)
	})
}
