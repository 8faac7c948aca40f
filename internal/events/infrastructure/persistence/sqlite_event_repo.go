package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// SQLiteEventRepository implements domain.EventRepository using SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository creates a new SQLite event repository.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

const sqliteEventColumns = `id, name, description, event_type, event_date, end_date,
	start_time, end_time, location, qr_code, recurrence_frequency,
	recurrence_weekdays, is_active, created_at, updated_at`

// Save upserts an event.
func (r *SQLiteEventRepository) Save(ctx context.Context, event *domain.Event) error {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)

	var endDate sql.NullString
	if !event.EndDate().IsZero() {
		endDate = sql.NullString{String: event.EndDate().String(), Valid: true}
	}

	_, err := querier.ExecContext(ctx, `
		INSERT INTO events (
			id, name, description, event_type, event_date, end_date,
			start_time, end_time, location, qr_code, recurrence_frequency,
			recurrence_weekdays, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			location = excluded.location,
			qr_code = excluded.qr_code,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		event.ID().String(),
		event.Name(),
		event.Description(),
		string(event.Type()),
		event.Date().String(),
		endDate,
		event.StartTime().String(),
		event.EndTime().String(),
		event.Location(),
		event.QRCode(),
		string(event.Recurrence().Frequency()),
		weekdaysToCSV(event.Recurrence().Weekdays()),
		event.IsActive(),
		event.CreatedAt().Format(time.RFC3339Nano),
		event.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves an event by its ID.
func (r *SQLiteEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.findOne(ctx, `SELECT `+sqliteEventColumns+` FROM events WHERE id = ?`, id.String())
}

// FindByQRCode retrieves an event by its QR code.
func (r *SQLiteEventRepository) FindByQRCode(ctx context.Context, qrCode string) (*domain.Event, error) {
	return r.findOne(ctx, `SELECT `+sqliteEventColumns+` FROM events WHERE qr_code = ?`, qrCode)
}

// ListActive retrieves all active events, newest first.
func (r *SQLiteEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := querier.QueryContext(ctx,
		`SELECT `+sqliteEventColumns+` FROM events WHERE is_active = 1 ORDER BY event_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanSQLiteEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) findOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	event, err := scanSQLiteEvent(querier.QueryRowContext(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

func scanSQLiteEvent(scan func(dest ...any) error) (*domain.Event, error) {
	var (
		id, name, description string
		eventType             string
		eventDate             string
		endDate               sql.NullString
		startTime, endTime    string
		location, qrCode      string
		frequency, weekdays   string
		active                bool
		createdAt, updatedAt  string
	)
	err := scan(&id, &name, &description, &eventType, &eventDate, &endDate,
		&startTime, &endTime, &location, &qrCode, &frequency, &weekdays,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entityID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, err
	}
	date, err := sharedDomain.ParseDate(eventDate)
	if err != nil {
		return nil, err
	}
	var endD sharedDomain.Date
	if endDate.Valid {
		if endD, err = sharedDomain.ParseDate(endDate.String); err != nil {
			return nil, err
		}
	}
	start, err := sharedDomain.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	end, err := sharedDomain.ParseTimeOfDay(endTime)
	if err != nil {
		return nil, err
	}
	recurrence, err := recurrenceFromRow(frequency, weekdays)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateEvent(
		sharedDomain.RehydrateBaseEntity(entityID, created, updated),
		name, description,
		domain.EventType(eventType),
		date, endD,
		start, end,
		location, qrCode,
		recurrence,
		active,
	), nil
}
