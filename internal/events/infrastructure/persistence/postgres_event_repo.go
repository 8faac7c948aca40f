package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEventRepository implements domain.EventRepository using PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

const pgEventColumns = `id, name, description, event_type, event_date, end_date,
	start_time, end_time, location, qr_code, recurrence_frequency,
	recurrence_weekdays, is_active, created_at, updated_at`

// Save upserts an event.
func (r *PostgresEventRepository) Save(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			id, name, description, event_type, event_date, end_date,
			start_time, end_time, location, qr_code, recurrence_frequency,
			recurrence_weekdays, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			location = EXCLUDED.location,
			qr_code = EXCLUDED.qr_code,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	var endDate *time.Time
	if !event.EndDate().IsZero() {
		d := event.EndDate().Time()
		endDate = &d
	}

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		event.ID(),
		event.Name(),
		event.Description(),
		string(event.Type()),
		event.Date().Time(),
		endDate,
		event.StartTime().String(),
		event.EndTime().String(),
		event.Location(),
		event.QRCode(),
		string(event.Recurrence().Frequency()),
		weekdaysToCSV(event.Recurrence().Weekdays()),
		event.IsActive(),
		event.CreatedAt(),
		event.UpdatedAt(),
	)
	return err
}

// FindByID retrieves an event by its ID.
func (r *PostgresEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.findOne(ctx, `SELECT `+pgEventColumns+` FROM events WHERE id = $1`, id)
}

// FindByQRCode retrieves an event by its QR code.
func (r *PostgresEventRepository) FindByQRCode(ctx context.Context, qrCode string) (*domain.Event, error) {
	return r.findOne(ctx, `SELECT `+pgEventColumns+` FROM events WHERE qr_code = $1`, qrCode)
}

// ListActive retrieves all active events, newest first.
func (r *PostgresEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + pgEventColumns + ` FROM events WHERE is_active = TRUE ORDER BY event_date DESC`

	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanPgEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *PostgresEventRepository) findOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	event, err := scanPgEvent(execer.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

func scanPgEvent(row pgx.Row) (*domain.Event, error) {
	var (
		id                  uuid.UUID
		name, description   string
		eventType           string
		eventDate           time.Time
		endDate             *time.Time
		startTime, endTime  string
		location, qrCode    string
		frequency, weekdays string
		active              bool
		createdAt           time.Time
		updatedAt           time.Time
	)
	err := row.Scan(&id, &name, &description, &eventType, &eventDate, &endDate,
		&startTime, &endTime, &location, &qrCode, &frequency, &weekdays,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	start, err := sharedDomain.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	end, err := sharedDomain.ParseTimeOfDay(endTime)
	if err != nil {
		return nil, err
	}

	var endD sharedDomain.Date
	if endDate != nil {
		endD = sharedDomain.DateOf(*endDate)
	}

	recurrence, err := recurrenceFromRow(frequency, weekdays)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateEvent(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		name, description,
		domain.EventType(eventType),
		sharedDomain.DateOf(eventDate), endD,
		start, end,
		location, qrCode,
		recurrence,
		active,
	), nil
}

func recurrenceFromRow(frequency, weekdays string) (domain.Recurrence, error) {
	if frequency == "" {
		return domain.Recurrence{}, nil
	}
	return domain.NewRecurrence(domain.Frequency(frequency), weekdaysFromCSV(weekdays))
}

func weekdaysToCSV(weekdays []time.Weekday) string {
	if len(weekdays) == 0 {
		return ""
	}
	parts := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		parts = append(parts, strconv.Itoa(int(wd)))
	}
	return strings.Join(parts, ",")
}

func weekdaysFromCSV(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		weekdays = append(weekdays, time.Weekday(n))
	}
	return weekdays
}
