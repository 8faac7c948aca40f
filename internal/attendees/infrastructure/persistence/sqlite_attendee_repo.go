package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendees/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// SQLiteAttendeeRepository implements domain.Repository using SQLite.
type SQLiteAttendeeRepository struct {
	db *sql.DB
}

// NewSQLiteAttendeeRepository creates a new SQLite attendee repository.
func NewSQLiteAttendeeRepository(db *sql.DB) *SQLiteAttendeeRepository {
	return &SQLiteAttendeeRepository{db: db}
}

const sqliteAttendeeColumns = `id, attendee_id, first_name, last_name, email, phone,
	is_active, created_at, updated_at`

// Save upserts an attendee.
func (r *SQLiteAttendeeRepository) Save(ctx context.Context, attendee *domain.Attendee) error {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	_, err := querier.ExecContext(ctx, `
		INSERT INTO attendees (
			id, attendee_id, first_name, last_name, email, phone,
			is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			attendee_id = excluded.attendee_id,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		attendee.ID().String(),
		attendee.AttendeeID(),
		attendee.FirstName(),
		attendee.LastName(),
		attendee.Email(),
		attendee.Phone(),
		attendee.IsActive(),
		attendee.CreatedAt().Format(time.RFC3339Nano),
		attendee.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves an attendee by internal ID.
func (r *SQLiteAttendeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
	return r.findOne(ctx, `SELECT `+sqliteAttendeeColumns+` FROM attendees WHERE id = ?`, id.String())
}

// FindByAttendeeID retrieves an attendee by the short scannable ID.
func (r *SQLiteAttendeeRepository) FindByAttendeeID(ctx context.Context, attendeeID string) (*domain.Attendee, error) {
	return r.findOne(ctx, `SELECT `+sqliteAttendeeColumns+` FROM attendees WHERE attendee_id = ?`, attendeeID)
}

// List retrieves all attendees ordered by name.
func (r *SQLiteAttendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := querier.QueryContext(ctx,
		`SELECT `+sqliteAttendeeColumns+` FROM attendees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.Attendee
	for rows.Next() {
		attendee, err := scanSQLiteAttendee(rows.Scan)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}
	return attendees, rows.Err()
}

func (r *SQLiteAttendeeRepository) findOne(ctx context.Context, query string, arg any) (*domain.Attendee, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	attendee, err := scanSQLiteAttendee(querier.QueryRowContext(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return attendee, nil
}

func scanSQLiteAttendee(scan func(dest ...any) error) (*domain.Attendee, error) {
	var (
		id, attendeeID       string
		firstName, lastName  string
		email, phone         string
		active               bool
		createdAt, updatedAt string
	)
	err := scan(&id, &attendeeID, &firstName, &lastName, &email, &phone,
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

	return domain.RehydrateAttendee(
		sharedDomain.RehydrateBaseEntity(entityID, created, updated),
		attendeeID, firstName, lastName, email, phone, active,
	), nil
}
