package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendees/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAttendeeRepository implements domain.Repository using PostgreSQL.
type PostgresAttendeeRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAttendeeRepository creates a new PostgreSQL attendee repository.
func NewPostgresAttendeeRepository(pool *pgxpool.Pool) *PostgresAttendeeRepository {
	return &PostgresAttendeeRepository{pool: pool}
}

const pgAttendeeColumns = `id, attendee_id, first_name, last_name, email, phone,
	is_active, created_at, updated_at`

// Save upserts an attendee.
func (r *PostgresAttendeeRepository) Save(ctx context.Context, attendee *domain.Attendee) error {
	query := `
		INSERT INTO attendees (
			id, attendee_id, first_name, last_name, email, phone,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			attendee_id = EXCLUDED.attendee_id,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		attendee.ID(),
		attendee.AttendeeID(),
		attendee.FirstName(),
		attendee.LastName(),
		attendee.Email(),
		attendee.Phone(),
		attendee.IsActive(),
		attendee.CreatedAt(),
		attendee.UpdatedAt(),
	)
	return err
}

// FindByID retrieves an attendee by internal ID.
func (r *PostgresAttendeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
	return r.findOne(ctx, `SELECT `+pgAttendeeColumns+` FROM attendees WHERE id = $1`, id)
}

// FindByAttendeeID retrieves an attendee by the short scannable ID.
func (r *PostgresAttendeeRepository) FindByAttendeeID(ctx context.Context, attendeeID string) (*domain.Attendee, error) {
	return r.findOne(ctx, `SELECT `+pgAttendeeColumns+` FROM attendees WHERE attendee_id = $1`, attendeeID)
}

// List retrieves all attendees ordered by name.
func (r *PostgresAttendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	query := `SELECT ` + pgAttendeeColumns + ` FROM attendees ORDER BY last_name, first_name`

	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.Attendee
	for rows.Next() {
		attendee, err := scanPgAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}
	return attendees, rows.Err()
}

func (r *PostgresAttendeeRepository) findOne(ctx context.Context, query string, arg any) (*domain.Attendee, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	attendee, err := scanPgAttendee(execer.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return attendee, nil
}

func scanPgAttendee(row pgx.Row) (*domain.Attendee, error) {
	var (
		id                   uuid.UUID
		attendeeID           string
		firstName, lastName  string
		email, phone         string
		active               bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &attendeeID, &firstName, &lastName, &email, &phone,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAttendee(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		attendeeID, firstName, lastName, email, phone, active,
	), nil
}
