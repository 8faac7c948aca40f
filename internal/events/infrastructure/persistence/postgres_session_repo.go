package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSessionRepository implements domain.SessionRepository using PostgreSQL.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepository creates a new PostgreSQL session repository.
func NewPostgresSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

const pgSessionColumns = `id, event_id, session_date, session_number, start_time,
	end_time, location, qr_code, notes, is_active, created_at, updated_at`

// SaveBatch upserts a batch of sessions.
func (r *PostgresSessionRepository) SaveBatch(ctx context.Context, sessions []*domain.EventSession) error {
	if len(sessions) == 0 {
		return nil
	}

	query := `
		INSERT INTO event_sessions (
			id, event_id, session_date, session_number, start_time,
			end_time, location, qr_code, notes, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			location = EXCLUDED.location,
			notes = EXCLUDED.notes,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	for _, s := range sessions {
		_, err := execer.Exec(ctx, query,
			s.ID(),
			s.EventID(),
			s.SessionDate().Time(),
			s.Number(),
			s.StartTime().String(),
			s.EndTime().String(),
			s.Location(),
			s.QRCode(),
			s.Notes(),
			s.IsActive(),
			s.CreatedAt(),
			s.UpdatedAt(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves a session by its ID.
func (r *PostgresSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.EventSession, error) {
	return r.findOne(ctx, `SELECT `+pgSessionColumns+` FROM event_sessions WHERE id = $1`, id)
}

// FindByEventAndDate retrieves the session of an event on one date.
func (r *PostgresSessionRepository) FindByEventAndDate(ctx context.Context, eventID uuid.UUID, date sharedDomain.Date) (*domain.EventSession, error) {
	query := `SELECT ` + pgSessionColumns + ` FROM event_sessions WHERE event_id = $1 AND session_date = $2`
	execer := sharedPersistence.Executor(ctx, r.pool)
	session, err := scanPgSession(execer.QueryRow(ctx, query, eventID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// FindByQRCode retrieves a session by its QR code.
func (r *PostgresSessionRepository) FindByQRCode(ctx context.Context, qrCode string) (*domain.EventSession, error) {
	return r.findOne(ctx, `SELECT `+pgSessionColumns+` FROM event_sessions WHERE qr_code = $1`, qrCode)
}

// ListByEvent retrieves all sessions of an event in date order.
func (r *PostgresSessionRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.EventSession, error) {
	query := `SELECT ` + pgSessionColumns + ` FROM event_sessions WHERE event_id = $1 ORDER BY session_date`

	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.EventSession
	for rows.Next() {
		session, err := scanPgSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *PostgresSessionRepository) findOne(ctx context.Context, query string, arg any) (*domain.EventSession, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	session, err := scanPgSession(execer.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func scanPgSession(row pgx.Row) (*domain.EventSession, error) {
	var (
		id, eventID        uuid.UUID
		sessionDate        time.Time
		number             int
		startTime, endTime string
		location, qrCode   string
		notes              string
		active             bool
		createdAt          time.Time
		updatedAt          time.Time
	)
	err := row.Scan(&id, &eventID, &sessionDate, &number, &startTime, &endTime,
		&location, &qrCode, &notes, &active, &createdAt, &updatedAt)
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

	return domain.RehydrateEventSession(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		eventID,
		sharedDomain.DateOf(sessionDate),
		number,
		start, end,
		location, qrCode, notes,
		active,
	), nil
}
