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

// SQLiteSessionRepository implements domain.SessionRepository using SQLite.
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSQLiteSessionRepository creates a new SQLite session repository.
func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

const sqliteSessionColumns = `id, event_id, session_date, session_number, start_time,
	end_time, location, qr_code, notes, is_active, created_at, updated_at`

// SaveBatch upserts a batch of sessions.
func (r *SQLiteSessionRepository) SaveBatch(ctx context.Context, sessions []*domain.EventSession) error {
	if len(sessions) == 0 {
		return nil
	}

	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	for _, s := range sessions {
		_, err := querier.ExecContext(ctx, `
			INSERT INTO event_sessions (
				id, event_id, session_date, session_number, start_time,
				end_time, location, qr_code, notes, is_active, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				location = excluded.location,
				notes = excluded.notes,
				is_active = excluded.is_active,
				updated_at = excluded.updated_at
		`,
			s.ID().String(),
			s.EventID().String(),
			s.SessionDate().String(),
			s.Number(),
			s.StartTime().String(),
			s.EndTime().String(),
			s.Location(),
			s.QRCode(),
			s.Notes(),
			s.IsActive(),
			s.CreatedAt().Format(time.RFC3339Nano),
			s.UpdatedAt().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves a session by its ID.
func (r *SQLiteSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.EventSession, error) {
	return r.findOne(ctx, `SELECT `+sqliteSessionColumns+` FROM event_sessions WHERE id = ?`, id.String())
}

// FindByEventAndDate retrieves the session of an event on one date.
func (r *SQLiteSessionRepository) FindByEventAndDate(ctx context.Context, eventID uuid.UUID, date sharedDomain.Date) (*domain.EventSession, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	session, err := scanSQLiteSession(querier.QueryRowContext(ctx,
		`SELECT `+sqliteSessionColumns+` FROM event_sessions WHERE event_id = ? AND session_date = ?`,
		eventID.String(), date.String()).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// FindByQRCode retrieves a session by its QR code.
func (r *SQLiteSessionRepository) FindByQRCode(ctx context.Context, qrCode string) (*domain.EventSession, error) {
	return r.findOne(ctx, `SELECT `+sqliteSessionColumns+` FROM event_sessions WHERE qr_code = ?`, qrCode)
}

// ListByEvent retrieves all sessions of an event in date order.
func (r *SQLiteSessionRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.EventSession, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := querier.QueryContext(ctx,
		`SELECT `+sqliteSessionColumns+` FROM event_sessions WHERE event_id = ? ORDER BY session_date`,
		eventID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.EventSession
	for rows.Next() {
		session, err := scanSQLiteSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *SQLiteSessionRepository) findOne(ctx context.Context, query string, arg any) (*domain.EventSession, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	session, err := scanSQLiteSession(querier.QueryRowContext(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func scanSQLiteSession(scan func(dest ...any) error) (*domain.EventSession, error) {
	var (
		id, eventID          string
		sessionDate          string
		number               int
		startTime, endTime   string
		location, qrCode     string
		notes                string
		active               bool
		createdAt, updatedAt string
	)
	err := scan(&id, &eventID, &sessionDate, &number, &startTime, &endTime,
		&location, &qrCode, &notes, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entityID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	parentID, err := uuid.Parse(eventID)
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
	date, err := sharedDomain.ParseDate(sessionDate)
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
		sharedDomain.RehydrateBaseEntity(entityID, created, updated),
		parentID,
		date,
		number,
		start, end,
		location, qrCode, notes,
		active,
	), nil
}
