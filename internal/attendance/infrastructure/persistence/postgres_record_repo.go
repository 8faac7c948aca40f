package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PostgresRecordRepository implements domain.RecordRepository using PostgreSQL.
type PostgresRecordRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRecordRepository creates a new PostgreSQL record repository.
func NewPostgresRecordRepository(pool *pgxpool.Pool) *PostgresRecordRepository {
	return &PostgresRecordRepository{pool: pool}
}

const pgRecordColumns = `id, attendee_id, occurrence_kind, occurrence_id, occurrence_date,
	checkpoint_id, recorded_at, status, device_fingerprint, ip_address,
	user_agent, gps_latitude, gps_longitude, gps_accuracy, created_at, updated_at`

// Save inserts a record. The unique indexes on (checkpoint, attendee,
// occurrence) surface as ErrDuplicateAttendance.
func (r *PostgresRecordRepository) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (
			id, attendee_id, occurrence_kind, occurrence_id, occurrence_date,
			checkpoint_id, recorded_at, status, device_fingerprint, ip_address,
			user_agent, gps_latitude, gps_longitude, gps_accuracy, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	meta := record.Metadata()
	var lat, lon, acc *float64
	if meta.Location != nil {
		lat = &meta.Location.Latitude
		lon = &meta.Location.Longitude
		acc = &meta.Location.Accuracy
	}

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		record.ID(),
		record.AttendeeID(),
		string(record.Occurrence().Kind()),
		record.Occurrence().TargetID(),
		record.Occurrence().Date().Time(),
		record.CheckpointID(),
		record.RecordedAt(),
		record.Status(),
		meta.DeviceFingerprint,
		meta.IPAddress,
		meta.UserAgent,
		lat, lon, acc,
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateAttendance
		}
		return err
	}
	return nil
}

// FindExisting retrieves the attendee's record for a checkpoint and occurrence.
func (r *PostgresRecordRepository) FindExisting(ctx context.Context, attendeeID uuid.UUID, checkpointID *uuid.UUID, occ eventsDomain.OccurrenceRef) (*domain.AttendanceRecord, error) {
	query := `
		SELECT ` + pgRecordColumns + `
		FROM attendance_records
		WHERE attendee_id = $1 AND occurrence_kind = $2 AND occurrence_id = $3
			AND checkpoint_id IS NOT DISTINCT FROM $4
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	record, err := scanPgRecord(execer.QueryRow(ctx, query,
		attendeeID, string(occ.Kind()), occ.TargetID(), checkpointID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ListByOccurrence retrieves all records for an occurrence, newest first.
func (r *PostgresRecordRepository) ListByOccurrence(ctx context.Context, occ eventsDomain.OccurrenceRef) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT ` + pgRecordColumns + `
		FROM attendance_records
		WHERE occurrence_kind = $1 AND occurrence_id = $2
		ORDER BY recorded_at DESC
	`
	return r.list(ctx, query, string(occ.Kind()), occ.TargetID())
}

// ListByAttendee retrieves an attendee's records, newest first.
func (r *PostgresRecordRepository) ListByAttendee(ctx context.Context, attendeeID uuid.UUID, limit int) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT ` + pgRecordColumns + `
		FROM attendance_records
		WHERE attendee_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, attendeeID, limit)
}

// CountByStatus aggregates record counts per status across an event's
// occurrences, its own and those of its sessions.
func (r *PostgresRecordRepository) CountByStatus(ctx context.Context, eventID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE (occurrence_kind = 'event' AND occurrence_id = $1)
			OR (occurrence_kind = 'session' AND occurrence_id IN (
				SELECT id FROM event_sessions WHERE event_id = $1
			))
		GROUP BY status
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PostgresRecordRepository) list(ctx context.Context, query string, args ...any) ([]*domain.AttendanceRecord, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.AttendanceRecord
	for rows.Next() {
		record, err := scanPgRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanPgRecord(row pgx.Row) (*domain.AttendanceRecord, error) {
	var (
		id, attendeeID       uuid.UUID
		occurrenceKind       string
		occurrenceID         uuid.UUID
		occurrenceDate       time.Time
		checkpointID         *uuid.UUID
		recordedAt           time.Time
		status               string
		fingerprint, ip, ua  string
		lat, lon, acc        *float64
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &attendeeID, &occurrenceKind, &occurrenceID, &occurrenceDate,
		&checkpointID, &recordedAt, &status, &fingerprint, &ip, &ua,
		&lat, &lon, &acc, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	date := sharedDomain.DateOf(occurrenceDate)
	var occ eventsDomain.OccurrenceRef
	if occurrenceKind == string(eventsDomain.OccurrenceSession) {
		occ = eventsDomain.SessionOccurrence(occurrenceID, date)
	} else {
		occ = eventsDomain.EventOccurrence(occurrenceID, date)
	}

	meta := domain.ScanMetadata{
		DeviceFingerprint: fingerprint,
		IPAddress:         ip,
		UserAgent:         ua,
	}
	if lat != nil && lon != nil {
		meta.Location = &domain.GeoFix{Latitude: *lat, Longitude: *lon}
		if acc != nil {
			meta.Location.Accuracy = *acc
		}
	}

	return domain.RehydrateAttendanceRecord(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		attendeeID, occ, checkpointID, recordedAt, status, meta,
	), nil
}
