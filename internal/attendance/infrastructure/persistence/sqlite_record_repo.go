package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRecordRepository implements domain.RecordRepository using SQLite.
type SQLiteRecordRepository struct {
	db *sql.DB
}

// NewSQLiteRecordRepository creates a new SQLite record repository.
func NewSQLiteRecordRepository(db *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

const sqliteRecordColumns = `id, attendee_id, occurrence_kind, occurrence_id, occurrence_date,
	checkpoint_id, recorded_at, status, device_fingerprint, ip_address,
	user_agent, gps_latitude, gps_longitude, gps_accuracy, created_at, updated_at`

// Save inserts a record. The unique indexes on (checkpoint, attendee,
// occurrence) surface as ErrDuplicateAttendance.
func (r *SQLiteRecordRepository) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)

	meta := record.Metadata()
	var checkpointID sql.NullString
	if record.CheckpointID() != nil {
		checkpointID = sql.NullString{String: record.CheckpointID().String(), Valid: true}
	}
	var lat, lon, acc sql.NullFloat64
	if meta.Location != nil {
		lat = sql.NullFloat64{Float64: meta.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: meta.Location.Longitude, Valid: true}
		acc = sql.NullFloat64{Float64: meta.Location.Accuracy, Valid: true}
	}

	_, err := querier.ExecContext(ctx, `
		INSERT INTO attendance_records (
			id, attendee_id, occurrence_kind, occurrence_id, occurrence_date,
			checkpoint_id, recorded_at, status, device_fingerprint, ip_address,
			user_agent, gps_latitude, gps_longitude, gps_accuracy, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID().String(),
		record.AttendeeID().String(),
		string(record.Occurrence().Kind()),
		record.Occurrence().TargetID().String(),
		record.Occurrence().Date().String(),
		checkpointID,
		record.RecordedAt().Format(time.RFC3339Nano),
		record.Status(),
		meta.DeviceFingerprint,
		meta.IPAddress,
		meta.UserAgent,
		lat, lon, acc,
		record.CreatedAt().Format(time.RFC3339Nano),
		record.UpdatedAt().Format(time.RFC3339Nano),
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) &&
			(sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT) {
			return domain.ErrDuplicateAttendance
		}
		return err
	}
	return nil
}

// FindExisting retrieves the attendee's record for a checkpoint and occurrence.
func (r *SQLiteRecordRepository) FindExisting(ctx context.Context, attendeeID uuid.UUID, checkpointID *uuid.UUID, occ eventsDomain.OccurrenceRef) (*domain.AttendanceRecord, error) {
	query := `
		SELECT ` + sqliteRecordColumns + `
		FROM attendance_records
		WHERE attendee_id = ? AND occurrence_kind = ? AND occurrence_id = ?
	`
	args := []any{attendeeID.String(), string(occ.Kind()), occ.TargetID().String()}
	if checkpointID != nil {
		query += ` AND checkpoint_id = ?`
		args = append(args, checkpointID.String())
	} else {
		query += ` AND checkpoint_id IS NULL`
	}

	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	record, err := scanSQLiteRecord(querier.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ListByOccurrence retrieves all records for an occurrence, newest first.
func (r *SQLiteRecordRepository) ListByOccurrence(ctx context.Context, occ eventsDomain.OccurrenceRef) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT ` + sqliteRecordColumns + `
		FROM attendance_records
		WHERE occurrence_kind = ? AND occurrence_id = ?
		ORDER BY recorded_at DESC
	`
	return r.list(ctx, query, string(occ.Kind()), occ.TargetID().String())
}

// ListByAttendee retrieves an attendee's records, newest first.
func (r *SQLiteRecordRepository) ListByAttendee(ctx context.Context, attendeeID uuid.UUID, limit int) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT ` + sqliteRecordColumns + `
		FROM attendance_records
		WHERE attendee_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?
	`
	return r.list(ctx, query, attendeeID.String(), limit)
}

// CountByStatus aggregates record counts per status across an event's
// occurrences, its own and those of its sessions.
func (r *SQLiteRecordRepository) CountByStatus(ctx context.Context, eventID uuid.UUID) (map[string]int, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE (occurrence_kind = 'event' AND occurrence_id = ?)
			OR (occurrence_kind = 'session' AND occurrence_id IN (
				SELECT id FROM event_sessions WHERE event_id = ?
			))
		GROUP BY status
	`, eventID.String(), eventID.String())
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

func (r *SQLiteRecordRepository) list(ctx context.Context, query string, args ...any) ([]*domain.AttendanceRecord, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.AttendanceRecord
	for rows.Next() {
		record, err := scanSQLiteRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanSQLiteRecord(scan func(dest ...any) error) (*domain.AttendanceRecord, error) {
	var (
		id, attendeeID       string
		occurrenceKind       string
		occurrenceID         string
		occurrenceDate       string
		checkpointID         sql.NullString
		recordedAt           string
		status               string
		fingerprint, ip, ua  string
		lat, lon, acc        sql.NullFloat64
		createdAt, updatedAt string
	)
	err := scan(&id, &attendeeID, &occurrenceKind, &occurrenceID, &occurrenceDate,
		&checkpointID, &recordedAt, &status, &fingerprint, &ip, &ua,
		&lat, &lon, &acc, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entityID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	attendee, err := uuid.Parse(attendeeID)
	if err != nil {
		return nil, err
	}
	target, err := uuid.Parse(occurrenceID)
	if err != nil {
		return nil, err
	}
	date, err := sharedDomain.ParseDate(occurrenceDate)
	if err != nil {
		return nil, err
	}
	recorded, err := time.Parse(time.RFC3339Nano, recordedAt)
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

	var occ eventsDomain.OccurrenceRef
	if occurrenceKind == string(eventsDomain.OccurrenceSession) {
		occ = eventsDomain.SessionOccurrence(target, date)
	} else {
		occ = eventsDomain.EventOccurrence(target, date)
	}

	var cpID *uuid.UUID
	if checkpointID.Valid {
		parsed, err := uuid.Parse(checkpointID.String)
		if err != nil {
			return nil, err
		}
		cpID = &parsed
	}

	meta := domain.ScanMetadata{
		DeviceFingerprint: fingerprint,
		IPAddress:         ip,
		UserAgent:         ua,
	}
	if lat.Valid && lon.Valid {
		meta.Location = &domain.GeoFix{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
			Accuracy:  acc.Float64,
		}
	}

	return domain.RehydrateAttendanceRecord(
		sharedDomain.RehydrateBaseEntity(entityID, created, updated),
		attendee, occ, cpID, recorded, status, meta,
	), nil
}
