package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// SQLiteCheckpointRepository implements domain.CheckpointRepository using SQLite.
type SQLiteCheckpointRepository struct {
	db *sql.DB
}

// NewSQLiteCheckpointRepository creates a new SQLite checkpoint repository.
func NewSQLiteCheckpointRepository(db *sql.DB) *SQLiteCheckpointRepository {
	return &SQLiteCheckpointRepository{db: db}
}

const sqliteCheckpointColumns = `id, owner_kind, owner_id, checkpoint_type, name, description,
	required_time, grace_minutes, applies_to, specific_date, is_required,
	sort_order, code, is_active, created_at, updated_at`

// Save upserts a checkpoint.
func (r *SQLiteCheckpointRepository) Save(ctx context.Context, checkpoint *domain.Checkpoint) error {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)

	var specificDate sql.NullString
	if !checkpoint.SpecificDate().IsZero() {
		specificDate = sql.NullString{String: checkpoint.SpecificDate().String(), Valid: true}
	}

	_, err := querier.ExecContext(ctx, `
		INSERT INTO checkpoints (
			id, owner_kind, owner_id, checkpoint_type, name, description,
			required_time, grace_minutes, applies_to, specific_date, is_required,
			sort_order, code, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			required_time = excluded.required_time,
			grace_minutes = excluded.grace_minutes,
			applies_to = excluded.applies_to,
			specific_date = excluded.specific_date,
			is_required = excluded.is_required,
			sort_order = excluded.sort_order,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		checkpoint.ID().String(),
		string(checkpoint.Owner().Kind()),
		checkpoint.Owner().TargetID().String(),
		string(checkpoint.Type()),
		checkpoint.Name(),
		checkpoint.Description(),
		checkpoint.RequiredTime().String(),
		checkpoint.GraceMinutes(),
		string(checkpoint.AppliesTo()),
		specificDate,
		checkpoint.IsRequired(),
		checkpoint.Order(),
		checkpoint.Code(),
		checkpoint.IsActive(),
		checkpoint.CreatedAt().Format(time.RFC3339Nano),
		checkpoint.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves a checkpoint by its ID.
func (r *SQLiteCheckpointRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error) {
	return r.findOne(ctx, `SELECT `+sqliteCheckpointColumns+` FROM checkpoints WHERE id = ?`, id.String())
}

// FindByCode retrieves a checkpoint by its scan code.
func (r *SQLiteCheckpointRepository) FindByCode(ctx context.Context, code string) (*domain.Checkpoint, error) {
	return r.findOne(ctx, `SELECT `+sqliteCheckpointColumns+` FROM checkpoints WHERE code = ?`, code)
}

// ListByOwner retrieves the owner's active checkpoints in configured order.
func (r *SQLiteCheckpointRepository) ListByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Checkpoint, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `
		SELECT `+sqliteCheckpointColumns+`
		FROM checkpoints
		WHERE owner_kind = ? AND owner_id = ? AND is_active = 1
		ORDER BY sort_order
	`, string(owner.Kind()), owner.TargetID().String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkpoints []*domain.Checkpoint
	for rows.Next() {
		checkpoint, err := scanSQLiteCheckpoint(rows.Scan)
		if err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, checkpoint)
	}
	return checkpoints, rows.Err()
}

func (r *SQLiteCheckpointRepository) findOne(ctx context.Context, query string, arg any) (*domain.Checkpoint, error) {
	querier := sharedPersistence.SQLiteExecutor(ctx, r.db)
	checkpoint, err := scanSQLiteCheckpoint(querier.QueryRowContext(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return checkpoint, nil
}

func scanSQLiteCheckpoint(scan func(dest ...any) error) (*domain.Checkpoint, error) {
	var (
		id, ownerID          string
		ownerKind            string
		checkpointType       string
		name, description    string
		requiredTime         string
		graceMinutes         int
		appliesTo            string
		specificDate         sql.NullString
		required, active     bool
		order                int
		code                 string
		createdAt, updatedAt string
	)
	err := scan(&id, &ownerKind, &ownerID, &checkpointType, &name, &description,
		&requiredTime, &graceMinutes, &appliesTo, &specificDate, &required,
		&order, &code, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entityID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}
	owner, err := domain.RehydrateOwner(domain.OwnerKind(ownerKind), targetID)
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
	reqTime, err := sharedDomain.ParseTimeOfDay(requiredTime)
	if err != nil {
		return nil, err
	}
	var specific sharedDomain.Date
	if specificDate.Valid {
		if specific, err = sharedDomain.ParseDate(specificDate.String); err != nil {
			return nil, err
		}
	}

	return domain.RehydrateCheckpoint(
		sharedDomain.RehydrateBaseEntity(entityID, created, updated),
		owner,
		domain.CheckpointType(checkpointType),
		name, description,
		reqTime, graceMinutes,
		domain.AppliesTo(appliesTo), specific,
		required, order, code, active,
	), nil
}
