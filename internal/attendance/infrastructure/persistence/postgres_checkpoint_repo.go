package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCheckpointRepository implements domain.CheckpointRepository using PostgreSQL.
type PostgresCheckpointRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCheckpointRepository creates a new PostgreSQL checkpoint repository.
func NewPostgresCheckpointRepository(pool *pgxpool.Pool) *PostgresCheckpointRepository {
	return &PostgresCheckpointRepository{pool: pool}
}

const pgCheckpointColumns = `id, owner_kind, owner_id, checkpoint_type, name, description,
	required_time, grace_minutes, applies_to, specific_date, is_required,
	sort_order, code, is_active, created_at, updated_at`

// Save upserts a checkpoint.
func (r *PostgresCheckpointRepository) Save(ctx context.Context, checkpoint *domain.Checkpoint) error {
	query := `
		INSERT INTO checkpoints (
			id, owner_kind, owner_id, checkpoint_type, name, description,
			required_time, grace_minutes, applies_to, specific_date, is_required,
			sort_order, code, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			required_time = EXCLUDED.required_time,
			grace_minutes = EXCLUDED.grace_minutes,
			applies_to = EXCLUDED.applies_to,
			specific_date = EXCLUDED.specific_date,
			is_required = EXCLUDED.is_required,
			sort_order = EXCLUDED.sort_order,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	var specificDate *time.Time
	if !checkpoint.SpecificDate().IsZero() {
		d := checkpoint.SpecificDate().Time()
		specificDate = &d
	}

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		checkpoint.ID(),
		string(checkpoint.Owner().Kind()),
		checkpoint.Owner().TargetID(),
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
		checkpoint.CreatedAt(),
		checkpoint.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a checkpoint by its ID.
func (r *PostgresCheckpointRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error) {
	return r.findOne(ctx, `SELECT `+pgCheckpointColumns+` FROM checkpoints WHERE id = $1`, id)
}

// FindByCode retrieves a checkpoint by its scan code.
func (r *PostgresCheckpointRepository) FindByCode(ctx context.Context, code string) (*domain.Checkpoint, error) {
	return r.findOne(ctx, `SELECT `+pgCheckpointColumns+` FROM checkpoints WHERE code = $1`, code)
}

// ListByOwner retrieves the owner's active checkpoints in configured order.
func (r *PostgresCheckpointRepository) ListByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Checkpoint, error) {
	query := `
		SELECT ` + pgCheckpointColumns + `
		FROM checkpoints
		WHERE owner_kind = $1 AND owner_id = $2 AND is_active = TRUE
		ORDER BY sort_order
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, string(owner.Kind()), owner.TargetID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkpoints []*domain.Checkpoint
	for rows.Next() {
		checkpoint, err := scanPgCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, checkpoint)
	}
	return checkpoints, rows.Err()
}

func (r *PostgresCheckpointRepository) findOne(ctx context.Context, query string, arg any) (*domain.Checkpoint, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	checkpoint, err := scanPgCheckpoint(execer.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return checkpoint, nil
}

func scanPgCheckpoint(row pgx.Row) (*domain.Checkpoint, error) {
	var (
		id, ownerID          uuid.UUID
		ownerKind            string
		checkpointType       string
		name, description    string
		requiredTime         string
		graceMinutes         int
		appliesTo            string
		specificDate         *time.Time
		required, active     bool
		order                int
		code                 string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &ownerKind, &ownerID, &checkpointType, &name, &description,
		&requiredTime, &graceMinutes, &appliesTo, &specificDate, &required,
		&order, &code, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	owner, err := domain.RehydrateOwner(domain.OwnerKind(ownerKind), ownerID)
	if err != nil {
		return nil, err
	}
	reqTime, err := sharedDomain.ParseTimeOfDay(requiredTime)
	if err != nil {
		return nil, err
	}
	var specific sharedDomain.Date
	if specificDate != nil {
		specific = sharedDomain.DateOf(*specificDate)
	}

	return domain.RehydrateCheckpoint(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		owner,
		domain.CheckpointType(checkpointType),
		name, description,
		reqTime, graceMinutes,
		domain.AppliesTo(appliesTo), specific,
		required, order, code, active,
	), nil
}
