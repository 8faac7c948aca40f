// Package app wires configuration, storage, and handlers into a runnable
// application container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	attendanceCommands "github.com/felixgeelhaar/turnout/internal/attendance/application/commands"
	attendanceQueries "github.com/felixgeelhaar/turnout/internal/attendance/application/queries"
	attendanceDomain "github.com/felixgeelhaar/turnout/internal/attendance/domain"
	attendancePersistence "github.com/felixgeelhaar/turnout/internal/attendance/infrastructure/persistence"
	attendeeCommands "github.com/felixgeelhaar/turnout/internal/attendees/application/commands"
	attendeeQueries "github.com/felixgeelhaar/turnout/internal/attendees/application/queries"
	attendeesDomain "github.com/felixgeelhaar/turnout/internal/attendees/domain"
	attendeePersistence "github.com/felixgeelhaar/turnout/internal/attendees/infrastructure/persistence"
	eventCommands "github.com/felixgeelhaar/turnout/internal/events/application/commands"
	eventQueries "github.com/felixgeelhaar/turnout/internal/events/application/queries"
	eventsDomain "github.com/felixgeelhaar/turnout/internal/events/domain"
	"github.com/felixgeelhaar/turnout/internal/events/infrastructure/cache"
	eventPersistence "github.com/felixgeelhaar/turnout/internal/events/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/turnout/internal/shared/application"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/turnout/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/felixgeelhaar/turnout/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/turnout/pkg/config"
	"github.com/felixgeelhaar/turnout/pkg/observability"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite" // register the sqlite driver
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB       *pgxpool.Pool
	SQLiteDB *sql.DB
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories
	EventRepo      eventsDomain.EventRepository
	SessionRepo    eventsDomain.SessionRepository
	AttendeeRepo   attendeesDomain.Repository
	CheckpointRepo attendanceDomain.CheckpointRepository
	RecordRepo     attendanceDomain.RecordRepository
	OutboxRepo     outbox.Repository

	// Publishers
	EventPublisher eventbus.Publisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// QR cache
	QRCache *cache.QRCache

	// Event command handlers
	CreateEventHandler     *eventCommands.CreateEventHandler
	DeactivateEventHandler *eventCommands.DeactivateEventHandler
	RenewQRCodeHandler     *eventCommands.RenewQRCodeHandler

	// Event query handlers
	ListEventsHandler       *eventQueries.ListEventsHandler
	GetEventByQRCodeHandler *eventQueries.GetEventByQRCodeHandler
	EventLookup             *cache.CachedEventLookup

	// Attendee handlers
	RegisterAttendeeHandler *attendeeCommands.RegisterAttendeeHandler
	ImportAttendeesHandler  *attendeeCommands.ImportAttendeesHandler
	ValidateAttendeeHandler *attendeeQueries.ValidateAttendeeHandler
	ListAttendeesHandler    *attendeeQueries.ListAttendeesHandler

	// Attendance handlers
	RecordScanHandler            *attendanceCommands.RecordScanHandler
	CreateCheckpointHandler      *attendanceCommands.CreateCheckpointHandler
	ListCheckpointsHandler       *attendanceQueries.ListCheckpointsHandler
	AttendanceReportHandler      *attendanceQueries.AttendanceReportHandler
	ListOccurrenceRecordsHandler *attendanceQueries.ListOccurrenceRecordsHandler
	ListAttendeeRecordsHandler   *attendanceQueries.ListAttendeeRecordsHandler

	// Outbox processor
	OutboxProcessor *outbox.Processor

	// Health
	HealthRegistry *observability.HealthRegistry
}

// NewContainer creates and wires all dependencies. The database driver is
// detected from the configured URL; an empty URL selects local SQLite.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if database.DetectDriver(cfg.DatabaseURL) == database.DriverSQLite {
		return newSQLiteContainer(ctx, cfg, logger)
	}
	return newPostgresContainer(ctx, cfg, logger)
}

func newPostgresContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		DBDriver: database.DriverPostgres,
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	c.DB = pool
	logger.Info("connected to database", "driver", c.DBDriver)

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.connectRedis(ctx, cfg, logger)

	c.EventRepo = eventPersistence.NewPostgresEventRepository(pool)
	c.SessionRepo = eventPersistence.NewPostgresSessionRepository(pool)
	c.AttendeeRepo = attendeePersistence.NewPostgresAttendeeRepository(pool)
	c.CheckpointRepo = attendancePersistence.NewPostgresCheckpointRepository(pool)
	c.RecordRepo = attendancePersistence.NewPostgresRecordRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	if err := c.connectPublisher(cfg, logger); err != nil {
		pool.Close()
		return nil, err
	}

	c.wireHandlers(cfg, logger)
	c.registerHealthChecks()
	return c, nil
}

func newSQLiteContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		DBDriver: database.DriverSQLite,
	}

	path := cfg.SQLitePath
	if cfg.DatabaseURL != "" {
		path = database.SQLitePath(cfg.DatabaseURL)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent transactions.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	c.SQLiteDB = db
	logger.Info("connected to database", "driver", c.DBDriver, "path", path)

	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.connectRedis(ctx, cfg, logger)

	c.EventRepo = eventPersistence.NewSQLiteEventRepository(db)
	c.SessionRepo = eventPersistence.NewSQLiteSessionRepository(db)
	c.AttendeeRepo = attendeePersistence.NewSQLiteAttendeeRepository(db)
	c.CheckpointRepo = attendancePersistence.NewSQLiteCheckpointRepository(db)
	c.RecordRepo = attendancePersistence.NewSQLiteRecordRepository(db)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)

	if err := c.connectPublisher(cfg, logger); err != nil {
		db.Close()
		return nil, err
	}

	c.wireHandlers(cfg, logger)
	c.registerHealthChecks()
	return c, nil
}

// connectRedis connects the optional QR cache backend. A missing or
// unreachable Redis is tolerated; lookups fall through to the database.
func (c *Container) connectRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	if cfg.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid Redis URL, QR cache disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not available, QR cache disabled", "error", err)
		client.Close()
		return
	}

	c.RedisClient = client
	logger.Info("connected to Redis")
}

func (c *Container) connectPublisher(cfg *config.Config, logger *slog.Logger) error {
	if cfg.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
			return nil
		}
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	c.EventPublisher = publisher
	return nil
}

func (c *Container) wireHandlers(cfg *config.Config, logger *slog.Logger) {
	c.QRCache = cache.NewQRCache(c.RedisClient, cfg.QRCacheTTL, logger)

	// Event handlers
	c.CreateEventHandler = eventCommands.NewCreateEventHandler(c.EventRepo, c.SessionRepo, c.OutboxRepo, c.UnitOfWork)
	c.DeactivateEventHandler = eventCommands.NewDeactivateEventHandler(c.EventRepo, c.SessionRepo, c.QRCache, c.UnitOfWork)
	c.RenewQRCodeHandler = eventCommands.NewRenewQRCodeHandler(c.EventRepo, c.QRCache, c.UnitOfWork)
	c.ListEventsHandler = eventQueries.NewListEventsHandler(c.EventRepo)
	c.GetEventByQRCodeHandler = eventQueries.NewGetEventByQRCodeHandler(c.EventRepo, c.SessionRepo)
	c.EventLookup = cache.NewCachedEventLookup(c.GetEventByQRCodeHandler, c.QRCache)

	// Attendee handlers
	c.RegisterAttendeeHandler = attendeeCommands.NewRegisterAttendeeHandler(c.AttendeeRepo, c.OutboxRepo, c.UnitOfWork)
	c.ImportAttendeesHandler = attendeeCommands.NewImportAttendeesHandler(c.RegisterAttendeeHandler)
	c.ValidateAttendeeHandler = attendeeQueries.NewValidateAttendeeHandler(c.AttendeeRepo)
	c.ListAttendeesHandler = attendeeQueries.NewListAttendeesHandler(c.AttendeeRepo)

	// Attendance handlers
	c.RecordScanHandler = attendanceCommands.NewRecordScanHandler(
		c.EventRepo, c.SessionRepo, c.AttendeeRepo, c.CheckpointRepo, c.RecordRepo, c.OutboxRepo, c.UnitOfWork,
	)
	c.CreateCheckpointHandler = attendanceCommands.NewCreateCheckpointHandler(
		c.CheckpointRepo, c.EventRepo, c.SessionRepo, c.OutboxRepo, c.UnitOfWork,
	)
	c.ListCheckpointsHandler = attendanceQueries.NewListCheckpointsHandler(c.EventRepo, c.SessionRepo, c.CheckpointRepo)
	c.AttendanceReportHandler = attendanceQueries.NewAttendanceReportHandler(c.EventRepo, c.RecordRepo)
	c.ListOccurrenceRecordsHandler = attendanceQueries.NewListOccurrenceRecordsHandler(c.RecordRepo)
	c.ListAttendeeRecordsHandler = attendanceQueries.NewListAttendeeRecordsHandler(c.RecordRepo)

	// Outbox processor
	processorConfig := outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, logger)
}

func (c *Container) registerHealthChecks() {
	c.HealthRegistry = observability.NewHealthRegistry()

	c.HealthRegistry.Register("database", func(ctx context.Context) observability.HealthCheckResult {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		var err error
		switch c.DBDriver {
		case database.DriverPostgres:
			err = c.DB.Ping(ctx)
		default:
			err = c.SQLiteDB.PingContext(ctx)
		}
		if err != nil {
			return observability.HealthCheckResult{Status: observability.HealthStatusUnhealthy, Message: err.Error()}
		}
		return observability.HealthCheckResult{Status: observability.HealthStatusHealthy}
	})

	if c.RedisClient != nil {
		c.HealthRegistry.Register("redis", func(ctx context.Context) observability.HealthCheckResult {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()

			if err := c.RedisClient.Ping(ctx).Err(); err != nil {
				// The cache is optional, so a broken Redis only degrades.
				return observability.HealthCheckResult{Status: observability.HealthStatusDegraded, Message: err.Error()}
			}
			return observability.HealthCheckResult{Status: observability.HealthStatusHealthy}
		})
	}
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("PostgreSQL connection closed")
	}

	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		} else {
			c.Logger.Info("SQLite connection closed")
		}
	}
}
