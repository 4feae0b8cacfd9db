// Package app wires configuration, storage, messaging, and handlers into a
// runnable container shared by the CLI and the worker.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gablehq/gable/internal/crm/application/commands"
	"github.com/gablehq/gable/internal/crm/application/queries"
	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/crm/infrastructure/cache"
	"github.com/gablehq/gable/internal/crm/infrastructure/persistence"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/gablehq/gable/internal/shared/infrastructure/database"
	"github.com/gablehq/gable/internal/shared/infrastructure/eventbus"
	"github.com/gablehq/gable/internal/shared/infrastructure/migrations"
	"github.com/gablehq/gable/pkg/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds every initialized dependency.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	WorkspaceID uuid.UUID

	db        *sql.DB
	pool      *pgxpool.Pool
	redisConn *redis.Client
	publisher eventbus.Publisher

	ThreadRepo  domain.ThreadRepository
	ContactRepo domain.ContactRepository
	DealRepo    domain.DealRepository
	ScoreRepo   domain.ScoreRepository

	PriorityEngine   *services.Engine
	EngagementEngine *services.EngagementEngine

	RankInboxHandler         *queries.RankInboxHandler
	MorningBriefHandler      *queries.MorningBriefHandler
	ContactEngagementHandler *queries.ContactEngagementHandler
	AssessDealRiskHandler    *queries.AssessDealRiskHandler
	ListScoresHandler        *queries.ListScoresHandler
	RecalculateScoresHandler *commands.RecalculateScoresHandler
}

// NewContainer initializes storage, messaging, engines, and handlers from
// configuration. Local mode needs nothing but the SQLite file; DATABASE_URL,
// REDIS_URL, and RABBITMQ_URL each upgrade one concern independently.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	workspaceID, err := uuid.Parse(cfg.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace id %q: %w", cfg.WorkspaceID, err)
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		WorkspaceID: workspaceID,
	}

	c.db, err = database.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunSQLiteMigrations(ctx, c.db); err != nil {
		c.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	c.ThreadRepo = persistence.NewSQLiteThreadRepository(c.db)
	c.ContactRepo = persistence.NewSQLiteContactRepository(c.db)
	c.DealRepo = persistence.NewSQLiteDealRepository(c.db)

	// Score snapshots can live in PostgreSQL for hosted deployments.
	if cfg.DatabaseURL != "" {
		c.pool, err = database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.ScoreRepo = persistence.NewPostgresScoreRepository(c.pool)
		logger.Info("score snapshots in PostgreSQL")
	} else {
		c.ScoreRepo = persistence.NewSQLiteScoreRepository(c.db)
	}

	var (
		warmCache commands.ScoreCache
		readCache queries.ScoreReader
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		c.redisConn = redis.NewClient(opts)
		scoreCache := cache.NewRedisScoreCache(c.redisConn, cfg.CacheTTL, logger)
		warmCache = scoreCache
		readCache = scoreCache
		logger.Info("score cache enabled", "ttl", cfg.CacheTTL)
	}

	if cfg.RabbitMQURL != "" {
		c.publisher, err = eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
	} else {
		c.publisher = eventbus.NewInProcessEventBus(logger)
	}

	priorityConfig := services.PriorityConfig{
		RiskWeight:           cfg.RiskWeight,
		AgeWeight:            cfg.AgeWeight,
		ClassificationWeight: cfg.ClassificationWeight,
	}
	if err := priorityConfig.Validate(); err != nil {
		logger.Warn("invalid priority weights, using defaults", "error", err)
		priorityConfig = services.DefaultPriorityConfig()
	}

	c.PriorityEngine = services.NewEngine(priorityConfig)
	c.EngagementEngine = services.NewEngagementEngine()

	c.RankInboxHandler = queries.NewRankInboxHandler(c.ThreadRepo, c.PriorityEngine)
	c.MorningBriefHandler = queries.NewMorningBriefHandler(c.ThreadRepo, c.PriorityEngine)
	c.ContactEngagementHandler = queries.NewContactEngagementHandler(c.ContactRepo, c.EngagementEngine)
	c.AssessDealRiskHandler = queries.NewAssessDealRiskHandler(c.DealRepo, c.PriorityEngine)
	c.ListScoresHandler = queries.NewListScoresHandler(c.ScoreRepo, readCache, logger)
	c.RecalculateScoresHandler = commands.NewRecalculateScoresHandler(
		c.ThreadRepo, c.ScoreRepo, c.PriorityEngine, c.publisher, warmCache, logger,
	)

	return c, nil
}

// Publisher exposes the event publisher for consumers that subscribe locally.
func (c *Container) Publisher() eventbus.Publisher {
	return c.publisher
}

// Close releases every held connection. Safe to call on a partially
// initialized container.
func (c *Container) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.Logger.Warn("closing publisher", "error", err)
		}
	}
	if c.redisConn != nil {
		if err := c.redisConn.Close(); err != nil {
			c.Logger.Warn("closing redis", "error", err)
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.Logger.Warn("closing database", "error", err)
		}
	}
}
