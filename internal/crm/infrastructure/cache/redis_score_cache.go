package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultScoreTTL bounds staleness between recalculation runs.
	DefaultScoreTTL = 15 * time.Minute

	breakerFailureThreshold = 5
	breakerTimeout          = 30 * time.Second
)

// RedisScoreCache keeps the latest score snapshot per workspace in Redis so UI
// reads skip the database. All operations run behind a circuit breaker: when
// Redis is down the cache reports a miss and callers fall back to recomputing.
type RedisScoreCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewRedisScoreCache creates a cache on an existing Redis client.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisScoreCache {
	if ttl <= 0 {
		ttl = DefaultScoreTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "redis-score-cache",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &RedisScoreCache{
		client:  client,
		ttl:     ttl,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

func scoreKey(workspaceID uuid.UUID) string {
	return fmt.Sprintf("gable:workspace:%s:scores", workspaceID)
}

// WarmScores stores the snapshot for a workspace, replacing any previous one.
func (c *RedisScoreCache) WarmScores(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = c.breaker.Execute(func() (any, error) {
		return nil, c.client.Set(ctx, scoreKey(workspaceID), payload, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("cache scores for %s: %w", workspaceID, err)
	}
	return nil
}

// GetScores returns the cached snapshot and whether it was present. An open
// breaker or a Redis error reads as a miss, never a failure.
func (c *RedisScoreCache) GetScores(ctx context.Context, workspaceID uuid.UUID) ([]domain.PriorityScore, bool) {
	result, err := c.breaker.Execute(func() (any, error) {
		payload, err := c.client.Get(ctx, scoreKey(workspaceID)).Bytes()
		if err != nil {
			if err == redis.Nil {
				return nil, nil
			}
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		c.logger.Debug("score cache unavailable",
			"workspace_id", workspaceID,
			"error", err,
		)
		return nil, false
	}
	if result == nil {
		return nil, false
	}

	var scores []domain.PriorityScore
	if err := json.Unmarshal(result.([]byte), &scores); err != nil {
		c.logger.Warn("corrupt score cache entry",
			"workspace_id", workspaceID,
			"error", err,
		)
		return nil, false
	}
	return scores, true
}
