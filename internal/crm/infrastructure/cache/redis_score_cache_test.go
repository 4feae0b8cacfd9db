package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableCache points at a port nothing listens on, so every operation
// fails at dial time.
func unreachableCache(t *testing.T) *RedisScoreCache {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
		MaxRetries:   -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedisScoreCache(client, time.Minute, logger)
}

func testScores(workspaceID uuid.UUID) []domain.PriorityScore {
	return []domain.PriorityScore{{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		EntityID:    uuid.New(),
		EntityType:  domain.EntityTypeThread,
		Score:       61,
		UpdatedAt:   time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC),
	}}
}

func TestRedisScoreCache_DegradesWhenRedisUnreachable(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	cache := unreachableCache(t)

	t.Run("reads report a miss, not an error", func(t *testing.T) {
		scores, ok := cache.GetScores(ctx, workspaceID)
		assert.False(t, ok)
		assert.Nil(t, scores)
	})

	t.Run("writes surface the error to the caller", func(t *testing.T) {
		err := cache.WarmScores(ctx, workspaceID, testScores(workspaceID))
		assert.Error(t, err)
	})
}

func TestRedisScoreCache_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	cache := unreachableCache(t)

	for i := 0; i < breakerFailureThreshold; i++ {
		require.Error(t, cache.WarmScores(ctx, workspaceID, testScores(workspaceID)))
	}

	// The breaker is open now: writes fail fast without dialing.
	err := cache.WarmScores(ctx, workspaceID, testScores(workspaceID))
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	// Reads through an open breaker still read as a plain miss.
	scores, ok := cache.GetScores(ctx, workspaceID)
	assert.False(t, ok)
	assert.Nil(t, scores)
}

func TestNewRedisScoreCache_DefaultTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisScoreCache(client, 0, nil)
	assert.Equal(t, DefaultScoreTTL, cache.ttl)
}
