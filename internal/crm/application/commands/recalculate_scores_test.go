package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockThreadRepo is a mock implementation of domain.ThreadRepository.
type mockThreadRepo struct {
	mock.Mock
}

func (m *mockThreadRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Thread, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Thread), args.Error(1)
}

func (m *mockThreadRepo) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Thread, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Thread), args.Error(1)
}

// mockScoreRepo is a mock implementation of domain.ScoreRepository.
type mockScoreRepo struct {
	mock.Mock
}

func (m *mockScoreRepo) ReplaceByWorkspace(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error {
	args := m.Called(ctx, workspaceID, scores)
	return args.Error(0)
}

func (m *mockScoreRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.PriorityScore, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriorityScore), args.Error(1)
}

// mockPublisher is a mock implementation of eventbus.Publisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// mockScoreCache is a mock implementation of ScoreCache.
type mockScoreCache struct {
	mock.Mock
}

func (m *mockScoreCache) WarmScores(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error {
	args := m.Called(ctx, workspaceID, scores)
	return args.Error(0)
}

func frozenEngine(now time.Time) *services.Engine {
	return services.NewEngineWithClock(services.DefaultPriorityConfig(), func() time.Time { return now })
}

func TestRecalculateScoresHandler_Handle(t *testing.T) {
	workspaceID := uuid.New()
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	freshThread := func(risk value_objects.RiskLevel, age time.Duration) domain.Thread {
		return domain.Thread{
			ID:             uuid.New(),
			WorkspaceID:    workspaceID,
			Classification: value_objects.ClassificationBuyer,
			Risk:           risk,
			LastMessageAt:  now.Add(-age),
		}
	}

	t.Run("rebuilds the snapshot and publishes events", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		publisher := new(mockPublisher)
		cache := new(mockScoreCache)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), publisher, cache, nil)

		overdue := freshThread(value_objects.RiskCritical, 60*time.Hour)
		fresh := freshThread(value_objects.RiskLow, time.Hour)
		threads.On("ListByWorkspace", mock.Anything, workspaceID).
			Return([]domain.Thread{fresh, overdue}, nil)

		var saved []domain.PriorityScore
		scores.On("ReplaceByWorkspace", mock.Anything, workspaceID, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(2).([]domain.PriorityScore)
			}).Return(nil).Once()

		publisher.On("Publish", mock.Anything, "scores.entity.overdue", mock.Anything).Return(nil).Once()
		publisher.On("Publish", mock.Anything, "scores.recalculated", mock.Anything).Return(nil).Once()
		cache.On("WarmScores", mock.Anything, workspaceID, mock.Anything).Return(nil).Once()

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		require.NoError(t, err)
		assert.Equal(t, 2, result.ScoredCount)
		assert.Equal(t, 1, result.OverdueCount)

		require.Len(t, saved, 2)
		// Saved in ranked order: the overdue critical thread first.
		assert.Equal(t, overdue.ID, saved[0].EntityID)
		assert.True(t, saved[0].IsOverdue)
		assert.Equal(t, domain.EntityTypeThread, saved[0].EntityType)
		assert.Equal(t, fresh.ID, saved[1].EntityID)
		assert.False(t, saved[1].IsOverdue)
		assert.Greater(t, saved[0].Score, saved[1].Score)

		threads.AssertExpectations(t)
		scores.AssertExpectations(t)
		publisher.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache and publish failures do not fail the command", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		publisher := new(mockPublisher)
		cache := new(mockScoreCache)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), publisher, cache, nil)

		threads.On("ListByWorkspace", mock.Anything, workspaceID).
			Return([]domain.Thread{freshThread(value_objects.RiskMedium, time.Hour)}, nil)
		scores.On("ReplaceByWorkspace", mock.Anything, workspaceID, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("broker down"))
		cache.On("WarmScores", mock.Anything, workspaceID, mock.Anything).
			Return(errors.New("redis down"))

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		require.NoError(t, err)
		assert.Equal(t, 1, result.ScoredCount)
	})

	t.Run("works without publisher or cache", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), nil, nil, nil)

		threads.On("ListByWorkspace", mock.Anything, workspaceID).
			Return([]domain.Thread{freshThread(value_objects.RiskHigh, 50*time.Hour)}, nil)
		scores.On("ReplaceByWorkspace", mock.Anything, workspaceID, mock.Anything).Return(nil)

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		require.NoError(t, err)
		assert.Equal(t, 1, result.ScoredCount)
		assert.Equal(t, 1, result.OverdueCount)
	})

	t.Run("empty workspace still clears the snapshot", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		publisher := new(mockPublisher)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), publisher, nil, nil)

		threads.On("ListByWorkspace", mock.Anything, workspaceID).Return([]domain.Thread{}, nil)
		scores.On("ReplaceByWorkspace", mock.Anything, workspaceID, mock.Anything).
			Run(func(args mock.Arguments) {
				assert.Empty(t, args.Get(2).([]domain.PriorityScore))
			}).Return(nil).Once()
		publisher.On("Publish", mock.Anything, "scores.recalculated", mock.Anything).Return(nil).Once()

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		require.NoError(t, err)
		assert.Zero(t, result.ScoredCount)
		assert.Zero(t, result.OverdueCount)

		scores.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("fails when listing threads fails", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), nil, nil, nil)

		threads.On("ListByWorkspace", mock.Anything, workspaceID).
			Return(nil, errors.New("database error"))

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("fails when the snapshot write fails", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		publisher := new(mockPublisher)
		cache := new(mockScoreCache)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), publisher, cache, nil)

		threads.On("ListByWorkspace", mock.Anything, workspaceID).
			Return([]domain.Thread{
				freshThread(value_objects.RiskCritical, 60*time.Hour),
				freshThread(value_objects.RiskLow, time.Hour),
			}, nil)
		scores.On("ReplaceByWorkspace", mock.Anything, workspaceID, mock.Anything).
			Return(errors.New("disk full"))

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		assert.Error(t, err)
		assert.Nil(t, result)

		// Nothing downstream of the failed swap runs: no events, no warming.
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "WarmScores", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails fast on an unknown risk level", func(t *testing.T) {
		threads := new(mockThreadRepo)
		scores := new(mockScoreRepo)
		handler := NewRecalculateScoresHandler(threads, scores, frozenEngine(now), nil, nil, nil)

		broken := domain.Thread{
			ID:             uuid.New(),
			WorkspaceID:    workspaceID,
			Classification: value_objects.ClassificationBuyer,
			Risk:           value_objects.RiskLevel(9),
			LastMessageAt:  now,
		}
		threads.On("ListByWorkspace", mock.Anything, workspaceID).
			Return([]domain.Thread{broken}, nil)

		result, err := handler.Handle(context.Background(), RecalculateScoresCommand{WorkspaceID: workspaceID})

		require.Error(t, err)
		assert.ErrorIs(t, err, value_objects.ErrUnknownRiskLevel)
		assert.Nil(t, result)

		scores.AssertNotCalled(t, "ReplaceByWorkspace", mock.Anything, mock.Anything, mock.Anything)
	})
}
