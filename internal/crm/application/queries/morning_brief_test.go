package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func briefThread(workspaceID uuid.UUID, risk value_objects.RiskLevel, age time.Duration, now time.Time) domain.Thread {
	return domain.Thread{
		ID:             uuid.New(),
		WorkspaceID:    workspaceID,
		Subject:        "thread",
		Classification: value_objects.ClassificationBuyer,
		Risk:           risk,
		LastMessageAt:  now.Add(-age),
	}
}

func TestMorningBriefHandler_Handle(t *testing.T) {
	workspaceID := uuid.New()
	now := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

	t.Run("caps the top list at the limit but counts everything", func(t *testing.T) {
		repo := new(mockThreadRepo)
		handler := &MorningBriefHandler{rank: NewRankInboxHandler(repo, frozenEngine(now))}

		threads := []domain.Thread{
			briefThread(workspaceID, value_objects.RiskCritical, 72*time.Hour, now),
			briefThread(workspaceID, value_objects.RiskHigh, 50*time.Hour, now),
			briefThread(workspaceID, value_objects.RiskMedium, 10*time.Hour, now),
			briefThread(workspaceID, value_objects.RiskLow, time.Hour, now),
		}
		repo.On("ListByWorkspace", mock.Anything, workspaceID).Return(threads, nil)

		brief, err := handler.Handle(context.Background(), MorningBriefQuery{WorkspaceID: workspaceID, Limit: 2})

		require.NoError(t, err)
		require.Len(t, brief.TopThreads, 2)
		assert.Equal(t, 4, brief.TotalThreads)
		assert.Equal(t, 2, brief.OverdueCount)
		assert.Equal(t, threads[0].ID, brief.TopThreads[0].ThreadID)
		assert.Positive(t, brief.AverageScore)

		repo.AssertExpectations(t)
	})

	t.Run("defaults the limit", func(t *testing.T) {
		repo := new(mockThreadRepo)
		handler := NewMorningBriefHandler(repo, frozenEngine(now))

		threads := make([]domain.Thread, 0, DefaultBriefLimit+3)
		for i := 0; i < DefaultBriefLimit+3; i++ {
			threads = append(threads, briefThread(workspaceID, value_objects.RiskMedium, time.Hour, now))
		}
		repo.On("ListByWorkspace", mock.Anything, workspaceID).Return(threads, nil)

		brief, err := handler.Handle(context.Background(), MorningBriefQuery{WorkspaceID: workspaceID})

		require.NoError(t, err)
		assert.Len(t, brief.TopThreads, DefaultBriefLimit)
		assert.Equal(t, DefaultBriefLimit+3, brief.TotalThreads)

		repo.AssertExpectations(t)
	})

	t.Run("average is the mean of all scores", func(t *testing.T) {
		repo := new(mockThreadRepo)
		handler := NewMorningBriefHandler(repo, frozenEngine(now))

		// Two fresh threads with known risk levels; age factor is ~0 so the
		// score is risk*0.4 + class*0.3.
		a := briefThread(workspaceID, value_objects.RiskNone, 0, now)
		b := briefThread(workspaceID, value_objects.RiskCritical, 0, now)
		repo.On("ListByWorkspace", mock.Anything, workspaceID).Return([]domain.Thread{a, b}, nil)

		brief, err := handler.Handle(context.Background(), MorningBriefQuery{WorkspaceID: workspaceID, Limit: 1})

		require.NoError(t, err)
		scoreA := 0.0*0.4 + 70.0*0.3
		scoreB := 100.0*0.4 + 70.0*0.3
		assert.InDelta(t, (scoreA+scoreB)/2, brief.AverageScore, 1e-9)
		assert.Zero(t, brief.OverdueCount)

		repo.AssertExpectations(t)
	})

	t.Run("empty workspace yields a zero brief", func(t *testing.T) {
		repo := new(mockThreadRepo)
		handler := NewMorningBriefHandler(repo, frozenEngine(now))

		repo.On("ListByWorkspace", mock.Anything, workspaceID).Return([]domain.Thread{}, nil)

		brief, err := handler.Handle(context.Background(), MorningBriefQuery{WorkspaceID: workspaceID})

		require.NoError(t, err)
		assert.Empty(t, brief.TopThreads)
		assert.Zero(t, brief.TotalThreads)
		assert.Zero(t, brief.OverdueCount)
		assert.Zero(t, brief.AverageScore)

		repo.AssertExpectations(t)
	})

	t.Run("fails when repository error", func(t *testing.T) {
		repo := new(mockThreadRepo)
		handler := NewMorningBriefHandler(repo, frozenEngine(now))

		repo.On("ListByWorkspace", mock.Anything, workspaceID).Return(nil, errors.New("database error"))

		brief, err := handler.Handle(context.Background(), MorningBriefQuery{WorkspaceID: workspaceID})

		assert.Error(t, err)
		assert.Nil(t, brief)

		repo.AssertExpectations(t)
	})
}
