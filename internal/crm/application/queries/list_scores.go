package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/google/uuid"
)

// ScoreReader serves cached score snapshots and accepts refreshed ones. The
// redis adapter implements it; a nil reader means every read hits the
// repository.
type ScoreReader interface {
	GetScores(ctx context.Context, workspaceID uuid.UUID) ([]domain.PriorityScore, bool)
	WarmScores(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error
}

// ListScoresQuery holds params.
type ListScoresQuery struct {
	WorkspaceID uuid.UUID
}

// ScoreSnapshotDTO is the view model for one persisted score.
type ScoreSnapshotDTO struct {
	EntityID             uuid.UUID
	EntityType           string
	Score                float64
	RiskFactor           float64
	AgeFactor            float64
	ClassificationFactor float64
	IsOverdue            bool
	UpdatedAt            string
}

// ScoreSnapshotListDTO is the view model for a workspace snapshot.
type ScoreSnapshotListDTO struct {
	Scores    []ScoreSnapshotDTO
	FromCache bool
}

// ListScoresHandler returns the persisted score snapshot for a workspace,
// served from the cache when it holds one. A cache miss (including an open
// breaker or an unreachable Redis) falls back to the repository and re-warms
// the cache.
type ListScoresHandler struct {
	scores domain.ScoreRepository
	cache  ScoreReader
	logger *slog.Logger
}

// NewListScoresHandler creates handler.
func NewListScoresHandler(scores domain.ScoreRepository, cache ScoreReader, logger *slog.Logger) *ListScoresHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListScoresHandler{scores: scores, cache: cache, logger: logger}
}

// Handle executes the query.
func (h *ListScoresHandler) Handle(ctx context.Context, query ListScoresQuery) (*ScoreSnapshotListDTO, error) {
	if h.cache != nil {
		if cached, ok := h.cache.GetScores(ctx, query.WorkspaceID); ok {
			return &ScoreSnapshotListDTO{Scores: toScoreDTOs(cached), FromCache: true}, nil
		}
	}

	scores, err := h.scores.ListByWorkspace(ctx, query.WorkspaceID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.WarmScores(ctx, query.WorkspaceID, scores); err != nil {
			h.logger.Warn("cache warm failed",
				"workspace_id", query.WorkspaceID,
				"error", err,
			)
		}
	}

	return &ScoreSnapshotListDTO{Scores: toScoreDTOs(scores)}, nil
}

func toScoreDTOs(scores []domain.PriorityScore) []ScoreSnapshotDTO {
	dtos := make([]ScoreSnapshotDTO, len(scores))
	for i, score := range scores {
		dtos[i] = ScoreSnapshotDTO{
			EntityID:             score.EntityID,
			EntityType:           string(score.EntityType),
			Score:                score.Score,
			RiskFactor:           score.RiskFactor,
			AgeFactor:            score.AgeFactor,
			ClassificationFactor: score.ClassificationFactor,
			IsOverdue:            score.IsOverdue,
			UpdatedAt:            score.UpdatedAt.Format(time.RFC3339),
		}
	}
	return dtos
}
