package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/gablehq/gable/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// ScoreCache warms a read-side cache with freshly computed scores. The redis
// adapter implements it; a nil cache disables warming.
type ScoreCache interface {
	WarmScores(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error
}

// RecalculateScoresCommand holds params.
type RecalculateScoresCommand struct {
	WorkspaceID uuid.UUID
}

// RecalculateScoresResult reports what the recalculation touched.
type RecalculateScoresResult struct {
	ScoredCount  int
	OverdueCount int
}

// RecalculateScoresHandler rebuilds the persisted score snapshot for a
// workspace: every thread is rescored, the previous snapshot is replaced, the
// cache is warmed, and interested consumers are notified. Event and cache
// failures are logged, not returned; the snapshot write is the operation that
// must succeed.
type RecalculateScoresHandler struct {
	threads   domain.ThreadRepository
	scores    domain.ScoreRepository
	engine    *services.Engine
	publisher eventbus.Publisher
	cache     ScoreCache
	logger    *slog.Logger
	now       func() time.Time
}

// NewRecalculateScoresHandler creates handler.
func NewRecalculateScoresHandler(
	threads domain.ThreadRepository,
	scores domain.ScoreRepository,
	engine *services.Engine,
	publisher eventbus.Publisher,
	cache ScoreCache,
	logger *slog.Logger,
) *RecalculateScoresHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecalculateScoresHandler{
		threads:   threads,
		scores:    scores,
		engine:    engine,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle executes the command.
func (h *RecalculateScoresHandler) Handle(ctx context.Context, cmd RecalculateScoresCommand) (*RecalculateScoresResult, error) {
	threads, err := h.threads.ListByWorkspace(ctx, cmd.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	inputs := make([]services.PriorityInput, len(threads))
	for i, thread := range threads {
		inputs[i] = services.PriorityInput{
			ID:             thread.ID,
			Risk:           thread.Risk,
			Classification: thread.Classification,
			ReferenceTime:  thread.LastMessageAt,
		}
	}

	ranked, err := h.engine.SortByPriority(inputs)
	if err != nil {
		return nil, fmt.Errorf("score threads: %w", err)
	}

	now := h.now()
	snapshot := make([]domain.PriorityScore, 0, len(ranked))
	result := &RecalculateScoresResult{}
	for _, item := range ranked {
		snapshot = append(snapshot, domain.PriorityScore{
			ID:                   uuid.New(),
			WorkspaceID:          cmd.WorkspaceID,
			EntityID:             item.Input.ID,
			EntityType:           domain.EntityTypeThread,
			Score:                item.Result.Score,
			RiskFactor:           item.Result.Factors.Risk,
			AgeFactor:            item.Result.Factors.Age,
			ClassificationFactor: item.Result.Factors.Classification,
			IsOverdue:            item.Result.IsOverdue,
			UpdatedAt:            now,
		})
		result.ScoredCount++
	}

	// Atomic swap: on failure the previous snapshot stays in place.
	if err := h.scores.ReplaceByWorkspace(ctx, cmd.WorkspaceID, snapshot); err != nil {
		return nil, fmt.Errorf("replace snapshot: %w", err)
	}

	for _, score := range snapshot {
		if score.IsOverdue {
			result.OverdueCount++
			h.publishOverdue(ctx, score, now)
		}
	}

	if h.cache != nil {
		if err := h.cache.WarmScores(ctx, cmd.WorkspaceID, snapshot); err != nil {
			h.logger.Warn("cache warm failed",
				"workspace_id", cmd.WorkspaceID,
				"error", err,
			)
		}
	}

	h.publishRecalculated(ctx, cmd.WorkspaceID, result, now)

	h.logger.Info("scores recalculated",
		"workspace_id", cmd.WorkspaceID,
		"scored", result.ScoredCount,
		"overdue", result.OverdueCount,
	)
	return result, nil
}

func (h *RecalculateScoresHandler) publishRecalculated(ctx context.Context, workspaceID uuid.UUID, result *RecalculateScoresResult, now time.Time) {
	if h.publisher == nil {
		return
	}
	payload, err := json.Marshal(eventbus.ScoresRecalculatedEvent{
		WorkspaceID:  workspaceID,
		ScoredCount:  result.ScoredCount,
		OverdueCount: result.OverdueCount,
		OccurredAt:   now,
	})
	if err != nil {
		h.logger.Error("marshal recalculated event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, eventbus.RoutingKeyScoresRecalculated, payload); err != nil {
		h.logger.Warn("publish recalculated event failed",
			"workspace_id", workspaceID,
			"error", err,
		)
	}
}

func (h *RecalculateScoresHandler) publishOverdue(ctx context.Context, score domain.PriorityScore, now time.Time) {
	if h.publisher == nil {
		return
	}
	payload, err := json.Marshal(eventbus.ScoreOverdueEvent{
		WorkspaceID: score.WorkspaceID,
		EntityID:    score.EntityID,
		EntityType:  string(score.EntityType),
		Score:       score.Score,
		OccurredAt:  now,
	})
	if err != nil {
		h.logger.Error("marshal overdue event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, eventbus.RoutingKeyScoreOverdue, payload); err != nil {
		h.logger.Warn("publish overdue event failed",
			"entity_id", score.EntityID,
			"error", err,
		)
	}
}
