package queries

import (
	"context"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/google/uuid"
)

// RankInboxQuery holds params.
type RankInboxQuery struct {
	WorkspaceID uuid.UUID
}

// RankedThreadDTO is the view model for one ranked inbox thread.
type RankedThreadDTO struct {
	ThreadID             uuid.UUID
	Subject              string
	Participant          string
	Classification       string
	Risk                 string
	Score                float64
	RiskFactor           float64
	AgeFactor            float64
	ClassificationFactor float64
	IsOverdue            bool
	LastMessageAt        string
}

// RankInboxHandler scores every thread in a workspace and returns them ordered
// by priority, highest first.
type RankInboxHandler struct {
	threads domain.ThreadRepository
	engine  *services.Engine
}

// NewRankInboxHandler creates handler.
func NewRankInboxHandler(threads domain.ThreadRepository, engine *services.Engine) *RankInboxHandler {
	return &RankInboxHandler{threads: threads, engine: engine}
}

// Handle executes the query.
func (h *RankInboxHandler) Handle(ctx context.Context, query RankInboxQuery) ([]RankedThreadDTO, error) {
	threads, err := h.threads.ListByWorkspace(ctx, query.WorkspaceID)
	if err != nil {
		return nil, err
	}

	inputs := make([]services.PriorityInput, len(threads))
	byID := make(map[uuid.UUID]domain.Thread, len(threads))
	for i, thread := range threads {
		inputs[i] = services.PriorityInput{
			ID:             thread.ID,
			Risk:           thread.Risk,
			Classification: thread.Classification,
			ReferenceTime:  thread.LastMessageAt,
		}
		byID[thread.ID] = thread
	}

	ranked, err := h.engine.SortByPriority(inputs)
	if err != nil {
		return nil, err
	}

	dtos := make([]RankedThreadDTO, len(ranked))
	for i, item := range ranked {
		thread := byID[item.Input.ID]
		dtos[i] = RankedThreadDTO{
			ThreadID:             thread.ID,
			Subject:              thread.Subject,
			Participant:          thread.Participant,
			Classification:       thread.Classification.String(),
			Risk:                 thread.Risk.String(),
			Score:                item.Result.Score,
			RiskFactor:           item.Result.Factors.Risk,
			AgeFactor:            item.Result.Factors.Age,
			ClassificationFactor: item.Result.Factors.Classification,
			IsOverdue:            item.Result.IsOverdue,
			LastMessageAt:        thread.LastMessageAt.Format(time.RFC3339),
		}
	}
	return dtos, nil
}
