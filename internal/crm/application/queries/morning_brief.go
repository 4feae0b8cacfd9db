package queries

import (
	"context"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/google/uuid"
)

// DefaultBriefLimit is how many threads the brief surfaces when the caller
// does not say otherwise.
const DefaultBriefLimit = 5

// MorningBriefQuery holds params.
type MorningBriefQuery struct {
	WorkspaceID uuid.UUID
	Limit       int
}

// MorningBriefDTO is the daily summary view.
type MorningBriefDTO struct {
	TopThreads   []RankedThreadDTO
	TotalThreads int
	OverdueCount int
	AverageScore float64
}

// MorningBriefHandler builds the daily attention summary: the top-N threads
// by priority plus workspace-wide overdue and average-score figures.
type MorningBriefHandler struct {
	rank *RankInboxHandler
}

// NewMorningBriefHandler creates handler.
func NewMorningBriefHandler(threads domain.ThreadRepository, engine *services.Engine) *MorningBriefHandler {
	return &MorningBriefHandler{rank: NewRankInboxHandler(threads, engine)}
}

// Handle executes the query.
func (h *MorningBriefHandler) Handle(ctx context.Context, query MorningBriefQuery) (*MorningBriefDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultBriefLimit
	}

	ranked, err := h.rank.Handle(ctx, RankInboxQuery{WorkspaceID: query.WorkspaceID})
	if err != nil {
		return nil, err
	}

	brief := &MorningBriefDTO{TotalThreads: len(ranked)}

	var total float64
	for _, item := range ranked {
		total += item.Score
		if item.IsOverdue {
			brief.OverdueCount++
		}
	}
	if len(ranked) > 0 {
		brief.AverageScore = total / float64(len(ranked))
	}

	if limit > len(ranked) {
		limit = len(ranked)
	}
	brief.TopThreads = ranked[:limit]

	return brief, nil
}
