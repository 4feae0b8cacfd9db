package eventbus

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for the scoring lifecycle.
const (
	RoutingKeyScoresRecalculated = "scores.recalculated"
	RoutingKeyScoreOverdue       = "scores.entity.overdue"
)

// ScoresRecalculatedEvent is published after a workspace's scores are rebuilt.
type ScoresRecalculatedEvent struct {
	WorkspaceID  uuid.UUID `json:"workspace_id"`
	ScoredCount  int       `json:"scored_count"`
	OverdueCount int       `json:"overdue_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ScoreOverdueEvent is published for each entity that crossed the staleness
// horizon during a recalculation.
type ScoreOverdueEvent struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	EntityID    uuid.UUID `json:"entity_id"`
	EntityType  string    `json:"entity_type"`
	Score       float64   `json:"score"`
	OccurredAt  time.Time `json:"occurred_at"`
}
