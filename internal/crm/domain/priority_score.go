package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType labels which kind of record a persisted score belongs to.
type EntityType string

const (
	EntityTypeThread  EntityType = "thread"
	EntityTypeContact EntityType = "contact"
	EntityTypeDeal    EntityType = "deal"
)

// PriorityScore is a persisted scoring snapshot. The engine itself never
// writes these; the recalculation command does, so UI surfaces can read
// rankings without rescoring.
type PriorityScore struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	EntityID    uuid.UUID
	EntityType  EntityType

	Score                float64
	RiskFactor           float64
	AgeFactor            float64
	ClassificationFactor float64
	IsOverdue            bool

	UpdatedAt time.Time
}
