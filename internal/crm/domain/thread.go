package domain

import (
	"time"

	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

// Thread is an email conversation as seen by the inbox. The scoring callers
// treat it as read-only input; lifecycle belongs to the sync pipeline.
type Thread struct {
	ID             uuid.UUID
	WorkspaceID    uuid.UUID
	Subject        string
	Participant    string
	Classification value_objects.Classification
	Risk           value_objects.RiskLevel
	LastMessageAt  time.Time
}
