package domain

import (
	"time"

	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

// Contact is a CRM contact with the activity counters the engagement scorer
// reads. Counters are maintained by the activity pipeline; this model never
// mutates them.
type Contact struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        string
	Email       string
	Phone       string
	Role        value_objects.ContactRole
	Stage       value_objects.Stage

	RecentActivityCount int
	PriorActivityCount  int
	MessagesSent        int
	MessagesReceived    int
	ViewingsAttended    int
	OffersMade          int

	LastActivityAt    time.Time
	LastTransactionAt *time.Time
}
