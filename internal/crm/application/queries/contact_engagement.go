package queries

import (
	"context"
	"fmt"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

// ContactEngagementQuery holds params.
type ContactEngagementQuery struct {
	WorkspaceID uuid.UUID
	ContactID   uuid.UUID
}

// ContactEngagementDTO is the engagement view for one contact.
type ContactEngagementDTO struct {
	ContactID           uuid.UUID
	Name                string
	Role                string
	Stage               string
	Score               float64
	Momentum            int
	AdjustedTarget      float64
	IsOnTrack           bool
	MomentumExpectation string
	ContextLabel        string
	Tips                []string
}

// ContactEngagementHandler scores one contact's engagement.
type ContactEngagementHandler struct {
	contacts domain.ContactRepository
	engine   *services.EngagementEngine
}

// NewContactEngagementHandler creates handler.
func NewContactEngagementHandler(contacts domain.ContactRepository, engine *services.EngagementEngine) *ContactEngagementHandler {
	return &ContactEngagementHandler{contacts: contacts, engine: engine}
}

// Handle executes the query.
func (h *ContactEngagementHandler) Handle(ctx context.Context, query ContactEngagementQuery) (*ContactEngagementDTO, error) {
	contact, err := h.contacts.FindByID(ctx, query.WorkspaceID, query.ContactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("contact %s not found", query.ContactID)
	}

	score, err := h.engine.Score(engagementInput(*contact))
	if err != nil {
		return nil, err
	}

	return &ContactEngagementDTO{
		ContactID:           contact.ID,
		Name:                contact.Name,
		Role:                contact.Role.String(),
		Stage:               contact.Stage.String(),
		Score:               score.Score,
		Momentum:            score.Momentum,
		AdjustedTarget:      score.AdjustedTarget,
		IsOnTrack:           score.IsOnTrack,
		MomentumExpectation: score.MomentumExpectation,
		ContextLabel:        score.ContextLabel,
		Tips:                score.Tips,
	}, nil
}

// engagementInput maps a stored contact onto the scorer's input shape.
func engagementInput(contact domain.Contact) services.EngagementInput {
	return services.EngagementInput{
		ID:                  contact.ID,
		Role:                contact.Role,
		Stage:               contact.Stage,
		HasName:             contact.Name != "",
		HasEmail:            contact.Email != "",
		HasPhone:            contact.Phone != "",
		HasRole:             contact.Role != value_objects.RoleOther,
		RecentActivityCount: contact.RecentActivityCount,
		PriorActivityCount:  contact.PriorActivityCount,
		MessagesSent:        contact.MessagesSent,
		MessagesReceived:    contact.MessagesReceived,
		ViewingsAttended:    contact.ViewingsAttended,
		OffersMade:          contact.OffersMade,
		LastActivityAt:      contact.LastActivityAt,
		LastTransactionAt:   contact.LastTransactionAt,
	}
}
