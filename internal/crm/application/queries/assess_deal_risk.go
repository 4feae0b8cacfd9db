package queries

import (
	"context"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/application/services"
	"github.com/google/uuid"
)

// UrgencyLevel bands a 0-100 priority score for the pipeline view.
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// AssessDealRiskQuery holds params.
type AssessDealRiskQuery struct {
	WorkspaceID uuid.UUID
}

// DealRiskDTO is the risk view for one deal.
type DealRiskDTO struct {
	DealID          uuid.UUID
	Title           string
	Side            string
	Stage           string
	Risk            string
	Score           float64
	Urgency         UrgencyLevel
	SuggestedAction string
	IsOverdue       bool
	LastActivityAt  string
}

// AssessDealRiskHandler scores every deal in the pipeline and bands each into
// an urgency level, ordered most urgent first.
type AssessDealRiskHandler struct {
	deals  domain.DealRepository
	engine *services.Engine
}

// NewAssessDealRiskHandler creates handler.
func NewAssessDealRiskHandler(deals domain.DealRepository, engine *services.Engine) *AssessDealRiskHandler {
	return &AssessDealRiskHandler{deals: deals, engine: engine}
}

// Handle executes the query.
func (h *AssessDealRiskHandler) Handle(ctx context.Context, query AssessDealRiskQuery) ([]DealRiskDTO, error) {
	deals, err := h.deals.ListByWorkspace(ctx, query.WorkspaceID)
	if err != nil {
		return nil, err
	}

	inputs := make([]services.PriorityInput, len(deals))
	byID := make(map[uuid.UUID]domain.Deal, len(deals))
	for i, deal := range deals {
		classification, err := deal.Classification()
		if err != nil {
			return nil, err
		}
		inputs[i] = services.PriorityInput{
			ID:             deal.ID,
			Risk:           deal.Risk,
			Classification: classification,
			ReferenceTime:  deal.LastActivityAt,
		}
		byID[deal.ID] = deal
	}

	ranked, err := h.engine.SortByPriority(inputs)
	if err != nil {
		return nil, err
	}

	dtos := make([]DealRiskDTO, len(ranked))
	for i, item := range ranked {
		deal := byID[item.Input.ID]
		urgency := determineUrgency(item.Result.Score)
		dtos[i] = DealRiskDTO{
			DealID:          deal.ID,
			Title:           deal.Title,
			Side:            string(deal.Side),
			Stage:           deal.Stage.String(),
			Risk:            deal.Risk.String(),
			Score:           item.Result.Score,
			Urgency:         urgency,
			SuggestedAction: suggestAction(urgency),
			IsOverdue:       item.Result.IsOverdue,
			LastActivityAt:  deal.LastActivityAt.Format(time.RFC3339),
		}
	}
	return dtos, nil
}

func determineUrgency(score float64) UrgencyLevel {
	switch {
	case score >= 75:
		return UrgencyCritical
	case score >= 55:
		return UrgencyHigh
	case score >= 35:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func suggestAction(urgency UrgencyLevel) string {
	switch urgency {
	case UrgencyCritical:
		return "Act today - this deal needs immediate attention"
	case UrgencyHigh:
		return "Follow up within 24 hours"
	case UrgencyMedium:
		return "Schedule a check-in this week"
	default:
		return "Monitor - no action needed right now"
	}
}
