package domain

import (
	"errors"
	"time"

	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

// DealSide says which side of the transaction the workspace represents.
type DealSide string

const (
	DealSideBuy  DealSide = "buy"
	DealSideSell DealSide = "sell"
)

var ErrUnknownDealSide = errors.New("unknown deal side")

// Deal is a transaction in the pipeline.
type Deal struct {
	ID             uuid.UUID
	WorkspaceID    uuid.UUID
	Title          string
	Side           DealSide
	Stage          value_objects.Stage
	Risk           value_objects.RiskLevel
	LastActivityAt time.Time
}

// Classification maps the deal side to the categorical factor used by the
// priority engine: a sell-side deal is a vendor relationship, a buy-side deal
// a buyer one.
func (d Deal) Classification() (value_objects.Classification, error) {
	switch d.Side {
	case DealSideSell:
		return value_objects.ClassificationVendor, nil
	case DealSideBuy:
		return value_objects.ClassificationBuyer, nil
	default:
		return value_objects.ClassificationNoise, ErrUnknownDealSide
	}
}
