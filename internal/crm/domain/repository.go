package domain

import (
	"context"

	"github.com/google/uuid"
)

// ThreadRepository loads inbox threads for scoring.
type ThreadRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Thread, error)
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Thread, error)
}

// ContactRepository loads contacts for engagement scoring.
type ContactRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Contact, error)
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Contact, error)
}

// DealRepository loads deals for risk assessment.
type DealRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Deal, error)
	FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Deal, error)
}

// ScoreRepository persists scoring snapshots. ReplaceByWorkspace swaps the
// whole workspace snapshot atomically: either every row lands or the previous
// snapshot survives untouched.
type ScoreRepository interface {
	ReplaceByWorkspace(ctx context.Context, workspaceID uuid.UUID, scores []PriorityScore) error
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]PriorityScore, error)
}
