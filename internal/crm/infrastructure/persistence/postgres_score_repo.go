package persistence

import (
	"context"
	"fmt"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresScoreRepository persists priority score snapshots using PostgreSQL.
// It serves hosted deployments; local mode uses the SQLite repository.
type PostgresScoreRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScoreRepository creates a new PostgresScoreRepository.
func NewPostgresScoreRepository(pool *pgxpool.Pool) *PostgresScoreRepository {
	return &PostgresScoreRepository{pool: pool}
}

// ReplaceByWorkspace swaps the workspace snapshot in one transaction. A failed
// insert rolls the whole replacement back, keeping the previous snapshot.
func (r *PostgresScoreRepository) ReplaceByWorkspace(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM priority_scores WHERE workspace_id = $1`,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	for _, score := range scores {
		_, err = tx.Exec(ctx, `
			INSERT INTO priority_scores (
				id, workspace_id, entity_id, entity_type,
				score, risk_factor, age_factor, classification_factor,
				is_overdue, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			score.ID,
			score.WorkspaceID,
			score.EntityID,
			string(score.EntityType),
			score.Score,
			score.RiskFactor,
			score.AgeFactor,
			score.ClassificationFactor,
			score.IsOverdue,
			score.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert score for %s: %w", score.EntityID, err)
		}
	}

	return tx.Commit(ctx)
}

// ListByWorkspace returns the persisted snapshot, highest score first.
func (r *PostgresScoreRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.PriorityScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, entity_id, entity_type,
			score, risk_factor, age_factor, classification_factor,
			is_overdue, updated_at
		FROM priority_scores
		WHERE workspace_id = $1
		ORDER BY score DESC`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []domain.PriorityScore
	for rows.Next() {
		var (
			score      domain.PriorityScore
			entityType string
		)
		err := rows.Scan(
			&score.ID, &score.WorkspaceID, &score.EntityID, &entityType,
			&score.Score, &score.RiskFactor, &score.AgeFactor, &score.ClassificationFactor,
			&score.IsOverdue, &score.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		score.EntityType = domain.EntityType(entityType)
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
