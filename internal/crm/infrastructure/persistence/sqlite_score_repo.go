package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/google/uuid"
)

// SQLiteScoreRepository persists priority score snapshots using SQLite.
type SQLiteScoreRepository struct {
	db *sql.DB
}

// NewSQLiteScoreRepository creates a new SQLiteScoreRepository.
func NewSQLiteScoreRepository(db *sql.DB) *SQLiteScoreRepository {
	return &SQLiteScoreRepository{db: db}
}

// ReplaceByWorkspace swaps the workspace snapshot in one transaction. A failed
// insert rolls the whole replacement back, keeping the previous snapshot.
func (r *SQLiteScoreRepository) ReplaceByWorkspace(ctx context.Context, workspaceID uuid.UUID, scores []domain.PriorityScore) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM priority_scores WHERE workspace_id = ?`,
		workspaceID.String(),
	)
	if err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	for _, score := range scores {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO priority_scores (
				id, workspace_id, entity_id, entity_type,
				score, risk_factor, age_factor, classification_factor,
				is_overdue, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			score.ID.String(),
			score.WorkspaceID.String(),
			score.EntityID.String(),
			string(score.EntityType),
			score.Score,
			score.RiskFactor,
			score.AgeFactor,
			score.ClassificationFactor,
			boolToInt(score.IsOverdue),
			score.UpdatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert score for %s: %w", score.EntityID, err)
		}
	}

	return tx.Commit()
}

// ListByWorkspace returns the persisted snapshot, highest score first.
func (r *SQLiteScoreRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.PriorityScore, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, entity_id, entity_type,
			score, risk_factor, age_factor, classification_factor,
			is_overdue, updated_at
		FROM priority_scores
		WHERE workspace_id = ?
		ORDER BY score DESC`,
		workspaceID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []domain.PriorityScore
	for rows.Next() {
		var (
			score                               domain.PriorityScore
			id, workspaceID, entityID, entityTy string
			isOverdue                           int
			updatedAt                           string
		)
		err := rows.Scan(
			&id, &workspaceID, &entityID, &entityTy,
			&score.Score, &score.RiskFactor, &score.AgeFactor, &score.ClassificationFactor,
			&isOverdue, &updatedAt,
		)
		if err != nil {
			return nil, err
		}
		if score.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if score.WorkspaceID, err = uuid.Parse(workspaceID); err != nil {
			return nil, err
		}
		if score.EntityID, err = uuid.Parse(entityID); err != nil {
			return nil, err
		}
		score.EntityType = domain.EntityType(entityTy)
		score.IsOverdue = isOverdue != 0
		if score.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
