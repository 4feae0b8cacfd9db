package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gablehq/gable/internal/crm/domain"
	"github.com/gablehq/gable/internal/scoring/domain/value_objects"
	"github.com/google/uuid"
)

// ErrDealNotFound is returned when a deal is not found.
var ErrDealNotFound = errors.New("deal not found")

// SQLiteDealRepository handles persistence for deals using SQLite.
type SQLiteDealRepository struct {
	db *sql.DB
}

// NewSQLiteDealRepository creates a new SQLiteDealRepository.
func NewSQLiteDealRepository(db *sql.DB) *SQLiteDealRepository {
	return &SQLiteDealRepository{db: db}
}

// Save inserts or replaces a deal.
func (r *SQLiteDealRepository) Save(ctx context.Context, deal domain.Deal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deals (id, workspace_id, title, side, stage, risk, last_activity_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			side = excluded.side,
			stage = excluded.stage,
			risk = excluded.risk,
			last_activity_at = excluded.last_activity_at`,
		deal.ID.String(),
		deal.WorkspaceID.String(),
		deal.Title,
		string(deal.Side),
		deal.Stage.String(),
		deal.Risk.String(),
		deal.LastActivityAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListByWorkspace returns all deals in a workspace.
func (r *SQLiteDealRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Deal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, title, side, stage, risk, last_activity_at
		FROM deals
		WHERE workspace_id = ?
		ORDER BY last_activity_at DESC`,
		workspaceID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

// FindByID retrieves a deal by ID within a workspace.
func (r *SQLiteDealRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Deal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, title, side, stage, risk, last_activity_at
		FROM deals
		WHERE workspace_id = ? AND id = ?`,
		workspaceID.String(), id.String(),
	)

	deal, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return &deal, nil
}

func scanDeal(row rowScanner) (domain.Deal, error) {
	var (
		deal                                        domain.Deal
		id, workspaceID, side, stage, risk, lastAct string
	)
	if err := row.Scan(&id, &workspaceID, &deal.Title, &side, &stage, &risk, &lastAct); err != nil {
		return domain.Deal{}, err
	}

	var err error
	if deal.ID, err = uuid.Parse(id); err != nil {
		return domain.Deal{}, err
	}
	if deal.WorkspaceID, err = uuid.Parse(workspaceID); err != nil {
		return domain.Deal{}, err
	}
	deal.Side = domain.DealSide(side)
	if deal.Stage, err = value_objects.ParseStage(stage); err != nil {
		return domain.Deal{}, err
	}
	if deal.Risk, err = value_objects.ParseRiskLevel(risk); err != nil {
		return domain.Deal{}, err
	}
	if deal.LastActivityAt, err = time.Parse(time.RFC3339, lastAct); err != nil {
		return domain.Deal{}, err
	}
	return deal, nil
}
