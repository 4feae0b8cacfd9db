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

// ErrThreadNotFound is returned when a thread is not found.
var ErrThreadNotFound = errors.New("thread not found")

// SQLiteThreadRepository handles persistence for threads using SQLite.
type SQLiteThreadRepository struct {
	db *sql.DB
}

// NewSQLiteThreadRepository creates a new SQLiteThreadRepository.
func NewSQLiteThreadRepository(db *sql.DB) *SQLiteThreadRepository {
	return &SQLiteThreadRepository{db: db}
}

// Save inserts or replaces a thread.
func (r *SQLiteThreadRepository) Save(ctx context.Context, thread domain.Thread) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO threads (id, workspace_id, subject, participant, classification, risk, last_message_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			participant = excluded.participant,
			classification = excluded.classification,
			risk = excluded.risk,
			last_message_at = excluded.last_message_at`,
		thread.ID.String(),
		thread.WorkspaceID.String(),
		thread.Subject,
		thread.Participant,
		thread.Classification.String(),
		thread.Risk.String(),
		thread.LastMessageAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListByWorkspace returns all threads in a workspace, newest message first.
func (r *SQLiteThreadRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Thread, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, subject, participant, classification, risk, last_message_at
		FROM threads
		WHERE workspace_id = ?
		ORDER BY last_message_at DESC`,
		workspaceID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}

// FindByID retrieves a thread by ID within a workspace.
func (r *SQLiteThreadRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Thread, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, subject, participant, classification, risk, last_message_at
		FROM threads
		WHERE workspace_id = ? AND id = ?`,
		workspaceID.String(), id.String(),
	)

	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (domain.Thread, error) {
	var (
		thread                                            domain.Thread
		id, workspaceID, classification, risk, lastMessage string
	)
	if err := row.Scan(&id, &workspaceID, &thread.Subject, &thread.Participant, &classification, &risk, &lastMessage); err != nil {
		return domain.Thread{}, err
	}

	var err error
	if thread.ID, err = uuid.Parse(id); err != nil {
		return domain.Thread{}, err
	}
	if thread.WorkspaceID, err = uuid.Parse(workspaceID); err != nil {
		return domain.Thread{}, err
	}
	if thread.Classification, err = value_objects.ParseClassification(classification); err != nil {
		return domain.Thread{}, err
	}
	if thread.Risk, err = value_objects.ParseRiskLevel(risk); err != nil {
		return domain.Thread{}, err
	}
	if thread.LastMessageAt, err = time.Parse(time.RFC3339, lastMessage); err != nil {
		return domain.Thread{}, err
	}
	return thread, nil
}
