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

// ErrContactNotFound is returned when a contact is not found.
var ErrContactNotFound = errors.New("contact not found")

// SQLiteContactRepository handles persistence for contacts using SQLite.
type SQLiteContactRepository struct {
	db *sql.DB
}

// NewSQLiteContactRepository creates a new SQLiteContactRepository.
func NewSQLiteContactRepository(db *sql.DB) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: db}
}

// Save inserts or replaces a contact.
func (r *SQLiteContactRepository) Save(ctx context.Context, contact domain.Contact) error {
	var lastTransaction any
	if contact.LastTransactionAt != nil {
		lastTransaction = contact.LastTransactionAt.UTC().Format(time.RFC3339)
	}

	var lastActivity string
	if !contact.LastActivityAt.IsZero() {
		lastActivity = contact.LastActivityAt.UTC().Format(time.RFC3339)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (
			id, workspace_id, name, email, phone, role, stage,
			recent_activity_count, prior_activity_count,
			messages_sent, messages_received, viewings_attended, offers_made,
			last_activity_at, last_transaction_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			role = excluded.role,
			stage = excluded.stage,
			recent_activity_count = excluded.recent_activity_count,
			prior_activity_count = excluded.prior_activity_count,
			messages_sent = excluded.messages_sent,
			messages_received = excluded.messages_received,
			viewings_attended = excluded.viewings_attended,
			offers_made = excluded.offers_made,
			last_activity_at = excluded.last_activity_at,
			last_transaction_at = excluded.last_transaction_at`,
		contact.ID.String(),
		contact.WorkspaceID.String(),
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Role.String(),
		contact.Stage.String(),
		contact.RecentActivityCount,
		contact.PriorActivityCount,
		contact.MessagesSent,
		contact.MessagesReceived,
		contact.ViewingsAttended,
		contact.OffersMade,
		lastActivity,
		lastTransaction,
	)
	return err
}

// ListByWorkspace returns all contacts in a workspace.
func (r *SQLiteContactRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, selectContact+` WHERE workspace_id = ? ORDER BY name`,
		workspaceID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

// FindByID retrieves a contact by ID within a workspace.
func (r *SQLiteContactRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Contact, error) {
	row := r.db.QueryRowContext(ctx, selectContact+` WHERE workspace_id = ? AND id = ?`,
		workspaceID.String(), id.String(),
	)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

const selectContact = `
	SELECT id, workspace_id, name, email, phone, role, stage,
		recent_activity_count, prior_activity_count,
		messages_sent, messages_received, viewings_attended, offers_made,
		last_activity_at, last_transaction_at
	FROM contacts`

func scanContact(row rowScanner) (domain.Contact, error) {
	var (
		contact                       domain.Contact
		id, workspaceID, role, stage  string
		lastActivity                  string
		lastTransaction               sql.NullString
	)
	err := row.Scan(
		&id, &workspaceID, &contact.Name, &contact.Email, &contact.Phone, &role, &stage,
		&contact.RecentActivityCount, &contact.PriorActivityCount,
		&contact.MessagesSent, &contact.MessagesReceived, &contact.ViewingsAttended, &contact.OffersMade,
		&lastActivity, &lastTransaction,
	)
	if err != nil {
		return domain.Contact{}, err
	}

	if contact.ID, err = uuid.Parse(id); err != nil {
		return domain.Contact{}, err
	}
	if contact.WorkspaceID, err = uuid.Parse(workspaceID); err != nil {
		return domain.Contact{}, err
	}
	if contact.Role, err = value_objects.ParseContactRole(role); err != nil {
		return domain.Contact{}, err
	}
	if contact.Stage, err = value_objects.ParseStage(stage); err != nil {
		return domain.Contact{}, err
	}
	if lastActivity != "" {
		if contact.LastActivityAt, err = time.Parse(time.RFC3339, lastActivity); err != nil {
			return domain.Contact{}, err
		}
	}
	if lastTransaction.Valid && lastTransaction.String != "" {
		parsed, err := time.Parse(time.RFC3339, lastTransaction.String)
		if err != nil {
			return domain.Contact{}, err
		}
		contact.LastTransactionAt = &parsed
	}
	return contact, nil
}
