// ABOUTME: Inbox item database operations
// ABOUTME: Classified inquiries are immutable apart from their handled flag
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/models"
)

const inboxColumns = `id, workspace_id, from_address, subject, preview, classification, recommended_action,
	handled, date, signals, rationale, full_text, created_at, updated_at`

func scanInboxItem(row rowScanner) (*models.InboxItem, error) {
	item := &models.InboxItem{}
	var signals, rationale, fullText sql.NullString

	err := row.Scan(
		&item.ID,
		&item.WorkspaceID,
		&item.FromAddress,
		&item.Subject,
		&item.Preview,
		&item.Classification,
		&item.RecommendedAction,
		&item.Handled,
		&item.Date,
		&signals,
		&rationale,
		&fullText,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Date = clock.Date(item.Date)
	if signals.Valid {
		item.Signals = json.RawMessage(signals.String)
	}
	if rationale.Valid {
		item.Rationale = &rationale.String
	}
	if fullText.Valid {
		item.FullText = &fullText.String
	}
	return item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func CreateInboxItem(ctx context.Context, q Querier, item *models.InboxItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.Date = clock.Date(item.Date)

	var signals sql.NullString
	if len(item.Signals) > 0 {
		signals = sql.NullString{String: string(item.Signals), Valid: true}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO inbox_items (id, workspace_id, from_address, subject, preview, classification, recommended_action,
			handled, date, signals, rationale, full_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID.String(), item.WorkspaceID.String(), item.FromAddress, item.Subject, item.Preview, item.Classification,
		item.RecommendedAction, item.Handled, item.Date, signals, nullString(item.Rationale), nullString(item.FullText),
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return wrap("create inbox item", err)
	}
	return nil
}

func GetInboxItem(ctx context.Context, q Querier, id uuid.UUID) (*models.InboxItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+inboxColumns+` FROM inbox_items WHERE id = ?`, id.String())
	item, err := scanInboxItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inbox item: %w", err)
	}
	return item, nil
}

// ListInbox returns the workspace's inbox with unhandled items first, newest first within
// each group. A non-nil handled restricts the listing to that state.
func ListInbox(ctx context.Context, q Querier, workspaceID uuid.UUID, handled *bool) ([]models.InboxItem, error) {
	query := `SELECT ` + inboxColumns + ` FROM inbox_items WHERE workspace_id = ?`
	args := []any{workspaceID.String()}
	if handled != nil {
		query += ` AND handled = ?`
		args = append(args, *handled)
	}
	query += ` ORDER BY handled ASC, date DESC, created_at DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []models.InboxItem
	for rows.Next() {
		item, err := scanInboxItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inbox item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inbox: %w", err)
	}
	return items, nil
}

func SetInboxHandled(ctx context.Context, q Querier, id uuid.UUID, handled bool) error {
	res, err := q.ExecContext(ctx, `
		UPDATE inbox_items SET handled = ?, updated_at = ? WHERE id = ?
	`, handled, time.Now().UTC(), id.String())
	if err != nil {
		return wrap("update inbox item", err)
	}
	return requireAffected(res)
}
