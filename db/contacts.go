// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD, workspace-scoped email lookup and last-activity tracking
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/models"
)

const contactColumns = `id, workspace_id, name, email, phone, tags, status, source, trust_signals,
	next_action, next_action_date, last_activity, credibility_score, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	c := &models.Contact{}
	var tags, signals string
	var nextActionDate sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.WorkspaceID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&tags,
		&c.Status,
		&c.Source,
		&signals,
		&c.NextAction,
		&nextActionDate,
		&c.LastActivity,
		&c.CredibilityScore,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(signals), &c.TrustSignals); err != nil {
		return nil, fmt.Errorf("failed to decode trust signals: %w", err)
	}
	if nextActionDate.Valid {
		d := clock.Date(nextActionDate.Time)
		c.NextActionDate = &d
	}
	c.LastActivity = clock.Date(c.LastActivity)
	return c, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return clock.Date(*t)
}

// CreateContact inserts c, assigning an id when it has none. A second contact with the
// same normalized email in the same workspace fails with ErrConflict.
func CreateContact(ctx context.Context, q Querier, c *models.Contact) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = models.StatusLead
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.LastActivity = clock.Date(c.LastActivity)

	tags, err := encodeList(c.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	signals, err := encodeList(c.TrustSignals)
	if err != nil {
		return fmt.Errorf("failed to encode trust signals: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO contacts (id, workspace_id, name, email, email_normalized, phone, tags, status, source,
			trust_signals, next_action, next_action_date, last_activity, credibility_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID.String(), c.WorkspaceID.String(), c.Name, c.Email, normalizeEmail(c.Email), c.Phone, tags, c.Status,
		c.Source, signals, c.NextAction, nullDate(c.NextActionDate), c.LastActivity, c.CredibilityScore,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrap("create contact", err)
	}
	return nil
}

func GetContact(ctx context.Context, q Querier, id uuid.UUID) (*models.Contact, error) {
	row := q.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id.String())
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// FindContactByEmail looks up a contact by case-insensitive, trimmed email within a workspace.
func FindContactByEmail(ctx context.Context, q Querier, workspaceID uuid.UUID, email string) (*models.Contact, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}

	row := q.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts WHERE workspace_id = ? AND email_normalized = ?
	`, workspaceID.String(), normalized)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by email: %w", err)
	}
	return c, nil
}

// FindContacts lists contacts in a workspace, optionally filtered by a name or email
// substring, most recently active first.
func FindContacts(ctx context.Context, q Querier, workspaceID uuid.UUID, query string, limit int) ([]models.Contact, error) {
	sqlQuery := `SELECT ` + contactColumns + ` FROM contacts WHERE workspace_id = ?`
	args := []any{workspaceID.String()}

	if query = strings.TrimSpace(query); query != "" {
		sqlQuery += ` AND (LOWER(name) LIKE ? OR email_normalized LIKE ?)`
		pattern := "%" + strings.ToLower(query) + "%"
		args = append(args, pattern, pattern)
	}

	sqlQuery += ` ORDER BY last_activity DESC, name`
	if limit > 0 {
		sqlQuery += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := q.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact writes the mutable fields of c. workspace_id is never changed.
func UpdateContact(ctx context.Context, q Querier, c *models.Contact) error {
	c.UpdatedAt = time.Now().UTC()

	tags, err := encodeList(c.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	signals, err := encodeList(c.TrustSignals)
	if err != nil {
		return fmt.Errorf("failed to encode trust signals: %w", err)
	}

	res, err := q.ExecContext(ctx, `
		UPDATE contacts
		SET name = ?, email = ?, email_normalized = ?, phone = ?, tags = ?, status = ?, source = ?,
			trust_signals = ?, next_action = ?, next_action_date = ?, credibility_score = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, c.Email, normalizeEmail(c.Email), c.Phone, tags, c.Status, c.Source,
		signals, c.NextAction, nullDate(c.NextActionDate), c.CredibilityScore, c.UpdatedAt, c.ID.String())
	if err != nil {
		return wrap("update contact", err)
	}
	return requireAffected(res)
}

// TouchContact sets the contact's last activity date.
func TouchContact(ctx context.Context, q Querier, id uuid.UUID, date time.Time) error {
	res, err := q.ExecContext(ctx, `
		UPDATE contacts SET last_activity = ?, updated_at = ? WHERE id = ?
	`, clock.Date(date), time.Now().UTC(), id.String())
	if err != nil {
		return wrap("touch contact", err)
	}
	return requireAffected(res)
}

// DeleteContact removes the contact along with its activities and pipeline item.
func DeleteContact(ctx context.Context, q Querier, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id.String())
	if err != nil {
		return wrap("delete contact", err)
	}
	return requireAffected(res)
}
