// ABOUTME: Workspace database operations
// ABOUTME: Workspaces are the tenant boundary; deleting one cascades to everything inside it
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/models"
)

func CreateWorkspace(ctx context.Context, q Querier, ws *models.Workspace) error {
	if ws.ID == uuid.Nil {
		ws.ID = uuid.New()
	}
	now := time.Now().UTC()
	ws.CreatedAt = now
	ws.UpdatedAt = now

	_, err := q.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, type, color, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ws.ID.String(), ws.Name, ws.Type, ws.Color, ws.OwnerID, ws.CreatedAt, ws.UpdatedAt)
	if err != nil {
		return wrap("create workspace", err)
	}
	return nil
}

func GetWorkspace(ctx context.Context, q Querier, id uuid.UUID) (*models.Workspace, error) {
	ws := &models.Workspace{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, type, color, owner_id, created_at, updated_at
		FROM workspaces WHERE id = ?
	`, id.String()).Scan(&ws.ID, &ws.Name, &ws.Type, &ws.Color, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

// ListWorkspaces returns workspaces in creation order. An empty owner lists every workspace.
func ListWorkspaces(ctx context.Context, q Querier, ownerID string) ([]models.Workspace, error) {
	query := `SELECT id, name, type, color, owner_id, created_at, updated_at FROM workspaces`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at, name`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var workspaces []models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Type, &ws.Color, &ws.OwnerID, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspaces: %w", err)
	}
	return workspaces, nil
}

func CountWorkspaces(ctx context.Context, q Querier, ownerID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM workspaces WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workspaces: %w", err)
	}
	return count, nil
}

func RenameWorkspace(ctx context.Context, q Querier, id uuid.UUID, name string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE workspaces SET name = ?, updated_at = ? WHERE id = ?
	`, name, time.Now().UTC(), id.String())
	if err != nil {
		return wrap("rename workspace", err)
	}
	return requireAffected(res)
}

// DeleteWorkspace removes the workspace; contacts, activities, pipeline items and inbox
// items go with it through foreign-key cascades.
func DeleteWorkspace(ctx context.Context, q Querier, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id.String())
	if err != nil {
		return wrap("delete workspace", err)
	}
	return requireAffected(res)
}
