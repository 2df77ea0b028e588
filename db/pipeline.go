// ABOUTME: Pipeline item database operations
// ABOUTME: One pipeline item per contact; stage moves stamp the last touch date
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/models"
)

const pipelineColumns = `id, workspace_id, contact_id, stage, last_touch, next_action, created_at, updated_at`

func scanPipelineItem(row rowScanner) (*models.PipelineItem, error) {
	p := &models.PipelineItem{}
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.ContactID, &p.Stage, &p.LastTouch, &p.NextAction, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.LastTouch = clock.Date(p.LastTouch)
	return p, nil
}

// CreatePipelineItem enrolls a contact. A contact already in the pipeline yields ErrConflict.
func CreatePipelineItem(ctx context.Context, q Querier, p *models.PipelineItem) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Stage == "" {
		p.Stage = models.StageNew
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.LastTouch = clock.Date(p.LastTouch)

	_, err := q.ExecContext(ctx, `
		INSERT INTO pipeline_items (id, workspace_id, contact_id, stage, last_touch, next_action, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID.String(), p.WorkspaceID.String(), p.ContactID.String(), p.Stage, p.LastTouch, p.NextAction, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrap("create pipeline item", err)
	}
	return nil
}

func GetPipelineItem(ctx context.Context, q Querier, id uuid.UUID) (*models.PipelineItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+pipelineColumns+` FROM pipeline_items WHERE id = ?`, id.String())
	p, err := scanPipelineItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline item: %w", err)
	}
	return p, nil
}

func GetPipelineItemByContact(ctx context.Context, q Querier, contactID uuid.UUID) (*models.PipelineItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+pipelineColumns+` FROM pipeline_items WHERE contact_id = ?`, contactID.String())
	p, err := scanPipelineItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline item by contact: %w", err)
	}
	return p, nil
}

// UpdatePipelineStage moves an item to stage and sets its last touch.
func UpdatePipelineStage(ctx context.Context, q Querier, id uuid.UUID, stage string, touched time.Time) error {
	res, err := q.ExecContext(ctx, `
		UPDATE pipeline_items SET stage = ?, last_touch = ?, updated_at = ? WHERE id = ?
	`, stage, clock.Date(touched), time.Now().UTC(), id.String())
	if err != nil {
		return wrap("update pipeline stage", err)
	}
	return requireAffected(res)
}

func DeletePipelineItem(ctx context.Context, q Querier, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM pipeline_items WHERE id = ?`, id.String())
	if err != nil {
		return wrap("delete pipeline item", err)
	}
	return requireAffected(res)
}

// ListPipeline returns the workspace's pipeline in board order, each item carrying its
// contact's name and credibility score.
func ListPipeline(ctx context.Context, q Querier, workspaceID uuid.UUID) ([]models.PipelineEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT p.id, p.workspace_id, p.contact_id, p.stage, p.last_touch, p.next_action, p.created_at, p.updated_at,
			c.name, c.credibility_score
		FROM pipeline_items p
		JOIN contacts c ON c.id = p.contact_id
		WHERE p.workspace_id = ?
		ORDER BY CASE p.stage
			WHEN 'new' THEN 0
			WHEN 'active' THEN 1
			WHEN 'hot' THEN 2
			WHEN 'under_contract' THEN 3
			ELSE 4
		END, p.last_touch DESC, c.name
	`, workspaceID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list pipeline: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.PipelineEntry
	for rows.Next() {
		var e models.PipelineEntry
		err := rows.Scan(
			&e.ID,
			&e.WorkspaceID,
			&e.ContactID,
			&e.Stage,
			&e.LastTouch,
			&e.NextAction,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.ContactName,
			&e.CredibilityScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pipeline item: %w", err)
		}
		e.LastTouch = clock.Date(e.LastTouch)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pipeline: %w", err)
	}
	return entries, nil
}
