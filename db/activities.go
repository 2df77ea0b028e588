// ABOUTME: Activity database operations
// ABOUTME: Activities are append-only; logging one moves the contact's last activity date
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/models"
)

// CreateActivity appends a to its contact's timeline and sets the contact's last activity
// to the activity date. Returns ErrNotFound when the contact does not exist.
func CreateActivity(ctx context.Context, q Querier, a *models.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Date = clock.Date(a.Date)
	a.CreatedAt = time.Now().UTC()

	if err := TouchContact(ctx, q, a.ContactID, a.Date); err != nil {
		return err
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO activities (id, contact_id, type, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID.String(), a.ContactID.String(), a.Type, a.Description, a.Date, a.CreatedAt)
	if err != nil {
		return wrap("create activity", err)
	}
	return nil
}

// ListActivities returns the contact's activities, newest first.
func ListActivities(ctx context.Context, q Querier, contactID uuid.UUID) ([]models.Activity, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, contact_id, type, description, date, created_at
		FROM activities
		WHERE contact_id = ?
		ORDER BY date DESC, created_at DESC
	`, contactID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Type, &a.Description, &a.Date, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Date = clock.Date(a.Date)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}
	return activities, nil
}
