// ABOUTME: Database operations for sync_state and sync_log tables
// ABOUTME: Tracks importer status and which external messages have already become leads
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncState represents the sync state for a service.
type SyncState struct {
	Service       string
	LastSyncTime  *time.Time
	LastSyncToken *string
	Status        string
	ErrorMessage  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func scanSyncState(row rowScanner) (*SyncState, error) {
	var state SyncState
	var lastSyncTime sql.NullTime
	var lastSyncToken sql.NullString
	var errorMessage sql.NullString

	err := row.Scan(
		&state.Service,
		&lastSyncTime,
		&lastSyncToken,
		&state.Status,
		&errorMessage,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastSyncTime.Valid {
		state.LastSyncTime = &lastSyncTime.Time
	}
	if lastSyncToken.Valid {
		state.LastSyncToken = &lastSyncToken.String
	}
	if errorMessage.Valid {
		state.ErrorMessage = &errorMessage.String
	}
	return &state, nil
}

// GetSyncState retrieves the sync state for a service.
func GetSyncState(ctx context.Context, q Querier, service string) (*SyncState, error) {
	row := q.QueryRowContext(ctx, `
		SELECT service, last_sync_time, last_sync_token, status, error_message, created_at, updated_at
		FROM sync_state
		WHERE service = ?
	`, service)
	state, err := scanSyncState(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}
	return state, nil
}

// UpdateSyncStatus updates the sync status for a service.
func UpdateSyncStatus(ctx context.Context, q Querier, service, status string, errorMsg *string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO sync_state (service, status, error_message, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(service) DO UPDATE SET
			status = excluded.status,
			error_message = excluded.error_message,
			updated_at = CURRENT_TIMESTAMP
	`, service, status, nullString(errorMsg))
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}
	return nil
}

// UpdateSyncToken records a successful run and its resume token.
func UpdateSyncToken(ctx context.Context, q Querier, service, token string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO sync_state (service, last_sync_time, last_sync_token, status, created_at, updated_at)
		VALUES (?, CURRENT_TIMESTAMP, ?, 'idle', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(service) DO UPDATE SET
			last_sync_time = CURRENT_TIMESTAMP,
			last_sync_token = excluded.last_sync_token,
			status = 'idle',
			error_message = NULL,
			updated_at = CURRENT_TIMESTAMP
	`, service, token)
	if err != nil {
		return fmt.Errorf("failed to update sync token: %w", err)
	}
	return nil
}

// CheckSyncLogExists checks if an external item has already been imported.
func CheckSyncLogExists(ctx context.Context, q Querier, sourceService, sourceID string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sync_log
		WHERE source_service = ? AND source_id = ?
	`, sourceService, sourceID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check sync log: %w", err)
	}
	return count > 0, nil
}

// CreateSyncLog records that an external item was imported as entityID.
func CreateSyncLog(ctx context.Context, q Querier, sourceService, sourceID, entityType string, entityID uuid.UUID, metadata string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO sync_log (id, source_service, source_id, entity_type, entity_id, imported_at, metadata)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
	`, uuid.New().String(), sourceService, sourceID, entityType, entityID.String(), metadata)
	if err != nil {
		return wrap("create sync log", err)
	}
	return nil
}

// GetAllSyncStates retrieves the sync state for all services.
func GetAllSyncStates(ctx context.Context, q Querier) ([]SyncState, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT service, last_sync_time, last_sync_token, status, error_message, created_at, updated_at
		FROM sync_state
		ORDER BY service
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var states []SyncState
	for rows.Next() {
		state, err := scanSyncState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync state: %w", err)
		}
		states = append(states, *state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync states: %w", err)
	}
	return states, nil
}
