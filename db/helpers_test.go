package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedWorkspace(t *testing.T, db *sql.DB, name string) *models.Workspace {
	t.Helper()
	ws := &models.Workspace{Name: name, Type: models.WorkspaceRealEstate, Color: "#3b82f6", OwnerID: "owner-1"}
	require.NoError(t, CreateWorkspace(context.Background(), db, ws))
	return ws
}

func seedContact(t *testing.T, db *sql.DB, ws *models.Workspace, name, email string) *models.Contact {
	t.Helper()
	c := &models.Contact{
		WorkspaceID:      ws.ID,
		Name:             name,
		Email:            email,
		Tags:             []string{"website-inquiry"},
		TrustSignals:     []string{"Direct website inquiry"},
		LastActivity:     today,
		CredibilityScore: 70,
	}
	require.NoError(t, CreateContact(context.Background(), db, c))
	return c
}
