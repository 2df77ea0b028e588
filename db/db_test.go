// ABOUTME: Tests for opening the boxcrm database and the constraints its schema enforces
// ABOUTME: Covers pragmas, re-opening, the partial email index and column checks
package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDatabaseSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "boxcrm.db")
	db, err := OpenDatabase(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = os.Stat(path)
	require.NoError(t, err, "database file and parent directory should be created")

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	// one connection serializes every transaction
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpenDatabaseKeepsDataAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxcrm.db")

	db, err := OpenDatabase(path)
	require.NoError(t, err)
	ws := seedWorkspace(t, db, "Boxford")
	seedContact(t, db, ws, "Dana", "dana@example.com")
	require.NoError(t, db.Close())

	db, err = OpenDatabase(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	found, err := FindContactByEmail(context.Background(), db, ws.ID, "DANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Dana", found.Name)
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := OpenDatabase(filepath.Join(blocker, "boxcrm.db"))
	assert.Error(t, err)
}

func TestBlankEmailsAreExemptFromUniqueIndex(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db, "Boxford")

	seedContact(t, db, ws, "Walk-in One", "")
	seedContact(t, db, ws, "Walk-in Two", "")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contacts WHERE email_normalized = ''`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestSameEmailAllowedInOtherWorkspace(t *testing.T) {
	db := openTestDB(t)
	a := seedWorkspace(t, db, "A")
	b := seedWorkspace(t, db, "B")

	seedContact(t, db, a, "Dana", "dana@example.com")
	seedContact(t, db, b, "Dana", "Dana@Example.com")

	c := &models.Contact{WorkspaceID: b.ID, Name: "Dupe", Email: " dana@EXAMPLE.com ", LastActivity: today}
	err := CreateContact(context.Background(), db, c)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSchemaChecksRejectOutOfRangeValues(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db, "Boxford")
	c := seedContact(t, db, ws, "Dana", "dana@example.com")

	_, err := db.Exec(`UPDATE contacts SET credibility_score = 101 WHERE id = ?`, c.ID.String())
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO pipeline_items (id, workspace_id, contact_id, stage, last_touch, created_at, updated_at)
		VALUES (?, ?, ?, 'won', DATE('now'), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		uuid.NewString(), ws.ID.String(), c.ID.String())
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO contacts (id, workspace_id, name, last_activity, created_at, updated_at)
		VALUES (?, ?, 'Orphan', DATE('now'), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		uuid.NewString(), uuid.NewString())
	assert.Error(t, err, "foreign key to workspaces should be enforced")
}
