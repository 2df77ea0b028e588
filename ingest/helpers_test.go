package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)

func testToday() time.Time {
	return clock.Date(testNow)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewService(database, clock.Fixed(testNow))
}

func newWorkspace(t *testing.T, svc *Service, name string) *models.Workspace {
	t.Helper()
	ws, err := svc.CreateWorkspace(context.Background(), WorkspaceInput{Name: name, Type: models.WorkspaceRealEstate, OwnerID: "owner"})
	require.NoError(t, err)
	return ws
}

func countRows(t *testing.T, svc *Service, table string) int {
	t.Helper()
	var n int
	require.NoError(t, svc.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
