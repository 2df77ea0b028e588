// ABOUTME: Tests for the boxcrm command tree
// ABOUTME: Drives commands end to end against a temporary database
package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes one command line against dbPath and returns its output.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--db-path", dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := run(t, dbPath, args...)
	require.NoError(t, err, out)
	return out
}

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func tempDB(t *testing.T) string {
	t.Helper()
	t.Setenv("BOXCRM_LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "boxcrm.db")
}

func TestWorkspaceCommands(t *testing.T) {
	dbPath := tempDB(t)

	out := mustRun(t, dbPath, "workspace", "add", "Boxford", "--type", "Real Estate")
	assert.Contains(t, out, "Created workspace: Boxford")
	id := uuidPattern.FindString(out)
	require.NotEmpty(t, id)

	out = mustRun(t, dbPath, "ws", "list")
	assert.Contains(t, out, "Boxford")
	assert.Contains(t, out, "Total: 1 workspace(s)")

	out = mustRun(t, dbPath, "workspace", "rename", id, "Boxford Partners")
	assert.Contains(t, out, "Boxford Partners")

	_, err := run(t, dbPath, "workspace", "add", "Bad", "--type", "Spaceships")
	assert.Error(t, err)
}

func TestLeadIngestFlow(t *testing.T) {
	dbPath := tempDB(t)
	mustRun(t, dbPath, "workspace", "add", "Boxford")

	out := mustRun(t, dbPath, "lead", "ingest", "-w", "boxford",
		"--source", "boxford",
		"--name", "Dana Seller",
		"--email", "dana@example.com",
		"--phone", "555-0100",
		"--pain-points", "pricing",
	)
	assert.Contains(t, out, "Created contact: Dana Seller")
	assert.Contains(t, out, "Score: 80")
	assert.Contains(t, out, "Pipeline: new")

	out = mustRun(t, dbPath, "lead", "ingest", "-w", "Boxford",
		"--source", "boxford",
		"--name", "Dana Seller",
		"--email", "DANA@example.com",
	)
	assert.Contains(t, out, "Updated existing contact")

	out = mustRun(t, dbPath, "pipeline", "list", "-w", "Boxford")
	assert.Contains(t, out, "Dana Seller")
	assert.Equal(t, 1, strings.Count(out, "Dana Seller"))

	out = mustRun(t, dbPath, "contact", "list", "-w", "Boxford")
	assert.Contains(t, out, "dana@example.com")
}

func TestLeadIngestFromFile(t *testing.T) {
	dbPath := tempDB(t)
	mustRun(t, dbPath, "workspace", "add", "Boxford")

	path := filepath.Join(t.TempDir(), "lead.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"source": "reviewsniper",
		"name": "Riley Agent",
		"email": "riley@example.com",
		"trust_signals": ["Referred by client"]
	}`), 0644))

	out := mustRun(t, dbPath, "lead", "ingest", "--file", path)
	assert.Contains(t, out, "Created contact: Riley Agent")
	assert.Contains(t, out, "Schedule demo of reviewSNIPER features")
}

func TestLeadIngestValidation(t *testing.T) {
	dbPath := tempDB(t)

	_, err := run(t, dbPath, "lead", "ingest", "--source", "boxford", "--name", "No Email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestInboxCommands(t *testing.T) {
	dbPath := tempDB(t)
	mustRun(t, dbPath, "workspace", "add", "Boxford")

	out := mustRun(t, dbPath, "inbox", "ingest",
		"--from", "buyer@example.com",
		"--subject", "Cash offer on Elm St",
		"--classification", "opportunity",
		"--signals", `{"budget":"cash"}`,
		"--contact-name", "Buyer Bob",
		"--contact-email", "buyer@example.com",
	)
	assert.Contains(t, out, "(opportunity)")
	assert.Contains(t, out, "Created contact")
	itemID := uuidPattern.FindString(out)
	require.NotEmpty(t, itemID)

	out = mustRun(t, dbPath, "inbox", "list", "--unhandled")
	assert.Contains(t, out, "Cash offer on Elm St")

	out = mustRun(t, dbPath, "inbox", "handle", itemID)
	assert.Contains(t, out, "Marked handled")

	out = mustRun(t, dbPath, "inbox", "list", "--unhandled")
	assert.Contains(t, out, "Inbox is empty")

	out = mustRun(t, dbPath, "pipeline", "list")
	assert.Contains(t, out, "Buyer Bob")

	_, err := run(t, dbPath, "inbox", "ingest", "--from", "x@example.com", "--subject", "s", "--classification", "spam")
	assert.Error(t, err)

	_, err = run(t, dbPath, "inbox", "list", "--handled", "--unhandled")
	assert.Error(t, err)
}

func TestPipelineMoveAndRemove(t *testing.T) {
	dbPath := tempDB(t)
	mustRun(t, dbPath, "workspace", "add", "Boxford")
	out := mustRun(t, dbPath, "lead", "ingest",
		"--source", "reviewsniper", "--name", "Low Score", "--email", "low@example.com")
	assert.NotContains(t, out, "Pipeline:")
	contactID := uuidPattern.FindString(out)
	require.NotEmpty(t, contactID)

	out = mustRun(t, dbPath, "pipeline", "add", contactID, "--stage", "active")
	assert.Contains(t, out, "Added to pipeline at active")
	itemID := uuidPattern.FindString(out)

	out = mustRun(t, dbPath, "pipeline", "add", contactID)
	assert.Contains(t, out, "Already in pipeline")

	out = mustRun(t, dbPath, "pipeline", "move", itemID, "hot")
	assert.Contains(t, out, "Moved to hot")

	_, err := run(t, dbPath, "pipeline", "move", itemID, "lukewarm")
	assert.Error(t, err)

	mustRun(t, dbPath, "pipeline", "remove", itemID)
	out = mustRun(t, dbPath, "pipeline", "list")
	assert.Contains(t, out, "Pipeline is empty")
}

func TestDashboardAndViz(t *testing.T) {
	dbPath := tempDB(t)
	mustRun(t, dbPath, "workspace", "add", "Boxford")
	mustRun(t, dbPath, "lead", "ingest",
		"--source", "boxford", "--name", "Dana Seller", "--email", "dana@example.com")

	out := mustRun(t, dbPath, "dashboard")
	assert.Contains(t, out, "BOXFORD")

	out = mustRun(t, dbPath, "viz", "pipeline")
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "Dana Seller")

	_, err := run(t, dbPath, "viz", "pipeline", "--format", "gif")
	assert.Error(t, err)
}

func TestUnknownWorkspace(t *testing.T) {
	dbPath := tempDB(t)

	_, err := run(t, dbPath, "pipeline", "list", "-w", "Nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace")
}
