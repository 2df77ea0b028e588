package viz

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ingestedAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func seededService(t *testing.T) (*ingest.Service, *models.Workspace) {
	t.Helper()
	ctx := context.Background()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	svc := ingest.NewService(database, clock.Fixed(ingestedAt))
	ws, err := svc.CreateWorkspace(ctx, ingest.WorkspaceInput{Name: "Boxford Realty", Type: models.WorkspaceRealEstate})
	require.NoError(t, err)

	res, err := svc.IngestClassifiedInquiry(ctx, &leads.InquiryPayload{
		WorkspaceID:    ws.ID.String(),
		From:           "pat@example.com",
		Subject:        "Offer on Elm St",
		Classification: models.ClassificationOpportunity,
		ContactInfo:    &leads.ContactInfo{Name: "Pat Buyer", Email: "pat@example.com", Phone: "555-0199"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.PipelineItem)

	_, err = svc.IngestClassifiedInquiry(ctx, &leads.InquiryPayload{
		WorkspaceID:    ws.ID.String(),
		From:           "critic@example.com",
		Subject:        "Complaint",
		Classification: models.ClassificationRisk,
	})
	require.NoError(t, err)

	return svc, ws
}

func TestGenerateDashboardStats(t *testing.T) {
	svc, ws := seededService(t)

	// Three weeks later the follow-up is overdue and the item is stale
	stats, err := GenerateDashboardStats(context.Background(), svc, ws.ID, ingestedAt.AddDate(0, 0, 21))
	require.NoError(t, err)

	assert.Equal(t, "Boxford Realty", stats.WorkspaceName)
	assert.Equal(t, 1, stats.PipelineByStage[models.StageNew])
	assert.Equal(t, 1, stats.TotalContacts)
	assert.Equal(t, 75, stats.AverageScore)
	assert.Equal(t, map[string]int{models.ClassificationOpportunity: 1, models.ClassificationRisk: 1}, stats.UnhandledInbox)
	require.Len(t, stats.DueFollowUps, 1)
	assert.Equal(t, "Pat Buyer", stats.DueFollowUps[0].Name)
	require.Len(t, stats.StaleItems, 1)
	assert.Equal(t, 21, stats.StaleItems[0].DaysSince)
}

func TestGenerateDashboardStatsFreshWorkspace(t *testing.T) {
	svc, ws := seededService(t)

	stats, err := GenerateDashboardStats(context.Background(), svc, ws.ID, ingestedAt)
	require.NoError(t, err)
	assert.Empty(t, stats.DueFollowUps)
	assert.Empty(t, stats.StaleItems)
}

func TestRenderDashboard(t *testing.T) {
	stats := &DashboardStats{
		WorkspaceName:   "Boxford Realty",
		PipelineByStage: map[string]int{models.StageNew: 2, models.StageHot: 1},
		TotalContacts:   3,
		AverageScore:    72,
		UnhandledInbox:  map[string]int{models.ClassificationRisk: 1},
		DueFollowUps:    []FollowUp{{Name: "Pat", NextAction: "Call back", Due: ingestedAt}},
	}

	out := RenderDashboard(stats)
	assert.Contains(t, out, "BOXFORD REALTY")
	assert.Contains(t, out, "██████████   2")
	assert.Contains(t, out, "3 contacts")
	assert.Contains(t, out, "risk         1 unhandled")
	assert.Contains(t, out, "Pat: Call back (due 2026-04-01)")
	assert.NotContains(t, out, "all caught up")
}

func TestRenderDashboardEmptyInbox(t *testing.T) {
	out := RenderDashboard(&DashboardStats{WorkspaceName: "Empty", PipelineByStage: map[string]int{}, UnhandledInbox: map[string]int{}})
	assert.Contains(t, out, "all caught up")
	assert.NotContains(t, out, "NEEDS ATTENTION")
}

func TestGeneratePipelineGraph(t *testing.T) {
	svc, ws := seededService(t)

	dot, err := NewGraphGenerator(svc).GeneratePipelineGraph(context.Background(), ws.ID, graphviz.XDOT)
	require.NoError(t, err)

	out := string(dot)
	assert.Contains(t, out, "Boxford Realty pipeline")
	assert.Contains(t, out, "Pat Buyer")
	assert.Contains(t, out, "stage_under_contract")
}
