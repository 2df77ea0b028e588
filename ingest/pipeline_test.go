package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrolledLead(t *testing.T, svc *Service, ws *models.Workspace, email string) *LeadResult {
	t.Helper()
	res, err := svc.IngestLead(context.Background(), &leads.LeadPayload{
		Source:      leads.SourceDirectSite,
		WorkspaceID: ws.ID.String(),
		Name:        "Lead " + email,
		Email:       email,
	})
	require.NoError(t, err)
	require.NotNil(t, res.PipelineItem)
	return res
}

func TestMoveStage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")
	res := enrolledLead(t, svc, ws, "a@example.com")

	for _, stage := range []string{models.StageHot, models.StageNew, models.StageClosed, models.StageClosed} {
		item, err := svc.MoveStage(ctx, res.PipelineItem.ID, stage)
		require.NoError(t, err)
		assert.Equal(t, stage, item.Stage)
		assert.True(t, testToday().Equal(item.LastTouch))
	}

	entries, err := svc.ListPipeline(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StageClosed, entries[0].Stage)
}

func TestMoveStageUnknownIDMutatesNothing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")
	res := enrolledLead(t, svc, ws, "a@example.com")

	_, err := svc.MoveStage(ctx, uuid.New(), models.StageHot)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, "pipeline item", nf.Entity)

	entries, err := svc.ListPipeline(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StageNew, entries[0].Stage)
	assert.Equal(t, res.PipelineItem.UpdatedAt.Unix(), entries[0].UpdatedAt.Unix())
}

func TestMoveStageRejectsUnknownStage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.MoveStage(context.Background(), uuid.New(), "won")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "stage", ve.Field)
}

func TestAddToPipelineIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")

	lead, err := svc.IngestLead(ctx, &leads.LeadPayload{
		Source:      leads.SourceReviewWidget,
		WorkspaceID: ws.ID.String(),
		Name:        "Low",
		Email:       "low@example.com",
	})
	require.NoError(t, err)
	require.Nil(t, lead.PipelineItem)

	item, created, err := svc.AddToPipeline(ctx, ws.ID, lead.Contact.ID, "", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.StageNew, item.Stage)
	assert.Equal(t, "Follow up", item.NextAction)

	again, created, err := svc.AddToPipeline(ctx, ws.ID, lead.Contact.ID, models.StageHot, "x")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, item.ID, again.ID)
	assert.Equal(t, 1, countRows(t, svc, "pipeline_items"))

	other := newWorkspace(t, svc, "other")
	_, _, err = svc.AddToPipeline(ctx, other.ID, lead.Contact.ID, "", "")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestRemoveFromPipeline(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")
	res := enrolledLead(t, svc, ws, "a@example.com")

	require.NoError(t, svc.RemoveFromPipeline(ctx, res.PipelineItem.ID))

	err := svc.RemoveFromPipeline(ctx, res.PipelineItem.ID)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}
