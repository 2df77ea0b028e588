package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opportunity(workspaceID, email string) *leads.InquiryPayload {
	return &leads.InquiryPayload{
		WorkspaceID:    workspaceID,
		From:           email,
		Subject:        "Interested in the Elm St listing",
		Preview:        "Hi, we saw the listing...",
		Classification: models.ClassificationOpportunity,
		Signals:        json.RawMessage(`{ "intent": "purchase" }`),
		Rationale:      "explicit buying intent",
		ContactInfo: &leads.ContactInfo{
			Name:         "Pat Buyer",
			Email:        email,
			Phone:        "555-0199",
			TrustSignals: []string{"Pre-approved", "Local"},
		},
	}
}

func TestIngestInquiryCreatesOpportunityContact(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")

	res, err := svc.IngestClassifiedInquiry(ctx, opportunity(ws.ID.String(), "pat@example.com"))
	require.NoError(t, err)

	item := res.InboxItem
	assert.False(t, item.Handled)
	assert.True(t, testToday().Equal(item.Date))
	assert.Equal(t, "Respond within 24 hours to capture lead", item.RecommendedAction)
	assert.JSONEq(t, `{"intent":"purchase"}`, string(item.Signals))
	require.NotNil(t, item.Rationale)
	assert.Nil(t, item.FullText)

	assert.True(t, res.ContactCreated)
	require.NotNil(t, res.ContactID)
	require.NotNil(t, res.PipelineItem)
	assert.Equal(t, models.StageNew, res.PipelineItem.Stage)

	c, err := svc.GetContact(ctx, *res.ContactID)
	require.NoError(t, err)
	assert.Equal(t, []string{"gravitas-lead", "opportunity"}, c.Tags)
	assert.Equal(t, "Gravitas Index (opportunity)", c.Source)
	assert.Equal(t, []string{"Pre-approved", "Local"}, c.TrustSignals)
	assert.Equal(t, 85, c.CredibilityScore)
	assert.Equal(t, "Reach out within 24 hours", c.NextAction)
	require.NotNil(t, c.NextActionDate)
	assert.True(t, testToday().AddDate(0, 0, 1).Equal(*c.NextActionDate))
	require.Len(t, c.Activities, 1)
	assert.Equal(t, models.ActivityGravitas, c.Activities[0].Type)
	assert.Equal(t, "Gravitas classified as opportunity: Interested in the Elm St listing", c.Activities[0].Description)
}

func TestRepeatedOpportunitiesAccumulateOnOneContact(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")

	first, err := svc.IngestClassifiedInquiry(ctx, opportunity(ws.ID.String(), "pat@example.com"))
	require.NoError(t, err)
	second, err := svc.IngestClassifiedInquiry(ctx, opportunity(ws.ID.String(), "PAT@Example.com"))
	require.NoError(t, err)

	assert.True(t, first.ContactCreated)
	assert.False(t, second.ContactCreated)
	assert.Equal(t, *first.ContactID, *second.ContactID)
	assert.Nil(t, second.PipelineItem)

	assert.Equal(t, 1, countRows(t, svc, "contacts"))
	assert.Equal(t, 2, countRows(t, svc, "activities"))
	assert.Equal(t, 1, countRows(t, svc, "pipeline_items"))
	assert.Equal(t, 2, countRows(t, svc, "inbox_items"))

	c, err := svc.GetContact(ctx, *first.ContactID)
	require.NoError(t, err)
	assert.Equal(t, "Gravitas classified inquiry: Interested in the Elm St listing", c.Activities[0].Description)
}

func TestOpportunityAttachesToContactFromLeadPath(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")

	lead, err := svc.IngestLead(ctx, &leads.LeadPayload{
		Source:      leads.SourceReviewWidget,
		WorkspaceID: ws.ID.String(),
		Name:        "Pat",
		Email:       "pat@example.com",
	})
	require.NoError(t, err)

	res, err := svc.IngestClassifiedInquiry(ctx, opportunity(ws.ID.String(), "pat@example.com"))
	require.NoError(t, err)
	assert.False(t, res.ContactCreated)
	assert.Equal(t, lead.Contact.ID, *res.ContactID)
	assert.Zero(t, countRows(t, svc, "pipeline_items"))
}

func TestIngestInquiryNonOpportunityOnlyFillsInbox(t *testing.T) {
	tests := []struct {
		classification string
		action         string
	}{
		{models.ClassificationNoise, "Mark as spam or unsubscribe sender"},
		{models.ClassificationRisk, "Review carefully and consult with legal/compliance"},
		{models.ClassificationReputation, "Engage positively for testimonial or review opportunity"},
	}

	for _, tt := range tests {
		t.Run(tt.classification, func(t *testing.T) {
			ctx := context.Background()
			svc := newTestService(t)
			ws := newWorkspace(t, svc, "WS")

			p := opportunity(ws.ID.String(), "x@example.com")
			p.Classification = tt.classification

			res, err := svc.IngestClassifiedInquiry(ctx, p)
			require.NoError(t, err)
			assert.Equal(t, tt.action, res.InboxItem.RecommendedAction)
			assert.False(t, res.ContactCreated)
			assert.Nil(t, res.ContactID)
			assert.Zero(t, countRows(t, svc, "contacts"))
		})
	}
}

func TestIngestInquiryOpportunityWithoutContactInfo(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")

	p := opportunity(ws.ID.String(), "x@example.com")
	p.ContactInfo = &leads.ContactInfo{Name: "Only Name"}
	p.RecommendedAction = "Call back"

	res, err := svc.IngestClassifiedInquiry(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Call back", res.InboxItem.RecommendedAction)
	assert.Nil(t, res.ContactID)
	assert.Zero(t, countRows(t, svc, "contacts"))
}

func TestIngestInquiryValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ws := newWorkspace(t, svc, "WS")

	p := opportunity(ws.ID.String(), "x@example.com")
	p.Classification = "spam"

	_, err := svc.IngestClassifiedInquiry(ctx, p)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "classification", ve.Field)
	assert.Zero(t, countRows(t, svc, "inbox_items"))

	p = opportunity(ws.ID.String(), "x@example.com")
	p.Signals = json.RawMessage(`"just a string"`)
	_, err = svc.IngestClassifiedInquiry(ctx, p)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "signals", ve.Field)
}
