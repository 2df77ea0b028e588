package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "s3cret"

type fixture struct {
	svc     *ingest.Service
	handler http.Handler
	ws      *models.Workspace
}

func newFixture(t *testing.T, apiKey string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	svc := ingest.NewService(database, clock.Fixed(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)))
	ws, err := svc.CreateWorkspace(context.Background(), ingest.WorkspaceInput{Name: "Main", Type: models.WorkspaceRealEstate})
	require.NoError(t, err)

	return &fixture{svc: svc, handler: NewServer(svc, apiKey).Handler(), ws: ws}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(t, http.MethodGet, "/health", nil, map[string]string{"X-Request-ID": "abc"})
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestIngestLeadEndpoint(t *testing.T) {
	f := newFixture(t, "")
	lead := map[string]any{
		"source":       "boxford",
		"workspace_id": f.ws.ID.String(),
		"name":         "Dana",
		"email":        "dana@example.com",
	}

	rec := f.do(t, http.MethodPost, "/api/leads", lead, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["created"])
	assert.Equal(t, float64(70), body["score"])
	assert.NotNil(t, body["pipeline_item"])

	// the same email again attaches to the existing contact
	rec = f.do(t, http.MethodPost, "/api/leads", lead, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["created"])
}

func TestErrorStatusMapping(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(t, http.MethodPost, "/api/leads", map[string]any{
		"source":       "boxford",
		"workspace_id": f.ws.ID.String(),
		"name":         "No Email",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "validation failed", body["error"])
	assert.Contains(t, body["details"], "email")

	rec = f.do(t, http.MethodPost, "/api/leads", map[string]any{
		"source":       "boxford",
		"workspace_id": uuid.NewString(),
		"name":         "Dana",
		"email":        "dana@example.com",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/pipeline/"+uuid.NewString(), map[string]string{"stage": "hot"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/pipeline/not-a-uuid", map[string]string{"stage": "hot"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewBufferString("{not json"))
	raw := httptest.NewRecorder()
	f.handler.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestConflictMapsTo409(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	_, err := f.svc.IngestLead(ctx, leadPayload(f.ws.ID, "a@example.com"))
	require.NoError(t, err)
	res, err := f.svc.IngestLead(ctx, leadPayload(f.ws.ID, "b@example.com"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	taken := "a@example.com"
	_, err = f.svc.UpdateContact(ctx, res.Contact.ID, ingest.ContactUpdate{Email: &taken})
	respondError(c, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIntegrationEndpointsRequireAPIKey(t *testing.T) {
	f := newFixture(t, testKey)
	payload := map[string]any{
		"workspace_id":   f.ws.ID.String(),
		"from":           "x@example.com",
		"subject":        "hello",
		"classification": "noise",
	}

	rec := f.do(t, http.MethodPost, "/api/inbox", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/inbox", payload, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/inbox", payload, map[string]string{"X-API-Key": testKey})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// dashboard endpoints stay open
	rec = f.do(t, http.MethodGet, "/api/inbox?workspace_id="+f.ws.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	assert.Len(t, items, 1)
}

func TestInboxHandledFlow(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(t, http.MethodPost, "/api/inbox", map[string]any{
		"workspace_id":   f.ws.ID.String(),
		"from":           "buyer@example.com",
		"subject":        "Buying",
		"classification": "opportunity",
		"signals":        map[string]any{"budget": "500k"},
		"contact_info":   map[string]any{"name": "Buyer", "email": "buyer@example.com"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["contact_created"])
	item := body["inbox_item"].(map[string]any)

	rec = f.do(t, http.MethodPatch, "/api/inbox", map[string]any{"id": item["id"], "handled": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/inbox?workspace_id="+f.ws.ID.String()+"&handled=false", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["items"])

	rec = f.do(t, http.MethodPatch, "/api/inbox", map[string]any{"id": item["id"], "handled": false}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["item"].(map[string]any)["handled"])
}

func TestInboxPatchWithoutHandledMarksHandled(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(t, http.MethodPost, "/api/inbox", map[string]any{
		"workspace_id":   f.ws.ID.String(),
		"from":           "x@example.com",
		"subject":        "Question",
		"classification": "noise",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode(t, rec)["inbox_item"].(map[string]any)

	rec = f.do(t, http.MethodPatch, "/api/inbox", map[string]any{"id": item["id"]}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["item"].(map[string]any)["handled"])

	rec = f.do(t, http.MethodGet, "/api/inbox?workspace_id="+f.ws.ID.String()+"&handled=false", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["items"])
}

func TestPipelineEndpoints(t *testing.T) {
	f := newFixture(t, "")
	res, err := f.svc.IngestLead(context.Background(), leadPayload(f.ws.ID, "p@example.com"))
	require.NoError(t, err)
	require.NotNil(t, res.PipelineItem)

	rec := f.do(t, http.MethodPatch, "/api/pipeline/"+res.PipelineItem.ID.String(), map[string]string{"stage": "under_contract"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/pipeline/"+res.PipelineItem.ID.String(), map[string]string{"stage": "won"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/pipeline?workspace_id="+f.ws.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "under_contract", items[0].(map[string]any)["stage"])

	rec = f.do(t, http.MethodPost, "/api/pipeline", map[string]string{
		"workspace_id": f.ws.ID.String(),
		"contact_id":   res.Contact.ID.String(),
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/pipeline/"+res.PipelineItem.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestContactsAndActivities(t *testing.T) {
	f := newFixture(t, "")
	res, err := f.svc.IngestLead(context.Background(), leadPayload(f.ws.ID, "c@example.com"))
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/activities", map[string]string{
		"contact_id":  res.Contact.ID.String(),
		"type":        "call",
		"description": "Left voicemail",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/contacts?workspace_id="+f.ws.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contacts := decode(t, rec)["contacts"].([]any)
	require.Len(t, contacts, 1)
	assert.Len(t, contacts[0].(map[string]any)["activities"], 2)

	rec = f.do(t, http.MethodGet, "/api/contacts?workspace_id="+f.ws.ID.String()+"&q=nobody", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["contacts"])

	rec = f.do(t, http.MethodDelete, "/api/contacts/"+res.Contact.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/contacts/"+res.Contact.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateContactEndpoint(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	res, err := f.svc.IngestLead(ctx, leadPayload(f.ws.ID, "u@example.com"))
	require.NoError(t, err)
	_, err = f.svc.IngestLead(ctx, leadPayload(f.ws.ID, "taken@example.com"))
	require.NoError(t, err)
	path := "/api/contacts/" + res.Contact.ID.String()

	rec := f.do(t, http.MethodPatch, path, map[string]any{"phone": "555-0199", "status": "active"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	contact := decode(t, rec)["contact"].(map[string]any)
	assert.Equal(t, "555-0199", contact["phone"])
	assert.Equal(t, "active", contact["status"])
	assert.Equal(t, "u@example.com", contact["email"])

	rec = f.do(t, http.MethodPatch, path, map[string]any{"status": "archived"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, path, map[string]any{"email": "TAKEN@example.com"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/contacts/"+uuid.NewString(), map[string]any{"phone": "1"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkspaceEndpoints(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(t, http.MethodPost, "/api/workspaces", map[string]string{"name": "Second", "type": "Consulting"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/workspaces", map[string]string{"name": "Bad", "type": "Casino"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/workspaces", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["workspaces"], 2)
}

func TestLoanUpdateEndpoint(t *testing.T) {
	f := newFixture(t, "")
	res, err := f.svc.IngestLead(context.Background(), leadPayload(f.ws.ID, "loan@example.com"))
	require.NoError(t, err)

	rec := f.do(t, http.MethodPatch, "/api/leads", map[string]string{
		"contact_id":   res.Contact.ID.String(),
		"workspace_id": f.ws.ID.String(),
		"loan_amount":  "300000",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPatch, "/api/leads", map[string]string{
		"contact_id":   uuid.NewString(),
		"workspace_id": f.ws.ID.String(),
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
