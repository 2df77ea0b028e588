// ABOUTME: MCP tool registration for the CRM
// ABOUTME: Wires every tool, resource template and prompt onto an mcp.Server
package handlers

import (
	"encoding/json"
	"time"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateLayout = "2006-01-02"

type Handlers struct {
	svc *ingest.Service
}

func NewHandlers(svc *ingest.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Register adds all tools, resources and prompts to server.
func (h *Handlers) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest_lead",
		Description: "Ingest a lead from an external source, scoring it and enrolling strong leads in the pipeline",
	}, h.IngestLead)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest_inquiry",
		Description: "Store a classified inquiry in the inbox; opportunities with contact info become contacts",
	}, h.IngestInquiry)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_stage",
		Description: "Move a pipeline item to another stage (new, active, hot, under_contract, closed)",
	}, h.MoveStage)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to_pipeline",
		Description: "Enroll an existing contact in the pipeline",
	}, h.AddToPipeline)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_pipeline",
		Description: "List a workspace's pipeline board",
	}, h.ListPipeline)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts in a workspace by name or email",
	}, h.FindContacts)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a call, email, text or note against a contact",
	}, h.LogActivity)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Edit a contact's name, email, phone, status, tags or next action",
	}, h.UpdateContact)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_inbox",
		Description: "List a workspace's classified inquiries, unhandled first",
	}, h.ListInbox)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_inbox_handled",
		Description: "Mark an inbox item handled or unhandled",
	}, h.MarkInboxHandled)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_workspace",
		Description: "Create a workspace",
	}, h.CreateWorkspace)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_workspaces",
		Description: "List workspaces",
	}, h.ListWorkspaces)

	h.registerResources(server)
	h.registerPrompts(server)
}

type ContactOutput struct {
	ID               string   `json:"id"`
	WorkspaceID      string   `json:"workspace_id"`
	Name             string   `json:"name"`
	Email            string   `json:"email,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Status           string   `json:"status"`
	Source           string   `json:"source,omitempty"`
	TrustSignals     []string `json:"trust_signals,omitempty"`
	NextAction       string   `json:"next_action,omitempty"`
	NextActionDate   string   `json:"next_action_date,omitempty"`
	LastActivity     string   `json:"last_activity"`
	CredibilityScore int      `json:"credibility_score"`
}

func contactToOutput(c *models.Contact) ContactOutput {
	out := ContactOutput{
		ID:               c.ID.String(),
		WorkspaceID:      c.WorkspaceID.String(),
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Tags:             c.Tags,
		Status:           c.Status,
		Source:           c.Source,
		TrustSignals:     c.TrustSignals,
		NextAction:       c.NextAction,
		LastActivity:     c.LastActivity.Format(dateLayout),
		CredibilityScore: c.CredibilityScore,
	}
	if c.NextActionDate != nil {
		out.NextActionDate = c.NextActionDate.Format(dateLayout)
	}
	return out
}

type PipelineItemOutput struct {
	ID               string `json:"id"`
	WorkspaceID      string `json:"workspace_id"`
	ContactID        string `json:"contact_id"`
	ContactName      string `json:"contact_name,omitempty"`
	CredibilityScore int    `json:"credibility_score,omitempty"`
	Stage            string `json:"stage"`
	LastTouch        string `json:"last_touch"`
	NextAction       string `json:"next_action,omitempty"`
}

func pipelineItemToOutput(p *models.PipelineItem) PipelineItemOutput {
	return PipelineItemOutput{
		ID:          p.ID.String(),
		WorkspaceID: p.WorkspaceID.String(),
		ContactID:   p.ContactID.String(),
		Stage:       p.Stage,
		LastTouch:   p.LastTouch.Format(dateLayout),
		NextAction:  p.NextAction,
	}
}

func pipelineEntryToOutput(e *models.PipelineEntry) PipelineItemOutput {
	out := pipelineItemToOutput(&e.PipelineItem)
	out.ContactName = e.ContactName
	out.CredibilityScore = e.CredibilityScore
	return out
}

type InboxItemOutput struct {
	ID                string         `json:"id"`
	WorkspaceID       string         `json:"workspace_id"`
	From              string         `json:"from"`
	Subject           string         `json:"subject"`
	Preview           string         `json:"preview,omitempty"`
	Classification    string         `json:"classification"`
	RecommendedAction string         `json:"recommended_action,omitempty"`
	Handled           bool           `json:"handled"`
	Date              string         `json:"date"`
	Signals           map[string]any `json:"signals,omitempty"`
	Rationale         string         `json:"rationale,omitempty"`
}

func inboxItemToOutput(item *models.InboxItem) InboxItemOutput {
	out := InboxItemOutput{
		ID:                item.ID.String(),
		WorkspaceID:       item.WorkspaceID.String(),
		From:              item.FromAddress,
		Subject:           item.Subject,
		Preview:           item.Preview,
		Classification:    item.Classification,
		RecommendedAction: item.RecommendedAction,
		Handled:           item.Handled,
		Date:              item.Date.Format(dateLayout),
	}
	if len(item.Signals) > 0 {
		_ = json.Unmarshal(item.Signals, &out.Signals)
	}
	if item.Rationale != nil {
		out.Rationale = *item.Rationale
	}
	return out
}

type ActivityOutput struct {
	ID          string `json:"id"`
	ContactID   string `json:"contact_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func activityToOutput(a *models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:          a.ID.String(),
		ContactID:   a.ContactID.String(),
		Type:        a.Type,
		Description: a.Description,
		Date:        a.Date.Format(dateLayout),
	}
}

type WorkspaceOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	OwnerID   string `json:"owner_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

func workspaceToOutput(ws *models.Workspace) WorkspaceOutput {
	return WorkspaceOutput{
		ID:        ws.ID.String(),
		Name:      ws.Name,
		Type:      ws.Type,
		Color:     ws.Color,
		OwnerID:   ws.OwnerID,
		CreatedAt: ws.CreatedAt.Format(time.RFC3339),
	}
}
