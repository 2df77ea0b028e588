// ABOUTME: MCP tools for contacts
// ABOUTME: Searches and edits contacts and logs activity against them
package handlers

import (
	"context"
	"time"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultFindLimit = 10

type FindContactsInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"Workspace ID"`
	Query       string `json:"query,omitempty" jsonschema:"Search by name or email"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *Handlers) FindContacts(ctx context.Context, req *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	workspaceID, err := ingest.ParseID("workspace_id", input.WorkspaceID)
	if err != nil {
		return nil, FindContactsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultFindLimit
	}

	contacts, err := h.svc.FindContacts(ctx, workspaceID, input.Query, limit)
	if err != nil {
		return nil, FindContactsOutput{}, err
	}

	out := FindContactsOutput{Contacts: make([]ContactOutput, 0, len(contacts))}
	for i := range contacts {
		out.Contacts = append(out.Contacts, contactToOutput(&contacts[i]))
	}
	return nil, out, nil
}

type LogActivityInput struct {
	ContactID   string `json:"contact_id" jsonschema:"Contact ID"`
	Type        string `json:"type" jsonschema:"Activity type (call, email, text, note)"`
	Description string `json:"description" jsonschema:"What happened"`
}

func (h *Handlers) LogActivity(ctx context.Context, req *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	contactID, err := ingest.ParseID("contact_id", input.ContactID)
	if err != nil {
		return nil, ActivityOutput{}, err
	}

	activity, err := h.svc.LogActivity(ctx, contactID, input.Type, input.Description)
	if err != nil {
		return nil, ActivityOutput{}, err
	}
	return nil, activityToOutput(activity), nil
}

type UpdateContactInput struct {
	ID             string   `json:"id" jsonschema:"Contact ID (required)"`
	Name           string   `json:"name,omitempty" jsonschema:"Updated contact name"`
	Email          string   `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone          string   `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Status         string   `json:"status,omitempty" jsonschema:"active, inactive or lead"`
	Tags           []string `json:"tags,omitempty" jsonschema:"Replacement tag list"`
	NextAction     string   `json:"next_action,omitempty" jsonschema:"Updated next action"`
	NextActionDate string   `json:"next_action_date,omitempty" jsonschema:"Next action due date (YYYY-MM-DD)"`
}

// UpdateContact changes only the fields given a non-empty value.
func (h *Handlers) UpdateContact(ctx context.Context, req *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	id, err := ingest.ParseID("id", input.ID)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	u := ingest.ContactUpdate{
		Name:       nonEmpty(input.Name),
		Email:      nonEmpty(input.Email),
		Phone:      nonEmpty(input.Phone),
		Status:     nonEmpty(input.Status),
		Tags:       input.Tags,
		NextAction: nonEmpty(input.NextAction),
	}
	if input.NextActionDate != "" {
		due, err := time.Parse(dateLayout, input.NextActionDate)
		if err != nil {
			return nil, ContactOutput{}, &ingest.ValidationError{Field: "next_action_date", Reason: "must be YYYY-MM-DD"}
		}
		u.NextActionDate = &due
	}

	contact, err := h.svc.UpdateContact(ctx, id, u)
	if err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, contactToOutput(contact), nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
