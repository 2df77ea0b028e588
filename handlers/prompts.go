// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Builds triage and follow-up prompts from live inbox, pipeline and contact data
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (h *Handlers) registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "inbox-triage",
		Description: "Review unhandled inquiries in a workspace and suggest what to do with each",
		Arguments: []*mcp.PromptArgument{
			{Name: "workspace_id", Description: "Workspace ID", Required: true},
		},
	}, h.GetPrompt)
	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Suggest follow-ups for a contact based on their score and activity",
		Arguments: []*mcp.PromptArgument{
			{Name: "contact_id", Description: "Contact ID", Required: true},
		},
	}, h.GetPrompt)
}

// GetPrompt generates the prompt message based on the template
func (h *Handlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "inbox-triage":
		return h.inboxTriagePrompt(ctx, request.Params.Arguments)
	case "follow-up-suggestions":
		return h.followUpPrompt(ctx, request.Params.Arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *Handlers) inboxTriagePrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	workspaceID, err := ingest.ParseID("workspace_id", args["workspace_id"])
	if err != nil {
		return nil, err
	}

	handled := false
	items, err := h.svc.ListInbox(ctx, workspaceID, &handled)
	if err != nil {
		return nil, err
	}

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("There are %d unhandled inquiries in this workspace:\n", len(items)))
	for _, item := range items {
		promptText.WriteString(fmt.Sprintf("\n- [%s] %s from %s (%s)\n", item.Classification, item.Subject, item.FromAddress, item.Date.Format(dateLayout)))
		if item.Preview != "" {
			promptText.WriteString(fmt.Sprintf("  Preview: %s\n", item.Preview))
		}
		if item.RecommendedAction != "" {
			promptText.WriteString(fmt.Sprintf("  Recommended: %s\n", item.RecommendedAction))
		}
	}

	promptText.WriteString("\nFor each inquiry, say whether to respond, escalate or dismiss it, and draft a one-line reply for opportunities.")

	return &mcp.GetPromptResult{
		Description: "Inbox triage",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *Handlers) followUpPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	contactID, err := ingest.ParseID("contact_id", args["contact_id"])
	if err != nil {
		return nil, err
	}

	contact, err := h.svc.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	var promptText strings.Builder
	promptText.WriteString("Suggest the next follow-up for this contact:\n\n")
	promptText.WriteString(fmt.Sprintf("Name: %s\n", contact.Name))
	if contact.Email != "" {
		promptText.WriteString(fmt.Sprintf("Email: %s\n", contact.Email))
	}
	promptText.WriteString(fmt.Sprintf("Source: %s\n", contact.Source))
	promptText.WriteString(fmt.Sprintf("Credibility Score: %d\n", contact.CredibilityScore))
	if len(contact.TrustSignals) > 0 {
		promptText.WriteString(fmt.Sprintf("Trust Signals: %s\n", strings.Join(contact.TrustSignals, "; ")))
	}
	if contact.NextAction != "" {
		promptText.WriteString(fmt.Sprintf("Planned Next Action: %s\n", contact.NextAction))
	}
	writeActivities(&promptText, contact.Activities)

	promptText.WriteString("\nRecommend one concrete next step, when to take it, and a short message to send.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Follow-up suggestions for %s", contact.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func writeActivities(b *strings.Builder, activities []models.Activity) {
	if len(activities) == 0 {
		return
	}
	b.WriteString("\nRecent Activity:\n")
	for i, a := range activities {
		if i == 5 {
			break
		}
		b.WriteString(fmt.Sprintf("- %s %s: %s\n", a.Date.Format(dateLayout), a.Type, a.Description))
	}
}
