// ABOUTME: MCP tools for the classified inquiry inbox
package handlers

import (
	"context"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListInboxInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"Workspace ID"`
	Handled     *bool  `json:"handled,omitempty" jsonschema:"Only items with this handled state; omit for all"`
}

type ListInboxOutput struct {
	Items []InboxItemOutput `json:"items"`
}

func (h *Handlers) ListInbox(ctx context.Context, req *mcp.CallToolRequest, input ListInboxInput) (*mcp.CallToolResult, ListInboxOutput, error) {
	workspaceID, err := ingest.ParseID("workspace_id", input.WorkspaceID)
	if err != nil {
		return nil, ListInboxOutput{}, err
	}

	items, err := h.svc.ListInbox(ctx, workspaceID, input.Handled)
	if err != nil {
		return nil, ListInboxOutput{}, err
	}

	out := ListInboxOutput{Items: make([]InboxItemOutput, 0, len(items))}
	for i := range items {
		out.Items = append(out.Items, inboxItemToOutput(&items[i]))
	}
	return nil, out, nil
}

type MarkInboxHandledInput struct {
	ID      string `json:"id" jsonschema:"Inbox item ID"`
	Handled *bool  `json:"handled,omitempty" jsonschema:"Handled state, defaults to true"`
}

func (h *Handlers) MarkInboxHandled(ctx context.Context, req *mcp.CallToolRequest, input MarkInboxHandledInput) (*mcp.CallToolResult, InboxItemOutput, error) {
	id, err := ingest.ParseID("id", input.ID)
	if err != nil {
		return nil, InboxItemOutput{}, err
	}

	handled := true
	if input.Handled != nil {
		handled = *input.Handled
	}

	item, err := h.svc.SetInboxHandled(ctx, id, handled)
	if err != nil {
		return nil, InboxItemOutput{}, err
	}
	return nil, inboxItemToOutput(item), nil
}
