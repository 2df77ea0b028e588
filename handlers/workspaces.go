// ABOUTME: MCP tools for workspaces
package handlers

import (
	"context"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CreateWorkspaceInput struct {
	Name    string `json:"name" jsonschema:"Workspace name"`
	Type    string `json:"type,omitempty" jsonschema:"Workspace type (Real Estate, Consulting, Product, Other)"`
	Color   string `json:"color,omitempty" jsonschema:"Display color, picked from the palette when omitted"`
	OwnerID string `json:"owner_id,omitempty" jsonschema:"Owning user ID"`
}

func (h *Handlers) CreateWorkspace(ctx context.Context, req *mcp.CallToolRequest, input CreateWorkspaceInput) (*mcp.CallToolResult, WorkspaceOutput, error) {
	ws, err := h.svc.CreateWorkspace(ctx, ingest.WorkspaceInput(input))
	if err != nil {
		return nil, WorkspaceOutput{}, err
	}
	return nil, workspaceToOutput(ws), nil
}

type ListWorkspacesInput struct {
	OwnerID string `json:"owner_id,omitempty" jsonschema:"Only workspaces owned by this user"`
}

type ListWorkspacesOutput struct {
	Workspaces []WorkspaceOutput `json:"workspaces"`
}

func (h *Handlers) ListWorkspaces(ctx context.Context, req *mcp.CallToolRequest, input ListWorkspacesInput) (*mcp.CallToolResult, ListWorkspacesOutput, error) {
	workspaces, err := h.svc.ListWorkspaces(ctx, input.OwnerID)
	if err != nil {
		return nil, ListWorkspacesOutput{}, err
	}

	out := ListWorkspacesOutput{Workspaces: make([]WorkspaceOutput, 0, len(workspaces))}
	for i := range workspaces {
		out.Workspaces = append(out.Workspaces, workspaceToOutput(&workspaces[i]))
	}
	return nil, out, nil
}
