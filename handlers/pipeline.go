// ABOUTME: MCP tools for the pipeline board
// ABOUTME: Moves items between stages, enrolls contacts and lists a workspace's board
package handlers

import (
	"context"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type MoveStageInput struct {
	ID    string `json:"id" jsonschema:"Pipeline item ID"`
	Stage string `json:"stage" jsonschema:"Target stage (new, active, hot, under_contract, closed)"`
}

func (h *Handlers) MoveStage(ctx context.Context, req *mcp.CallToolRequest, input MoveStageInput) (*mcp.CallToolResult, PipelineItemOutput, error) {
	id, err := ingest.ParseID("id", input.ID)
	if err != nil {
		return nil, PipelineItemOutput{}, err
	}

	item, err := h.svc.MoveStage(ctx, id, input.Stage)
	if err != nil {
		return nil, PipelineItemOutput{}, err
	}
	return nil, pipelineItemToOutput(item), nil
}

type AddToPipelineInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"Workspace ID"`
	ContactID   string `json:"contact_id" jsonschema:"Contact ID"`
	Stage       string `json:"stage,omitempty" jsonschema:"Starting stage, defaults to new"`
	NextAction  string `json:"next_action,omitempty" jsonschema:"Next action for the item"`
}

type AddToPipelineOutput struct {
	PipelineItem PipelineItemOutput `json:"pipeline_item"`
	Created      bool               `json:"created"`
}

func (h *Handlers) AddToPipeline(ctx context.Context, req *mcp.CallToolRequest, input AddToPipelineInput) (*mcp.CallToolResult, AddToPipelineOutput, error) {
	workspaceID, err := ingest.ParseID("workspace_id", input.WorkspaceID)
	if err != nil {
		return nil, AddToPipelineOutput{}, err
	}
	contactID, err := ingest.ParseID("contact_id", input.ContactID)
	if err != nil {
		return nil, AddToPipelineOutput{}, err
	}

	item, created, err := h.svc.AddToPipeline(ctx, workspaceID, contactID, input.Stage, input.NextAction)
	if err != nil {
		return nil, AddToPipelineOutput{}, err
	}
	return nil, AddToPipelineOutput{PipelineItem: pipelineItemToOutput(item), Created: created}, nil
}

type ListPipelineInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"Workspace ID"`
}

type ListPipelineOutput struct {
	Items []PipelineItemOutput `json:"items"`
}

func (h *Handlers) ListPipeline(ctx context.Context, req *mcp.CallToolRequest, input ListPipelineInput) (*mcp.CallToolResult, ListPipelineOutput, error) {
	workspaceID, err := ingest.ParseID("workspace_id", input.WorkspaceID)
	if err != nil {
		return nil, ListPipelineOutput{}, err
	}

	entries, err := h.svc.ListPipeline(ctx, workspaceID)
	if err != nil {
		return nil, ListPipelineOutput{}, err
	}

	out := ListPipelineOutput{Items: make([]PipelineItemOutput, 0, len(entries))}
	for i := range entries {
		out.Items = append(out.Items, pipelineEntryToOutput(&entries[i]))
	}
	return nil, out, nil
}
