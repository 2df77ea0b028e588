// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Serves workspaces, pipeline boards and inboxes as JSON under boxcrm:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "boxcrm://"

func (h *Handlers) registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         uriScheme + "workspaces",
		Name:        "workspaces",
		Description: "All workspaces",
		MIMEType:    "application/json",
	}, h.ReadResource)
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "workspaces/{id}/pipeline",
		Name:        "pipeline",
		Description: "A workspace's pipeline board",
		MIMEType:    "application/json",
	}, h.ReadResource)
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "workspaces/{id}/inbox",
		Name:        "inbox",
		Description: "A workspace's classified inquiries",
		MIMEType:    "application/json",
	}, h.ReadResource)
}

// ReadResource handles resource read requests
func (h *Handlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", uriScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")
	if parts[0] != "workspaces" {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if len(parts) == 1 {
		return h.readWorkspaces(ctx, uri)
	}
	if len(parts) != 3 {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	workspaceID, err := ingest.ParseID("workspace_id", parts[1])
	if err != nil {
		return nil, err
	}

	switch parts[2] {
	case "pipeline":
		entries, err := h.svc.ListPipeline(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		items := make([]PipelineItemOutput, 0, len(entries))
		for i := range entries {
			items = append(items, pipelineEntryToOutput(&entries[i]))
		}
		return jsonResource(uri, items)
	case "inbox":
		inbox, err := h.svc.ListInbox(ctx, workspaceID, nil)
		if err != nil {
			return nil, err
		}
		items := make([]InboxItemOutput, 0, len(inbox))
		for i := range inbox {
			items = append(items, inboxItemToOutput(&inbox[i]))
		}
		return jsonResource(uri, items)
	}
	return nil, mcp.ResourceNotFoundError(uri)
}

func (h *Handlers) readWorkspaces(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	workspaces, err := h.svc.ListWorkspaces(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]WorkspaceOutput, 0, len(workspaces))
	for i := range workspaces {
		out = append(out, workspaceToOutput(&workspaces[i]))
	}
	return jsonResource(uri, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
