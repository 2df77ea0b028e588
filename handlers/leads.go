// ABOUTME: MCP tools for lead and classified inquiry intake
// ABOUTME: Converts tool input into ingestion payloads and returns string-typed results
package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/boxcrm/leads"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type IngestLeadInput struct {
	Source            string   `json:"source" jsonschema:"Lead source (reviewsniper, boxford, urla-form, mailboxford, gravitas)"`
	WorkspaceID       string   `json:"workspace_id" jsonschema:"Workspace ID"`
	Name              string   `json:"name" jsonschema:"Lead's name"`
	Email             string   `json:"email" jsonschema:"Lead's email address"`
	Phone             string   `json:"phone,omitempty" jsonschema:"Phone number"`
	Market            string   `json:"market,omitempty" jsonschema:"Market or region"`
	PainPoints        string   `json:"pain_points,omitempty" jsonschema:"What the lead needs help with"`
	Role              string   `json:"role,omitempty" jsonschema:"Lead's role or title"`
	Industry          string   `json:"industry,omitempty" jsonschema:"Lead's industry"`
	Subject           string   `json:"subject,omitempty" jsonschema:"Subject line of the inquiry"`
	Classification    string   `json:"classification,omitempty" jsonschema:"Classifier result (noise, risk, opportunity, reputation)"`
	TrustSignals      []string `json:"trust_signals,omitempty" jsonschema:"Extra trust signals"`
	RecommendedAction string   `json:"recommended_action,omitempty" jsonschema:"Suggested next action"`
}

type IngestLeadOutput struct {
	Contact      ContactOutput       `json:"contact"`
	Created      bool                `json:"created"`
	Score        int                 `json:"score"`
	Activity     ActivityOutput      `json:"activity"`
	PipelineItem *PipelineItemOutput `json:"pipeline_item,omitempty"`
}

func (h *Handlers) IngestLead(ctx context.Context, req *mcp.CallToolRequest, input IngestLeadInput) (*mcp.CallToolResult, IngestLeadOutput, error) {
	payload := leads.LeadPayload(input)
	result, err := h.svc.IngestLead(ctx, &payload)
	if err != nil {
		return nil, IngestLeadOutput{}, err
	}

	out := IngestLeadOutput{
		Contact:  contactToOutput(result.Contact),
		Created:  result.Created,
		Score:    result.Score,
		Activity: activityToOutput(result.Activity),
	}
	if result.PipelineItem != nil {
		item := pipelineItemToOutput(result.PipelineItem)
		out.PipelineItem = &item
	}
	return nil, out, nil
}

type ContactInfoInput struct {
	Name         string   `json:"name" jsonschema:"Sender's name"`
	Email        string   `json:"email" jsonschema:"Sender's email address"`
	Phone        string   `json:"phone,omitempty" jsonschema:"Sender's phone number"`
	TrustSignals []string `json:"trust_signals,omitempty" jsonschema:"Trust signals observed by the classifier"`
}

type IngestInquiryInput struct {
	WorkspaceID       string            `json:"workspace_id" jsonschema:"Workspace ID"`
	From              string            `json:"from" jsonschema:"Sender address"`
	Subject           string            `json:"subject" jsonschema:"Subject line"`
	Preview           string            `json:"preview,omitempty" jsonschema:"Short preview of the message"`
	Classification    string            `json:"classification" jsonschema:"Classification (noise, risk, opportunity, reputation)"`
	RecommendedAction string            `json:"recommended_action,omitempty" jsonschema:"Suggested action"`
	Signals           map[string]any    `json:"signals,omitempty" jsonschema:"Classifier signals"`
	Rationale         string            `json:"rationale,omitempty" jsonschema:"Why the classifier chose this classification"`
	FullText          string            `json:"full_text,omitempty" jsonschema:"Full message text"`
	ContactInfo       *ContactInfoInput `json:"contact_info,omitempty" jsonschema:"Sender details, used to capture opportunities"`
}

type IngestInquiryOutput struct {
	InboxItem      InboxItemOutput     `json:"inbox_item"`
	ContactCreated bool                `json:"contact_created"`
	ContactID      string              `json:"contact_id,omitempty"`
	PipelineItem   *PipelineItemOutput `json:"pipeline_item,omitempty"`
}

func (h *Handlers) IngestInquiry(ctx context.Context, req *mcp.CallToolRequest, input IngestInquiryInput) (*mcp.CallToolResult, IngestInquiryOutput, error) {
	payload := leads.InquiryPayload{
		WorkspaceID:       input.WorkspaceID,
		From:              input.From,
		Subject:           input.Subject,
		Preview:           input.Preview,
		Classification:    input.Classification,
		RecommendedAction: input.RecommendedAction,
		Rationale:         input.Rationale,
		FullText:          input.FullText,
	}
	if input.Signals != nil {
		raw, err := json.Marshal(input.Signals)
		if err != nil {
			return nil, IngestInquiryOutput{}, fmt.Errorf("invalid signals: %w", err)
		}
		payload.Signals = raw
	}
	if input.ContactInfo != nil {
		info := leads.ContactInfo(*input.ContactInfo)
		payload.ContactInfo = &info
	}

	result, err := h.svc.IngestClassifiedInquiry(ctx, &payload)
	if err != nil {
		return nil, IngestInquiryOutput{}, err
	}

	out := IngestInquiryOutput{
		InboxItem:      inboxItemToOutput(result.InboxItem),
		ContactCreated: result.ContactCreated,
	}
	if result.ContactID != nil {
		out.ContactID = result.ContactID.String()
	}
	if result.PipelineItem != nil {
		item := pipelineItemToOutput(result.PipelineItem)
		out.PipelineItem = &item
	}
	return nil, out, nil
}
