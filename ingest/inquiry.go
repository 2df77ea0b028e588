// ABOUTME: Intake of inquiries already classified by the external service
// ABOUTME: Every inquiry lands in the inbox; opportunities with contact info also become contacts
package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/logger"
	"github.com/harperreed/boxcrm/models"
)

var defaultRecommendedActions = map[string]string{
	models.ClassificationNoise:       "Mark as spam or unsubscribe sender",
	models.ClassificationRisk:        "Review carefully and consult with legal/compliance",
	models.ClassificationOpportunity: "Respond within 24 hours to capture lead",
	models.ClassificationReputation:  "Engage positively for testimonial or review opportunity",
}

// DefaultRecommendedAction returns the action suggested for a classification when the
// classifier did not supply one.
func DefaultRecommendedAction(classification string) string {
	return defaultRecommendedActions[classification]
}

// InquiryResult is the stored inbox item plus what happened to the sender's contact.
type InquiryResult struct {
	InboxItem      *models.InboxItem    `json:"inbox_item"`
	ContactCreated bool                 `json:"contact_created"`
	ContactID      *uuid.UUID           `json:"contact_id,omitempty"`
	PipelineItem   *models.PipelineItem `json:"pipeline_item,omitempty"`
}

// IngestClassifiedInquiry stores the inquiry in the workspace inbox. Opportunities that carry
// a name and email are matched to an existing contact by email or create a new one.
func (s *Service) IngestClassifiedInquiry(ctx context.Context, p *leads.InquiryPayload) (*InquiryResult, error) {
	if err := p.Validate(); err != nil {
		return nil, fromFieldError(err)
	}
	workspaceID := uuid.MustParse(p.WorkspaceID)
	today := s.today()

	item := &models.InboxItem{
		WorkspaceID:       workspaceID,
		FromAddress:       strings.TrimSpace(p.From),
		Subject:           p.Subject,
		Preview:           p.Preview,
		Classification:    p.Classification,
		RecommendedAction: p.RecommendedAction,
		Date:              today,
		Signals:           compactSignals(p.Signals),
		Rationale:         optional(p.Rationale),
		FullText:          optional(p.FullText),
	}
	if strings.TrimSpace(item.RecommendedAction) == "" {
		item.RecommendedAction = DefaultRecommendedAction(p.Classification)
	}

	result := &InquiryResult{InboxItem: item}
	err := s.inTx(ctx, "ingest inquiry", func(tx *sql.Tx) error {
		if _, err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		if err := db.CreateInboxItem(ctx, tx, item); err != nil {
			return err
		}

		if p.Classification != models.ClassificationOpportunity || !p.ContactInfo.Complete() {
			return nil
		}
		return s.captureOpportunity(ctx, tx, workspaceID, p, result)
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With("inbox_item_id", item.ID.String(), "classification", item.Classification)
	if result.ContactID != nil {
		log = log.With("contact_id", result.ContactID.String(), "contact_created", result.ContactCreated)
	}
	log.Info("inquiry ingested")
	return result, nil
}

func (s *Service) captureOpportunity(ctx context.Context, tx *sql.Tx, workspaceID uuid.UUID, p *leads.InquiryPayload, result *InquiryResult) error {
	today := s.today()
	info := p.ContactInfo

	// Run the classifier source rules for the label, next action and activity text.
	lead := &leads.LeadPayload{
		Source:            leads.SourceClassifier,
		Classification:    models.ClassificationOpportunity,
		Subject:           p.Subject,
		RecommendedAction: p.RecommendedAction,
	}
	nextAction := leads.BuildNextAction(leads.Classifier, lead)
	nextActionDate := today.AddDate(0, 0, opportunityFollowUpDays)

	contact, created, err := resolveContact(ctx, tx, workspaceID, info.Email, func() *models.Contact {
		return &models.Contact{
			WorkspaceID:      workspaceID,
			Name:             strings.TrimSpace(info.Name),
			Email:            strings.TrimSpace(info.Email),
			Phone:            strings.TrimSpace(info.Phone),
			Tags:             []string{"gravitas-lead", models.ClassificationOpportunity},
			Status:           models.StatusLead,
			Source:           leads.FormatSource(leads.Classifier, lead),
			TrustSignals:     append([]string{}, info.TrustSignals...),
			NextAction:       nextAction,
			NextActionDate:   &nextActionDate,
			LastActivity:     today,
			CredibilityScore: leads.OpportunityScore(info.TrustSignals),
		}
	})
	if err != nil {
		return err
	}

	description := "Gravitas classified inquiry: " + p.Subject
	if created {
		description = leads.BuildInitialActivity(leads.Classifier, lead)
	}
	err = db.CreateActivity(ctx, tx, &models.Activity{
		ContactID:   contact.ID,
		Type:        models.ActivityGravitas,
		Description: description,
		Date:        today,
	})
	if err != nil {
		return err
	}

	if created {
		item, _, err := enroll(ctx, tx, workspaceID, contact.ID, models.StageNew, nextAction, today)
		if err != nil {
			return err
		}
		result.PipelineItem = item
	}

	result.ContactCreated = created
	result.ContactID = &contact.ID
	return nil
}

// compactSignals drops absent or null signal blobs and normalizes whitespace.
func compactSignals(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return trimmed
	}
	return buf.Bytes()
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
