// ABOUTME: Lead ingestion: score, dedup by email, log the initial activity, enroll in the pipeline
// ABOUTME: Also applies loan application updates to an existing contact
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/logger"
	"github.com/harperreed/boxcrm/models"
)

// LeadResult is the outcome of ingesting one lead.
type LeadResult struct {
	Contact      *models.Contact      `json:"contact"`
	Created      bool                 `json:"created"`
	Score        int                  `json:"score"`
	Activity     *models.Activity     `json:"activity"`
	PipelineItem *models.PipelineItem `json:"pipeline_item,omitempty"`
}

// IngestLead stores a lead from an external source. A lead whose email already belongs to
// a contact in the workspace is attached to that contact rather than creating another.
func (s *Service) IngestLead(ctx context.Context, p *leads.LeadPayload) (*LeadResult, error) {
	return s.ingestLead(ctx, p, nil)
}

// ImportRecord names the external item a lead was imported from.
type ImportRecord struct {
	Service  string
	SourceID string
	Metadata string
}

// IngestImportedLead ingests p and records rec in the sync log within the same
// transaction. An item already in the sync log yields a ConflictError and changes nothing.
func (s *Service) IngestImportedLead(ctx context.Context, p *leads.LeadPayload, rec ImportRecord) (*LeadResult, error) {
	return s.ingestLead(ctx, p, func(tx *sql.Tx, r *LeadResult) error {
		err := db.CreateSyncLog(ctx, tx, rec.Service, rec.SourceID, "contact", r.Contact.ID, rec.Metadata)
		if errors.Is(err, db.ErrConflict) {
			return &ConflictError{Entity: rec.Service + " item", Key: rec.SourceID}
		}
		return err
	})
}

// ingestLead runs the lead sequence; afterWrite, when set, joins the same transaction.
func (s *Service) ingestLead(ctx context.Context, p *leads.LeadPayload, afterWrite func(tx *sql.Tx, r *LeadResult) error) (*LeadResult, error) {
	if err := p.Validate(); err != nil {
		return nil, fromFieldError(err)
	}
	workspaceID := uuid.MustParse(p.WorkspaceID)
	assessment := leads.Assess(p)
	today := s.today()

	result := &LeadResult{Score: assessment.Score}
	err := s.inTx(ctx, "ingest lead", func(tx *sql.Tx) error {
		if _, err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}

		nextActionDate := today.AddDate(0, 0, leadFollowUpDays)
		contact, created, err := resolveContact(ctx, tx, workspaceID, p.Email, func() *models.Contact {
			return &models.Contact{
				WorkspaceID:      workspaceID,
				Name:             strings.TrimSpace(p.Name),
				Email:            strings.TrimSpace(p.Email),
				Phone:            strings.TrimSpace(p.Phone),
				Tags:             assessment.Tags,
				Status:           models.StatusLead,
				Source:           assessment.SourceLabel,
				TrustSignals:     assessment.TrustSignals,
				NextAction:       assessment.NextAction,
				NextActionDate:   &nextActionDate,
				LastActivity:     today,
				CredibilityScore: assessment.Score,
			}
		})
		if err != nil {
			return err
		}

		if !created {
			mergeAssessment(contact, p, assessment)
			if err := db.UpdateContact(ctx, tx, contact); err != nil {
				return err
			}
		}

		activity := &models.Activity{
			ContactID:   contact.ID,
			Type:        assessment.ActivityType,
			Description: assessment.InitialActivity,
			Date:        today,
		}
		if err := db.CreateActivity(ctx, tx, activity); err != nil {
			return err
		}
		contact.LastActivity = activity.Date

		if assessment.EnterPipeline {
			item, _, err := enroll(ctx, tx, workspaceID, contact.ID, models.StageNew, assessment.NextAction, today)
			if err != nil {
				return err
			}
			result.PipelineItem = item
		}

		result.Contact = contact
		result.Created = created
		result.Activity = activity
		if afterWrite != nil {
			return afterWrite(tx, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("lead ingested",
		"source", assessment.Source.Name(),
		"workspace_id", workspaceID.String(),
		"contact_id", result.Contact.ID.String(),
		"created", result.Created,
		"score", result.Score,
		"pipeline", result.PipelineItem != nil,
	)
	return result, nil
}

// mergeAssessment folds a repeat lead into an existing contact: new tags and signals are
// appended, blanks are filled, and the score only ever rises.
func mergeAssessment(c *models.Contact, p *leads.LeadPayload, a leads.Assessment) {
	c.Tags = appendMissing(c.Tags, a.Tags)
	c.TrustSignals = appendMissing(c.TrustSignals, a.TrustSignals)
	if c.Phone == "" {
		c.Phone = strings.TrimSpace(p.Phone)
	}
	if c.NextAction == "" {
		c.NextAction = a.NextAction
	}
	c.CredibilityScore = max(c.CredibilityScore, a.Score)
}

func appendMissing(list, more []string) []string {
	for _, v := range more {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}

// UpdateLoanApplication records new loan application details against an existing contact.
func (s *Service) UpdateLoanApplication(ctx context.Context, u *leads.LoanUpdate) (*models.Contact, error) {
	if err := u.Validate(); err != nil {
		return nil, fromFieldError(err)
	}
	contactID := uuid.MustParse(u.ContactID)
	workspaceID := uuid.MustParse(u.WorkspaceID)
	today := s.today()

	var contact *models.Contact
	err := s.inTx(ctx, "update loan application", func(tx *sql.Tx) error {
		c, err := db.GetContact(ctx, tx, contactID)
		if err != nil {
			return err
		}
		if c == nil || c.WorkspaceID != workspaceID {
			return &NotFoundError{Entity: "contact", ID: contactID.String()}
		}

		if details := u.Details(); len(details) > 0 {
			err = db.CreateActivity(ctx, tx, &models.Activity{
				ContactID:   c.ID,
				Type:        models.ActivityNote,
				Description: "URLA application update - " + strings.Join(details, ", "),
				Date:        today,
			})
		} else {
			err = db.TouchContact(ctx, tx, c.ID, today)
		}
		if err != nil {
			return err
		}

		c.LastActivity = today
		contact = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("loan application updated", "contact_id", contactID.String())
	return contact, nil
}
