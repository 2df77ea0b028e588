// ABOUTME: Contact and activity operations outside of lead ingestion
// ABOUTME: Listing with timelines, field edits, deletion and manual activity logging
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/models"
)

// ContactUpdate holds field edits; nil fields are left unchanged.
type ContactUpdate struct {
	Name             *string    `json:"name,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Status           *string    `json:"status,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	NextAction       *string    `json:"next_action,omitempty"`
	NextActionDate   *time.Time `json:"next_action_date,omitempty"`
	CredibilityScore *int       `json:"credibility_score,omitempty"`
}

func (u ContactUpdate) validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return invalid("name", "must not be blank")
	}
	if u.Email != nil && strings.TrimSpace(*u.Email) != "" {
		if !leads.ValidEmail(*u.Email) {
			return invalid("email", "must be an email address")
		}
	}
	if u.Status != nil && !models.IsValidContactStatus(*u.Status) {
		return invalid("status", "must be one of: active, inactive, lead")
	}
	if u.CredibilityScore != nil && (*u.CredibilityScore < 0 || *u.CredibilityScore > 100) {
		return invalid("credibility_score", "must be between 0 and 100")
	}
	return nil
}

func (u ContactUpdate) apply(c *models.Contact) {
	if u.Name != nil {
		c.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		c.Email = strings.TrimSpace(*u.Email)
	}
	if u.Phone != nil {
		c.Phone = strings.TrimSpace(*u.Phone)
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Tags != nil {
		c.Tags = u.Tags
	}
	if u.NextAction != nil {
		c.NextAction = *u.NextAction
	}
	if u.NextActionDate != nil {
		d := clock.Date(*u.NextActionDate)
		c.NextActionDate = &d
	}
	if u.CredibilityScore != nil {
		c.CredibilityScore = *u.CredibilityScore
	}
}

// ListContacts returns every contact in the workspace with its activity timeline.
func (s *Service) ListContacts(ctx context.Context, workspaceID uuid.UUID) ([]models.ContactWithActivities, error) {
	var out []models.ContactWithActivities
	err := s.inTx(ctx, "list contacts", func(tx *sql.Tx) error {
		if _, err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		contacts, err := db.FindContacts(ctx, tx, workspaceID, "", 0)
		if err != nil {
			return err
		}
		for _, c := range contacts {
			activities, err := db.ListActivities(ctx, tx, c.ID)
			if err != nil {
				return err
			}
			out = append(out, models.ContactWithActivities{Contact: c, Activities: activities})
		}
		return nil
	})
	return out, err
}

// FindContacts searches a workspace's contacts by name or email substring.
func (s *Service) FindContacts(ctx context.Context, workspaceID uuid.UUID, query string, limit int) ([]models.Contact, error) {
	contacts, err := db.FindContacts(ctx, s.db, workspaceID, query, limit)
	if err != nil {
		return nil, &StoreError{Op: "find contacts", Err: err}
	}
	return contacts, nil
}

func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (*models.ContactWithActivities, error) {
	var out *models.ContactWithActivities
	err := s.inTx(ctx, "get contact", func(tx *sql.Tx) error {
		c, err := requireContact(ctx, tx, id)
		if err != nil {
			return err
		}
		activities, err := db.ListActivities(ctx, tx, id)
		if err != nil {
			return err
		}
		out = &models.ContactWithActivities{Contact: *c, Activities: activities}
		return nil
	})
	return out, err
}

func (s *Service) UpdateContact(ctx context.Context, id uuid.UUID, u ContactUpdate) (*models.Contact, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}

	var contact *models.Contact
	err := s.inTx(ctx, "update contact", func(tx *sql.Tx) error {
		c, err := requireContact(ctx, tx, id)
		if err != nil {
			return err
		}
		u.apply(c)
		err = db.UpdateContact(ctx, tx, c)
		if errors.Is(err, db.ErrConflict) {
			return &ConflictError{Entity: "contact", Key: leads.NormalizeEmail(c.Email)}
		}
		if err != nil {
			return err
		}
		contact = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact with its activities and pipeline item.
func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, "delete contact", func(tx *sql.Tx) error {
		err := db.DeleteContact(ctx, tx, id)
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Entity: "contact", ID: id.String()}
		}
		return err
	})
}

// LogActivity appends an activity dated today to a contact's timeline.
func (s *Service) LogActivity(ctx context.Context, contactID uuid.UUID, activityType, description string) (*models.Activity, error) {
	if !models.IsValidActivityType(activityType) {
		return nil, invalid("type", "must be one of: call, email, text, note, gravitas")
	}
	if strings.TrimSpace(description) == "" {
		return nil, invalid("description", "is required")
	}

	activity := &models.Activity{
		ContactID:   contactID,
		Type:        activityType,
		Description: strings.TrimSpace(description),
		Date:        s.today(),
	}
	err := s.inTx(ctx, "log activity", func(tx *sql.Tx) error {
		err := db.CreateActivity(ctx, tx, activity)
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Entity: "contact", ID: contactID.String()}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}
