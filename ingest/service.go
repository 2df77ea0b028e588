// ABOUTME: Service ties the entity store to the lead rules and an injected clock
// ABOUTME: Every operation runs as one transaction so a failed step leaves nothing behind
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/leads"
	"github.com/harperreed/boxcrm/models"
)

// Days between ingestion and the first follow-up.
const (
	leadFollowUpDays        = 2
	opportunityFollowUpDays = 1
)

type Service struct {
	db    *sql.DB
	clock clock.Clock
}

// NewService returns a Service over database. A nil clock means the wall clock.
func NewService(database *sql.DB, c clock.Clock) *Service {
	if c == nil {
		c = clock.System()
	}
	return &Service{db: database, clock: c}
}

// DB exposes the underlying handle for read-only collaborators such as the sync log.
func (s *Service) DB() *sql.DB {
	return s.db
}

func (s *Service) today() time.Time {
	return clock.Today(s.clock)
}

// inTx runs fn in a transaction. Caller-facing errors pass through; anything else is
// reported as a StoreError for op.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	err := db.WithTx(ctx, s.db, fn)
	if err == nil || isCallerError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func requireWorkspace(ctx context.Context, q db.Querier, id uuid.UUID) (*models.Workspace, error) {
	ws, err := db.GetWorkspace(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, &NotFoundError{Entity: "workspace", ID: id.String()}
	}
	return ws, nil
}

func requireContact(ctx context.Context, q db.Querier, id uuid.UUID) (*models.Contact, error) {
	c, err := db.GetContact(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Entity: "contact", ID: id.String()}
	}
	return c, nil
}

// resolveContact returns the workspace contact with email, inserting build() when there is
// none. If the insert loses a uniqueness race the winning row is returned instead.
func resolveContact(ctx context.Context, q db.Querier, workspaceID uuid.UUID, email string, build func() *models.Contact) (*models.Contact, bool, error) {
	existing, err := db.FindContactByEmail(ctx, q, workspaceID, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	c := build()
	err = db.CreateContact(ctx, q, c)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, db.ErrConflict) {
		return nil, false, err
	}

	existing, err = db.FindContactByEmail(ctx, q, workspaceID, email)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, &ConflictError{Entity: "contact", Key: leads.NormalizeEmail(email)}
	}
	return existing, false, nil
}

// enroll returns the contact's pipeline item, creating one at stage when absent.
func enroll(ctx context.Context, q db.Querier, workspaceID, contactID uuid.UUID, stage, nextAction string, today time.Time) (*models.PipelineItem, bool, error) {
	item, err := db.GetPipelineItemByContact(ctx, q, contactID)
	if err != nil || item != nil {
		return item, false, err
	}

	item = &models.PipelineItem{
		WorkspaceID: workspaceID,
		ContactID:   contactID,
		Stage:       stage,
		LastTouch:   today,
		NextAction:  nextAction,
	}
	err = db.CreatePipelineItem(ctx, q, item)
	if err == nil {
		return item, true, nil
	}
	if !errors.Is(err, db.ErrConflict) {
		return nil, false, err
	}

	item, err = db.GetPipelineItemByContact(ctx, q, contactID)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, &ConflictError{Entity: "pipeline item", Key: contactID.String()}
	}
	return item, false, nil
}
