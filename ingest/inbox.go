// ABOUTME: Inbox listing and the handled toggle
// ABOUTME: Unhandled items sort first, newest first within each group
package ingest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/models"
)

// ListInbox lists a workspace inbox. A nil handled returns both states.
func (s *Service) ListInbox(ctx context.Context, workspaceID uuid.UUID, handled *bool) ([]models.InboxItem, error) {
	var items []models.InboxItem
	err := s.inTx(ctx, "list inbox", func(tx *sql.Tx) error {
		if _, err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		var err error
		items, err = db.ListInbox(ctx, tx, workspaceID, handled)
		return err
	})
	return items, err
}

func (s *Service) SetInboxHandled(ctx context.Context, id uuid.UUID, handled bool) (*models.InboxItem, error) {
	var item *models.InboxItem
	err := s.inTx(ctx, "update inbox item", func(tx *sql.Tx) error {
		err := db.SetInboxHandled(ctx, tx, id, handled)
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Entity: "inbox item", ID: id.String()}
		}
		if err != nil {
			return err
		}
		item, err = db.GetInboxItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
