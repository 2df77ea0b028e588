// ABOUTME: Pipeline operations: stage moves, manual enrollment, removal and board listing
// ABOUTME: Any stage may move to any other; moving stamps last touch with today's date
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/logger"
	"github.com/harperreed/boxcrm/models"
)

const defaultPipelineAction = "Follow up"

func validateStage(stage string) error {
	if !models.IsValidStage(stage) {
		return invalid("stage", "must be one of: "+strings.Join(models.Stages, ", "))
	}
	return nil
}

// MoveStage moves a pipeline item to stage. Moving to the current stage only refreshes
// the last touch date.
func (s *Service) MoveStage(ctx context.Context, id uuid.UUID, stage string) (*models.PipelineItem, error) {
	if err := validateStage(stage); err != nil {
		return nil, err
	}
	today := s.today()

	var item *models.PipelineItem
	err := s.inTx(ctx, "move pipeline stage", func(tx *sql.Tx) error {
		current, err := db.GetPipelineItem(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &NotFoundError{Entity: "pipeline item", ID: id.String()}
		}
		if err := db.UpdatePipelineStage(ctx, tx, id, stage, today); err != nil {
			return err
		}

		logger.FromContext(ctx).Info("pipeline stage moved",
			"pipeline_item_id", id.String(), "from", current.Stage, "to", stage)
		current.Stage = stage
		current.LastTouch = today
		item = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddToPipeline enrolls a contact. A contact that is already enrolled gets its existing item
// back with created false.
func (s *Service) AddToPipeline(ctx context.Context, workspaceID, contactID uuid.UUID, stage, nextAction string) (*models.PipelineItem, bool, error) {
	if stage == "" {
		stage = models.StageNew
	}
	if err := validateStage(stage); err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(nextAction) == "" {
		nextAction = defaultPipelineAction
	}
	today := s.today()

	var item *models.PipelineItem
	var created bool
	err := s.inTx(ctx, "add to pipeline", func(tx *sql.Tx) error {
		if _, err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		c, err := requireContact(ctx, tx, contactID)
		if err != nil {
			return err
		}
		if c.WorkspaceID != workspaceID {
			return &NotFoundError{Entity: "contact", ID: contactID.String()}
		}

		item, created, err = enroll(ctx, tx, workspaceID, contactID, stage, nextAction, today)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

func (s *Service) RemoveFromPipeline(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, "remove from pipeline", func(tx *sql.Tx) error {
		err := db.DeletePipelineItem(ctx, tx, id)
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Entity: "pipeline item", ID: id.String()}
		}
		return err
	})
}

// ListPipeline returns the workspace board in stage order.
func (s *Service) ListPipeline(ctx context.Context, workspaceID uuid.UUID) ([]models.PipelineEntry, error) {
	var entries []models.PipelineEntry
	err := s.inTx(ctx, "list pipeline", func(tx *sql.Tx) error {
		if _, err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		var err error
		entries, err = db.ListPipeline(ctx, tx, workspaceID)
		return err
	})
	return entries, err
}
