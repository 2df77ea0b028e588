// ABOUTME: Workspace management: create, list, rename, delete and first-run defaults
// ABOUTME: New workspaces without a color take the next one from a fixed palette
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

const defaultWorkspaceName = "My Workspace"

type WorkspaceInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Color   string `json:"color,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
}

func (s *Service) CreateWorkspace(ctx context.Context, in WorkspaceInput) (*models.Workspace, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	wsType := in.Type
	if wsType == "" {
		wsType = models.WorkspaceOther
	}
	if !models.IsValidWorkspaceType(wsType) {
		return nil, invalid("type", "must be one of: "+strings.Join(models.WorkspaceTypes, ", "))
	}

	ws := &models.Workspace{Name: name, Type: wsType, Color: in.Color, OwnerID: in.OwnerID}
	err := s.inTx(ctx, "create workspace", func(tx *sql.Tx) error {
		if ws.Color == "" {
			n, err := db.CountWorkspaces(ctx, tx, in.OwnerID)
			if err != nil {
				return err
			}
			ws.Color = models.WorkspaceColors[n%len(models.WorkspaceColors)]
		}
		return db.CreateWorkspace(ctx, tx, ws)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("workspace created", "workspace_id", ws.ID.String(), "name", ws.Name)
	return ws, nil
}

// EnsureDefaultWorkspace returns the owner's workspaces, creating a default one first when
// the owner has none.
func (s *Service) EnsureDefaultWorkspace(ctx context.Context, ownerID string) ([]models.Workspace, error) {
	list, err := s.ListWorkspaces(ctx, ownerID)
	if err != nil || len(list) > 0 {
		return list, err
	}
	ws, err := s.CreateWorkspace(ctx, WorkspaceInput{Name: defaultWorkspaceName, Type: models.WorkspaceOther, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	return []models.Workspace{*ws}, nil
}

func (s *Service) ListWorkspaces(ctx context.Context, ownerID string) ([]models.Workspace, error) {
	list, err := db.ListWorkspaces(ctx, s.db, ownerID)
	if err != nil {
		return nil, &StoreError{Op: "list workspaces", Err: err}
	}
	return list, nil
}

func (s *Service) GetWorkspace(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	ws, err := requireWorkspace(ctx, s.db, id)
	if err != nil && !isCallerError(err) {
		return nil, &StoreError{Op: "get workspace", Err: err}
	}
	return ws, err
}

func (s *Service) RenameWorkspace(ctx context.Context, id uuid.UUID, name string) (*models.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	var ws *models.Workspace
	err := s.inTx(ctx, "rename workspace", func(tx *sql.Tx) error {
		err := db.RenameWorkspace(ctx, tx, id, name)
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Entity: "workspace", ID: id.String()}
		}
		if err != nil {
			return err
		}
		ws, err = db.GetWorkspace(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// DeleteWorkspace removes a workspace with all of its contacts, pipeline and inbox.
func (s *Service) DeleteWorkspace(ctx context.Context, id uuid.UUID) error {
	err := s.inTx(ctx, "delete workspace", func(tx *sql.Tx) error {
		err := db.DeleteWorkspace(ctx, tx, id)
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Entity: "workspace", ID: id.String()}
		}
		return err
	})
	if err == nil {
		logger.FromContext(ctx).Info("workspace deleted", "workspace_id", id.String())
	}
	return err
}
