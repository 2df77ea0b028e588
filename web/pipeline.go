// ABOUTME: Pipeline board endpoints: list, enroll, move stage and remove
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/pipeline?workspace_id=...
func (s *Server) handleListPipeline(c *gin.Context) {
	workspaceID, ok := queryID(c, "workspace_id")
	if !ok {
		return
	}

	entries, err := s.svc.ListPipeline(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

type addToPipelineRequest struct {
	WorkspaceID string `json:"workspace_id"`
	ContactID   string `json:"contact_id"`
	Stage       string `json:"stage"`
	NextAction  string `json:"next_action"`
}

// POST /api/pipeline
func (s *Server) handleAddToPipeline(c *gin.Context) {
	var req addToPipelineRequest
	if !bindJSON(c, &req) {
		return
	}
	workspaceID, ok := parseID(c, "workspace_id", req.WorkspaceID)
	if !ok {
		return
	}
	contactID, ok := parseID(c, "contact_id", req.ContactID)
	if !ok {
		return
	}

	item, created, err := s.svc.AddToPipeline(c.Request.Context(), workspaceID, contactID, req.Stage, req.NextAction)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"item": item, "created": created})
}

type moveStageRequest struct {
	Stage string `json:"stage"`
}

// PATCH /api/pipeline/:id
func (s *Server) handleMoveStage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req moveStageRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := s.svc.MoveStage(c.Request.Context(), id, req.Stage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DELETE /api/pipeline/:id
func (s *Server) handleRemoveFromPipeline(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.RemoveFromPipeline(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
