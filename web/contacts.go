// ABOUTME: Contact, activity and workspace endpoints for the operator dashboard
package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/boxcrm/ingest"
)

// GET /api/contacts?workspace_id=...&q=...&limit=...
// Without q every contact is returned with its activity timeline.
func (s *Server) handleListContacts(c *gin.Context) {
	workspaceID, ok := queryID(c, "workspace_id")
	if !ok {
		return
	}

	if q := c.Query("q"); q != "" {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		contacts, err := s.svc.FindContacts(c.Request.Context(), workspaceID, q, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"contacts": contacts})
		return
	}

	contacts, err := s.svc.ListContacts(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// PATCH /api/contacts/:id
// Only the fields present in the body change.
func (s *Server) handleUpdateContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var u ingest.ContactUpdate
	if !bindJSON(c, &u) {
		return
	}

	contact, err := s.svc.UpdateContact(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DELETE /api/contacts/:id
func (s *Server) handleDeleteContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.DeleteContact(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type logActivityRequest struct {
	ContactID   string `json:"contact_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// POST /api/activities
func (s *Server) handleLogActivity(c *gin.Context) {
	var req logActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	contactID, ok := parseID(c, "contact_id", req.ContactID)
	if !ok {
		return
	}

	activity, err := s.svc.LogActivity(c.Request.Context(), contactID, req.Type, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

// GET /api/workspaces?owner_id=...
func (s *Server) handleListWorkspaces(c *gin.Context) {
	workspaces, err := s.svc.ListWorkspaces(c.Request.Context(), c.Query("owner_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

// POST /api/workspaces
func (s *Server) handleCreateWorkspace(c *gin.Context) {
	var in ingest.WorkspaceInput
	if !bindJSON(c, &in) {
		return
	}

	ws, err := s.svc.CreateWorkspace(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workspace": ws})
}
