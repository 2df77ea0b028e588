// ABOUTME: Inbox listing and handled toggle endpoints
package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GET /api/inbox?workspace_id=...&handled=true|false
func (s *Server) handleListInbox(c *gin.Context) {
	workspaceID, ok := queryID(c, "workspace_id")
	if !ok {
		return
	}

	var handled *bool
	if raw := c.Query("handled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "handled must be true or false")
			return
		}
		handled = &v
	}

	items, err := s.svc.ListInbox(c.Request.Context(), workspaceID, handled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type setHandledRequest struct {
	ID      string `json:"id"`
	Handled *bool  `json:"handled"`
}

// PATCH /api/inbox
func (s *Server) handleSetInboxHandled(c *gin.Context) {
	var req setHandledRequest
	if !bindJSON(c, &req) {
		return
	}
	id, ok := parseID(c, "id", req.ID)
	if !ok {
		return
	}
	// only an explicit false reopens an item
	handled := req.Handled == nil || *req.Handled

	item, err := s.svc.SetInboxHandled(c.Request.Context(), id, handled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}
