// ABOUTME: Handlers for the integration endpoints: lead intake, loan updates and classified inquiries
// ABOUTME: Payloads are validated by the ingestion service before anything is written
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/boxcrm/leads"
)

// POST /api/leads
func (s *Server) handleIngestLead(c *gin.Context) {
	var payload leads.LeadPayload
	if !bindJSON(c, &payload) {
		return
	}

	res, err := s.svc.IngestLead(c.Request.Context(), &payload)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success":       true,
		"contact":       res.Contact,
		"created":       res.Created,
		"score":         res.Score,
		"pipeline_item": res.PipelineItem,
	})
}

// PATCH /api/leads
func (s *Server) handleLoanUpdate(c *gin.Context) {
	var update leads.LoanUpdate
	if !bindJSON(c, &update) {
		return
	}

	contact, err := s.svc.UpdateLoanApplication(c.Request.Context(), &update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contact": contact})
}

// POST /api/inbox
func (s *Server) handleIngestInquiry(c *gin.Context) {
	var payload leads.InquiryPayload
	if !bindJSON(c, &payload) {
		return
	}

	res, err := s.svc.IngestClassifiedInquiry(c.Request.Context(), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"inbox_item":      res.InboxItem,
		"contact_created": res.ContactCreated,
		"contact_id":      res.ContactID,
	})
}
