// ABOUTME: Maps ingestion errors onto HTTP status codes and JSON error bodies
// ABOUTME: Validation 400, not found 404, conflict 409, anything else 500
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/logger"
)

func respondError(c *gin.Context, err error) {
	var ve *ingest.ValidationError
	var nf *ingest.NotFoundError
	var ce *ingest.ConflictError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "details": nf.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "details": ce.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": publicDetails(err)})
	}
}

// publicDetails names the failed operation without leaking driver messages.
func publicDetails(err error) string {
	var se *ingest.StoreError
	if errors.As(err, &se) {
		return "failed to " + se.Op
	}
	return "unexpected error"
}

func badRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": details})
}

// bindJSON decodes the body into v, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, err.Error())
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	return parseID(c, "id", c.Param("id"))
}

// queryID parses a required UUID query parameter.
func queryID(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseID(c, name, c.Query(name))
}

func parseID(c *gin.Context, field, value string) (uuid.UUID, bool) {
	id, err := ingest.ParseID(field, value)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return id, true
}
