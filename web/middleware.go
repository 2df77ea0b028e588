// ABOUTME: Request id, access logging and integration API key middleware
// ABOUTME: Each request carries a ULID and a request-scoped slog logger in its context
package web

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/boxcrm/logger"
	"github.com/oklog/ulid/v2"
)

const (
	headerRequestID = "X-Request-ID"
	headerAPIKey    = "X-API-Key"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Header(headerRequestID, id)

		l := logger.L.With("request_id", id)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.FromContext(c.Request.Context()).Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireAPIKey rejects requests whose X-API-Key does not match key. An empty key
// disables the check.
func requireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader(headerAPIKey)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "details": "missing or invalid API key"})
			return
		}
		c.Next()
	}
}
