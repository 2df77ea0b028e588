// ABOUTME: HTTP intake API built on gin
// ABOUTME: Routes external lead sources and the operator dashboard onto the ingestion service
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/logger"
)

type Server struct {
	svc    *ingest.Service
	apiKey string
	engine *gin.Engine
}

// NewServer builds the router. A non-empty apiKey is required on the integration endpoints.
func NewServer(svc *ingest.Service, apiKey string) *Server {
	s := &Server{svc: svc, apiKey: apiKey}
	s.engine = s.routes()
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Integration endpoints called by the external lead sources
		integration := api.Group("")
		integration.Use(requireAPIKey(s.apiKey))
		{
			integration.POST("/leads", s.handleIngestLead)
			integration.PATCH("/leads", s.handleLoanUpdate)
			integration.POST("/inbox", s.handleIngestInquiry)
		}

		api.GET("/inbox", s.handleListInbox)
		api.PATCH("/inbox", s.handleSetInboxHandled)

		api.GET("/pipeline", s.handleListPipeline)
		api.POST("/pipeline", s.handleAddToPipeline)
		api.PATCH("/pipeline/:id", s.handleMoveStage)
		api.DELETE("/pipeline/:id", s.handleRemoveFromPipeline)

		api.GET("/contacts", s.handleListContacts)
		api.PATCH("/contacts/:id", s.handleUpdateContact)
		api.DELETE("/contacts/:id", s.handleDeleteContact)
		api.POST("/activities", s.handleLogActivity)

		api.GET("/workspaces", s.handleListWorkspaces)
		api.POST("/workspaces", s.handleCreateWorkspace)
	}

	return r
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("starting http server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.L.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	}
}
