// ABOUTME: HTTP API server subcommand
// ABOUTME: Serves the intake and pipeline API until interrupted
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/logger"
	"github.com/harperreed/boxcrm/web"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.withService(func(svc *ingest.Service) error {
				if a.cfg.IntegrationAPIKey == "" {
					logger.FromContext(ctx).Warn("INTEGRATION_API_KEY not set; intake endpoints are open")
				}
				return web.NewServer(svc, a.cfg.IntegrationAPIKey).Start(ctx, addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: BOXCRM_ADDR or :8080)")
	return cmd
}

