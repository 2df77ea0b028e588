// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for assistant integration
package cli

import (
	"github.com/harperreed/boxcrm/handlers"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// NewMCPServer creates an MCP server with every CRM tool, resource and prompt registered.
func NewMCPServer(svc *ingest.Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "boxcrm",
		Version: version,
	}, nil)
	handlers.NewHandlers(svc).Register(server)
	return server
}

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				logger.FromContext(cmd.Context()).Info("starting MCP server", "db", a.cfg.DBPath)
				server := NewMCPServer(svc, cmd.Root().Version)
				return server.Run(cmd.Context(), &mcp.StdioTransport{})
			})
		},
	}
}
