// ABOUTME: Root cobra command and shared wiring for every subcommand
// ABOUTME: Loads config, initializes logging, opens the database and resolves workspaces
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/clock"
	"github.com/harperreed/boxcrm/config"
	"github.com/harperreed/boxcrm/db"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/logger"
	"github.com/harperreed/boxcrm/models"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    *config.Config
	dbPath string
}

// NewRootCommand builds the boxcrm command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "boxcrm",
		Short:         "Lead intake, credibility scoring and pipeline tracking",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.Load()
			if a.dbPath != "" {
				a.cfg.DBPath = a.dbPath
			}
			if cmd.Name() == "mcp" {
				// stdout carries the protocol
				logger.InitWriter(os.Stderr, a.cfg.LogLevel, a.cfg.LogFormat)
			} else {
				logger.Init(a.cfg.LogLevel, a.cfg.LogFormat)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db-path", "", "Database path (default: $XDG_DATA_HOME/boxcrm/boxcrm.db)")

	rootCmd.AddCommand(
		a.serveCmd(),
		a.mcpCmd(),
		a.tuiCmd(),
		a.dashboardCmd(),
		a.vizCmd(),
		a.workspaceCmd(),
		a.contactCmd(),
		a.leadCmd(),
		a.inboxCmd(),
		a.pipelineCmd(),
		a.syncCmd(),
	)

	return rootCmd
}

// open opens the database and returns a service over it with a closer.
func (a *app) open() (*ingest.Service, func(), error) {
	database, err := db.OpenDatabase(a.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return ingest.NewService(database, clock.System()), func() { _ = database.Close() }, nil
}

// withService runs fn with an open service, closing the database afterwards.
func (a *app) withService(fn func(svc *ingest.Service) error) error {
	svc, closeDB, err := a.open()
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(svc)
}

// resolveWorkspace finds a workspace by ID or exact name. An empty ref picks the first
// workspace, creating the default one on first use.
func resolveWorkspace(ctx context.Context, svc *ingest.Service, ref string) (*models.Workspace, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		list, err := svc.EnsureDefaultWorkspace(ctx, "")
		if err != nil {
			return nil, err
		}
		return &list[0], nil
	}

	if id, err := uuid.Parse(ref); err == nil {
		return svc.GetWorkspace(ctx, id)
	}

	list, err := svc.ListWorkspaces(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range list {
		if strings.EqualFold(list[i].Name, ref) {
			return &list[i], nil
		}
	}
	return nil, &ingest.NotFoundError{Entity: "workspace", ID: ref}
}

func addWorkspaceFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "workspace", "w", "", "Workspace ID or name (default: first workspace)")
}

func parseArgID(field, value string) (uuid.UUID, error) {
	return ingest.ParseID(field, value)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
