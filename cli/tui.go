// ABOUTME: Interactive TUI command
// ABOUTME: Opens the full-screen inbox and pipeline view for one workspace
package cli

import (
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/tui"
	"github.com/spf13/cobra"
)

func (a *app) tuiCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				m, err := tui.NewModel(cmd.Context(), svc, ws.ID)
				if err != nil {
					return err
				}
				return tui.Run(m)
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	return cmd
}
