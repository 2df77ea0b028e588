// ABOUTME: Visualization CLI commands
// ABOUTME: Renders the pipeline graph and prints the workspace dashboard
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/viz"
	"github.com/spf13/cobra"
)

func (a *app) vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Generate visualizations",
	}
	cmd.AddCommand(a.vizPipelineCmd())
	return cmd
}

func parseGraphFormat(name string) (graphviz.Format, error) {
	switch name {
	case "dot", "":
		return graphviz.XDOT, nil
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	}
	return "", fmt.Errorf("unknown format %q (want dot, svg or png)", name)
}

func (a *app) vizPipelineCmd() *cobra.Command {
	var workspace, output, format string

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Graph the pipeline by stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			gvFormat, err := parseGraphFormat(format)
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}

				data, err := viz.NewGraphGenerator(svc).GeneratePipelineGraph(cmd.Context(), ws.ID, gvFormat)
				if err != nil {
					return err
				}

				if output != "" {
					if err := os.WriteFile(output, data, 0644); err != nil {
						return fmt.Errorf("failed to write graph: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", output)
					return nil
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "dot", "Output format: dot, svg or png")
	return cmd
}

func (a *app) dashboardCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show pipeline, inbox and follow-up summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				stats, err := viz.GenerateDashboardStats(cmd.Context(), svc, ws.ID, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	return cmd
}
