// ABOUTME: Workspace CLI commands
// ABOUTME: Add, list, rename and delete workspaces
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/spf13/cobra"
)

func (a *app) workspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}
	cmd.AddCommand(a.workspaceAddCmd(), a.workspaceListCmd(), a.workspaceRenameCmd(), a.workspaceDeleteCmd())
	return cmd
}

func (a *app) workspaceAddCmd() *cobra.Command {
	var in ingest.WorkspaceInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return a.withService(func(svc *ingest.Service) error {
				ws, err := svc.CreateWorkspace(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Created workspace: %s (%s)\n", ws.Name, ws.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Type, "type", "", "Workspace type (Real Estate, Consulting, Product, Other)")
	cmd.Flags().StringVar(&in.Color, "color", "", "Display color")
	cmd.Flags().StringVar(&in.OwnerID, "owner", "", "Owning user ID")
	return cmd
}

func (a *app) workspaceListCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				list, err := svc.ListWorkspaces(cmd.Context(), owner)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No workspaces found")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "NAME\tTYPE\tCOLOR\tOWNER\tID")
				_, _ = fmt.Fprintln(w, "----\t----\t-----\t-----\t--")
				for _, ws := range list {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ws.Name, ws.Type, ws.Color, dash(ws.OwnerID), ws.ID)
				}
				_ = w.Flush()

				fmt.Fprintf(out, "\nTotal: %d workspace(s)\n", len(list))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Only workspaces owned by this user")
	return cmd
}

func (a *app) workspaceRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <workspace> <new-name>",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, args[0])
				if err != nil {
					return err
				}
				renamed, err := svc.RenameWorkspace(cmd.Context(), ws.ID, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed workspace to %s\n", renamed.Name)
				return nil
			})
		},
	}
}

func (a *app) workspaceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workspace>",
		Short: "Delete a workspace with all of its contacts, pipeline and inbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, args[0])
				if err != nil {
					return err
				}
				if err := svc.DeleteWorkspace(cmd.Context(), ws.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted workspace: %s\n", ws.Name)
				return nil
			})
		},
	}
}
