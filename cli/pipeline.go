// ABOUTME: Pipeline CLI commands
// ABOUTME: Show the board, enroll contacts, move items between stages and remove them
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/spf13/cobra"
)

func (a *app) pipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Manage the pipeline board",
	}
	cmd.AddCommand(a.pipelineListCmd(), a.pipelineAddCmd(), a.pipelineMoveCmd(), a.pipelineRemoveCmd())
	return cmd
}

func (a *app) pipelineListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the pipeline in stage order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				entries, err := svc.ListPipeline(cmd.Context(), ws.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Pipeline is empty")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "STAGE\tCONTACT\tSCORE\tLAST TOUCH\tNEXT ACTION\tID")
				_, _ = fmt.Fprintln(w, "-----\t-------\t-----\t----------\t-----------\t--")
				for _, e := range entries {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
						e.Stage, e.ContactName, e.CredibilityScore, e.LastTouch.Format("2006-01-02"), dash(e.NextAction), e.ID)
				}
				_ = w.Flush()
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	return cmd
}

func (a *app) pipelineAddCmd() *cobra.Command {
	var workspace, stage, nextAction string

	cmd := &cobra.Command{
		Use:   "add <contact-id>",
		Short: "Enroll a contact in the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseArgID("contact_id", args[0])
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				item, created, err := svc.AddToPipeline(cmd.Context(), ws.ID, contactID, stage, nextAction)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to pipeline at %s (%s)\n", item.Stage, item.ID)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Already in pipeline at %s (%s)\n", item.Stage, item.ID)
				}
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVar(&stage, "stage", "", "Starting stage (default: new)")
	cmd.Flags().StringVar(&nextAction, "next-action", "", "Next action for the item")
	return cmd
}

func (a *app) pipelineMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <item-id> <stage>",
		Short: "Move a pipeline item to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID("id", args[0])
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				item, err := svc.MoveStage(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved to %s\n", item.Stage)
				return nil
			})
		},
	}
}

func (a *app) pipelineRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Take an item off the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID("id", args[0])
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				if err := svc.RemoveFromPipeline(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Removed from pipeline")
				return nil
			})
		},
	}
}
