// ABOUTME: Contact CLI commands
// ABOUTME: List and search contacts, delete them and log activity
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/spf13/cobra"
)

func (a *app) contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}
	cmd.AddCommand(a.contactListCmd(), a.contactDeleteCmd(), a.contactLogCmd())
	return cmd
}

func (a *app) contactListCmd() *cobra.Command {
	var workspace, query string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, newest activity first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				contacts, err := svc.FindContacts(cmd.Context(), ws.ID, query, limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(contacts) == 0 {
					fmt.Fprintln(out, "No contacts found")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tPHONE\tSCORE\tSTATUS\tLAST ACTIVITY\tID")
				_, _ = fmt.Fprintln(w, "----\t-----\t-----\t-----\t------\t-------------\t--")
				for _, c := range contacts {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
						c.Name, dash(c.Email), dash(c.Phone), c.CredibilityScore, c.Status,
						c.LastActivity.Format("2006-01-02"), c.ID)
				}
				_ = w.Flush()

				fmt.Fprintf(out, "\nTotal: %d contact(s)\n", len(contacts))
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search by name or email")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum results")
	return cmd
}

func (a *app) contactDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <contact-id>",
		Short: "Delete a contact with its activities and pipeline item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID("contact_id", args[0])
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				if err := svc.DeleteContact(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted contact %s\n", id)
				return nil
			})
		},
	}
}

func (a *app) contactLogCmd() *cobra.Command {
	var activityType string

	cmd := &cobra.Command{
		Use:   "log <contact-id> <description...>",
		Short: "Log a call, email, text or note against a contact",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID("contact_id", args[0])
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				activity, err := svc.LogActivity(cmd.Context(), id, activityType, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %s on %s\n", activity.Type, activity.Date.Format("2006-01-02"))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&activityType, "type", "t", "note", "Activity type (call, email, text, note)")
	return cmd
}
