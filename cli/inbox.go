// ABOUTME: Inbox CLI commands
// ABOUTME: Ingest classified inquiries, list the inbox and mark items handled
package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/leads"
	"github.com/spf13/cobra"
)

func (a *app) inboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Work the classified inquiry inbox",
	}
	cmd.AddCommand(a.inboxIngestCmd(), a.inboxListCmd(), a.inboxHandleCmd())
	return cmd
}

func (a *app) inboxIngestCmd() *cobra.Command {
	var p leads.InquiryPayload
	var info leads.ContactInfo
	var workspace, file, signals string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Store a classified inquiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				p = leads.InquiryPayload{}
				if err := readJSON(cmd, file, &p); err != nil {
					return err
				}
			} else {
				if signals != "" {
					p.Signals = json.RawMessage(signals)
				}
				if info.Name != "" || info.Email != "" {
					p.ContactInfo = &info
				}
			}

			return a.withService(func(svc *ingest.Service) error {
				if p.WorkspaceID == "" {
					ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
					if err != nil {
						return err
					}
					p.WorkspaceID = ws.ID.String()
				}

				result, err := svc.IngestClassifiedInquiry(cmd.Context(), &p)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Inbox item %s (%s)\n", result.InboxItem.ID, result.InboxItem.Classification)
				fmt.Fprintf(out, "  Recommended: %s\n", result.InboxItem.RecommendedAction)
				if result.ContactID != nil {
					verb := "Matched"
					if result.ContactCreated {
						verb = "Created"
					}
					fmt.Fprintf(out, "  %s contact %s\n", verb, result.ContactID)
				}
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the inquiry as JSON from a file (- for stdin)")
	cmd.Flags().StringVar(&p.From, "from", "", "Sender address")
	cmd.Flags().StringVar(&p.Subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&p.Preview, "preview", "", "Message preview")
	cmd.Flags().StringVar(&p.Classification, "classification", "", "noise, risk, opportunity or reputation")
	cmd.Flags().StringVar(&p.RecommendedAction, "recommended-action", "", "Suggested action")
	cmd.Flags().StringVar(&p.Rationale, "rationale", "", "Classifier rationale")
	cmd.Flags().StringVar(&signals, "signals", "", "Classifier signals as a JSON object")
	cmd.Flags().StringVar(&info.Name, "contact-name", "", "Sender's name")
	cmd.Flags().StringVar(&info.Email, "contact-email", "", "Sender's email")
	cmd.Flags().StringVar(&info.Phone, "contact-phone", "", "Sender's phone")
	return cmd
}

func (a *app) inboxListCmd() *cobra.Command {
	var workspace string
	var handledOnly, unhandledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inbox items, unhandled first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var handled *bool
			switch {
			case handledOnly && unhandledOnly:
				return fmt.Errorf("--handled and --unhandled are mutually exclusive")
			case handledOnly:
				v := true
				handled = &v
			case unhandledOnly:
				v := false
				handled = &v
			}

			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				items, err := svc.ListInbox(cmd.Context(), ws.ID, handled)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "Inbox is empty")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "DATE\tCLASS\tFROM\tSUBJECT\tHANDLED\tID")
				_, _ = fmt.Fprintln(w, "----\t-----\t----\t-------\t-------\t--")
				for _, item := range items {
					handledMark := ""
					if item.Handled {
						handledMark = "✓"
					}
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						item.Date.Format("2006-01-02"), item.Classification, item.FromAddress, item.Subject, handledMark, item.ID)
				}
				_ = w.Flush()
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().BoolVar(&handledOnly, "handled", false, "Only handled items")
	cmd.Flags().BoolVar(&unhandledOnly, "unhandled", false, "Only unhandled items")
	return cmd
}

func (a *app) inboxHandleCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "handle <item-id>",
		Short: "Mark an inbox item handled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseArgID("id", args[0])
			if err != nil {
				return err
			}
			return a.withService(func(svc *ingest.Service) error {
				item, err := svc.SetInboxHandled(cmd.Context(), id, !undo)
				if err != nil {
					return err
				}
				state := "handled"
				if !item.Handled {
					state = "unhandled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Marked %s: %s\n", state, item.Subject)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the item unhandled instead")
	return cmd
}
