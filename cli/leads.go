// ABOUTME: Lead intake CLI commands
// ABOUTME: Ingests leads and loan application updates from flags or a JSON file
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/leads"
	"github.com/spf13/cobra"
)

func (a *app) leadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Ingest leads from external sources",
	}
	cmd.AddCommand(a.leadIngestCmd(), a.leadLoanUpdateCmd())
	return cmd
}

// readJSON decodes a payload from path, or stdin when path is "-".
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open payload: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

func (a *app) leadIngestCmd() *cobra.Command {
	var p leads.LeadPayload
	var workspace, file string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Score and store a lead",
		Example: `  boxcrm lead ingest --source boxford --name "Dana Seller" --email dana@example.com
  boxcrm lead ingest --file lead.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				p = leads.LeadPayload{}
				if err := readJSON(cmd, file, &p); err != nil {
					return err
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

				result, err := svc.IngestLead(cmd.Context(), &p)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if result.Created {
					fmt.Fprintf(out, "✓ Created contact: %s (%s)\n", result.Contact.Name, result.Contact.ID)
				} else {
					fmt.Fprintf(out, "✓ Updated existing contact: %s (%s)\n", result.Contact.Name, result.Contact.ID)
				}
				fmt.Fprintf(out, "  Score: %d\n", result.Score)
				fmt.Fprintf(out, "  Next action: %s\n", result.Contact.NextAction)
				if result.PipelineItem != nil {
					fmt.Fprintf(out, "  Pipeline: %s (%s)\n", result.PipelineItem.Stage, result.PipelineItem.ID)
				}
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the lead as JSON from a file (- for stdin)")
	cmd.Flags().StringVar(&p.Source, "source", "", "Lead source (reviewsniper, boxford, urla-form, mailboxford, gravitas)")
	cmd.Flags().StringVar(&p.Name, "name", "", "Lead's name")
	cmd.Flags().StringVar(&p.Email, "email", "", "Lead's email")
	cmd.Flags().StringVar(&p.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&p.Market, "market", "", "Market or region")
	cmd.Flags().StringVar(&p.PainPoints, "pain-points", "", "What the lead needs help with")
	cmd.Flags().StringVar(&p.Role, "role", "", "Lead's role")
	cmd.Flags().StringVar(&p.Industry, "industry", "", "Lead's industry")
	cmd.Flags().StringVar(&p.Subject, "subject", "", "Subject of the inquiry")
	cmd.Flags().StringVar(&p.Classification, "classification", "", "Classifier result")
	cmd.Flags().StringSliceVar(&p.TrustSignals, "signal", nil, "Trust signal (repeatable)")
	cmd.Flags().StringVar(&p.RecommendedAction, "recommended-action", "", "Suggested next action")
	return cmd
}

func (a *app) leadLoanUpdateCmd() *cobra.Command {
	var u leads.LoanUpdate
	var workspace string

	cmd := &cobra.Command{
		Use:   "loan-update <contact-id>",
		Short: "Record loan application details on a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u.ContactID = args[0]
			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				u.WorkspaceID = ws.ID.String()

				contact, err := svc.UpdateLoanApplication(cmd.Context(), &u)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated loan application for %s\n", contact.Name)
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVar(&u.LoanAmount, "amount", "", "Loan amount")
	cmd.Flags().StringVar(&u.LoanPurpose, "purpose", "", "Loan purpose")
	cmd.Flags().StringVar(&u.PropertyAddress, "property", "", "Property address")
	cmd.Flags().StringVar(&u.PropertyValue, "value", "", "Property value")
	cmd.Flags().StringVar(&u.ApplicationStatus, "status", "", "Application status")
	return cmd
}
