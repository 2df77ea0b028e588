// ABOUTME: Gmail sync CLI commands
// ABOUTME: Authorizes read-only Gmail access and imports inbound email as leads
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/sync"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import leads from Gmail",
	}
	cmd.AddCommand(a.syncAuthCmd(), a.syncGmailCmd())
	return cmd
}

func (a *app) syncAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access",
		RunE: func(cmd *cobra.Command, args []string) error {
			oauthConfig, err := sync.NewOAuthConfig(a.cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Open this URL in your browser and approve access:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  "+sync.AuthURL(oauthConfig))
			fmt.Fprintln(out)
			fmt.Fprint(out, "Paste the authorization code: ")

			code, err := readCode(cmd)
			if err != nil {
				return err
			}
			if code == "" {
				return fmt.Errorf("no authorization code entered")
			}

			if _, err := sync.Exchange(cmd.Context(), oauthConfig, code); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Saved credentials to %s\n", sync.TokenPath())
			return nil
		},
	}
}

// readCode reads the authorization code without echo when stdin is a terminal.
func readCode(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read code: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) syncGmailCmd() *cobra.Command {
	var workspace, query string

	cmd := &cobra.Command{
		Use:   "gmail",
		Short: "Import new inbound email as leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			oauthConfig, err := sync.NewOAuthConfig(a.cfg)
			if err != nil {
				return err
			}
			token, err := sync.LoadToken(sync.TokenPath())
			if err != nil {
				return err
			}
			if workspace == "" {
				workspace = a.cfg.GmailWorkspaceID
			}
			if query == "" {
				query = a.cfg.GmailQuery
			}

			return a.withService(func(svc *ingest.Service) error {
				ws, err := resolveWorkspace(cmd.Context(), svc, workspace)
				if err != nil {
					return err
				}
				client, err := sync.NewGmailClient(cmd.Context(), oauthConfig, token)
				if err != nil {
					return err
				}

				summary, err := sync.NewImporter(svc, client, ws.ID, query).Import(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Gmail import into %s\n", ws.Name)
				fmt.Fprintf(out, "  Seen:         %d\n", summary.Seen)
				fmt.Fprintf(out, "  Imported:     %d (%d new contacts)\n", summary.Imported, summary.NewContacts)
				fmt.Fprintf(out, "  Already seen: %d\n", summary.Duplicates)
				fmt.Fprintf(out, "  Skipped:      %d\n", summary.Skipped)
				if summary.Failed > 0 {
					fmt.Fprintf(out, "  Failed:       %d\n", summary.Failed)
				}
				return nil
			})
		},
	}

	addWorkspaceFlag(cmd, &workspace)
	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query (default: BOXCRM_GMAIL_QUERY)")
	return cmd
}
