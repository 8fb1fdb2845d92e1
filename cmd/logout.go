package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/smart-image-cli/internal/adapters/render/status"
)

func newLogoutCmd(app *app) *cobra.Command {
	var check bool
	var verbose bool
	var probe bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Delete the saved session and browser profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions := app.client.Sessions()

			if check {
				status, err := sessions.Status(cmd.Context(), probe)
				if err != nil {
					return fmt.Errorf("check login state: %w", err)
				}

				rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
					Now:     app.now(),
					Verbose: verbose,
				})
				if err != nil {
					return fmt.Errorf("render status: %w", err)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			}

			if err := sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, "Logged out."); err != nil {
				return err
			}
			if verbose {
				_, err := fmt.Fprintf(out, "Removed %s and %s\n", app.cfg.CookiePath(), app.cfg.ProfileDir())
				return err
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report login state without deleting anything")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show file locations and details")
	cmd.Flags().BoolVar(&probe, "probe", false, "With --check, test the saved session against Gemini")

	return cmd
}
