package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to Gemini and save the session cookies",
		Long:  "login reuses the saved session when it is still valid. Otherwise it opens a browser window on a dedicated profile and waits for you to sign in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.client.EnsureSession(cmd.Context()); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged in. Session saved to %s\n", app.cfg.CookiePath())
			return err
		},
	}
}
