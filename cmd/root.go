package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sig",
		Short:         "Smart image generator (sig): generate images through a Gemini web session",
		Long:          "sig signs in to Gemini through a dedicated browser profile, keeps the session cookies on disk, and generates images from prompts on the command line.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.closeLog()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newGenerateCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
