package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ag",
		Short:         "Antigravity accounts CLI (ag): manage accounts, sessions, and model quotas",
		Long:          "ag manages locally stored Antigravity accounts: add, import, switch between them, and keep their per-model quotas fresh from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := loadApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		app.promptOut = cmd.OutOrStdout()
		return app.wire(cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newQuotaCmd(app),
		newLoginCmd(app),
		newImportCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
