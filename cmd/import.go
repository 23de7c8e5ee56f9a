package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/antigravity-accounts-cli/internal/config"
	"github.com/spf13/cobra"
)

func newImportCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import accounts from earlier Antigravity installs",
	}

	cmd.AddCommand(newImportV1Cmd(app), newImportDBCmd(app))

	return cmd
}

func newImportV1Cmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "v1",
		Short: "Import accounts from the v1 accounts directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, app, "v1 accounts", app.coordinator.ImportV1Accounts)
		},
	}

	cmd.Flags().String("dir", "", "Directory holding v1 account JSON files")
	_ = app.cfg.BindPFlag(config.KeyImportV1Dir, cmd.Flags().Lookup("dir"))

	return cmd
}

func newImportDBCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Import the signed-in account from the IDE state database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, app, "state database", app.coordinator.ImportFromDB)
		},
	}

	cmd.Flags().String("path", "", "Path to the state.vscdb file")
	cmd.Flags().String("key", "", "ItemTable key holding the auth status")
	_ = app.cfg.BindPFlag(config.KeyImportDBPath, cmd.Flags().Lookup("path"))
	_ = app.cfg.BindPFlag(config.KeyImportDBKey, cmd.Flags().Lookup("key"))

	return cmd
}

func runImport(cmd *cobra.Command, app *app, source string, run func(context.Context) error) error {
	if err := run(cmd.Context()); err != nil {
		return fmt.Errorf("import %s: %w", source, err)
	}

	state := app.coordinator.Snapshot()
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %s, %d account(s) stored\n", source, len(state.Accounts))
	return err
}
