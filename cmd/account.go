package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/antigravity-accounts-cli/internal/application"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountCurrentCmd(app),
		newAccountAddCmd(app),
		newAccountDeleteCmd(app),
		newAccountSwitchCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := loadState(cmd.Context(), app)
			if err != nil {
				return err
			}

			if len(state.Accounts) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no accounts")
				return err
			}

			for _, account := range state.Accounts {
				marker := " "
				if state.CurrentAccount != nil && state.CurrentAccount.ID == account.ID {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", marker, account.ID, account.Email, account.Name)
			}

			return nil
		},
	}
}

func newAccountCurrentCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the currently selected account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.coordinator.FetchCurrentAccount(cmd.Context())
			state := app.coordinator.Snapshot()
			if state.Error != "" {
				return errors.New(state.Error)
			}

			if state.CurrentAccount == nil {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no account selected")
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", state.CurrentAccount.ID, state.CurrentAccount.Email)
			return err
		},
	}
}

func newAccountAddCmd(app *app) *cobra.Command {
	var (
		email string
		token string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account from an email and refresh token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.coordinator.AddAccount(cmd.Context(), email, token); err != nil {
				return fmt.Errorf("add account: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added account %s\n", strings.TrimSpace(email))
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&token, "token", "", "OAuth refresh token")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newAccountDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <account>",
		Aliases: []string{"rm"},
		Short:   "Delete an account and its stored token",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := lookupAccount(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			if err := app.coordinator.DeleteAccount(cmd.Context(), account.ID); err != nil {
				return fmt.Errorf("delete account: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", account.Email)
			return err
		},
	}
}

func newAccountSwitchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <account>",
		Short: "Make an account the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := lookupAccount(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			if err := app.coordinator.SwitchAccount(cmd.Context(), account.ID); err != nil {
				return fmt.Errorf("switch account: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", account.Email)
			return err
		},
	}
}

// loadState fetches the account list and the current account. Fetch actions
// never fail, so a recorded Error is surfaced here instead.
func loadState(ctx context.Context, app *app) (application.State, error) {
	app.coordinator.FetchAccounts(ctx)
	if state := app.coordinator.Snapshot(); state.Error != "" {
		return state, errors.New(state.Error)
	}

	app.coordinator.FetchCurrentAccount(ctx)
	state := app.coordinator.Snapshot()
	if state.Error != "" {
		return state, errors.New(state.Error)
	}
	return state, nil
}

func lookupAccount(ctx context.Context, app *app, ref string) (domain.Account, error) {
	state, err := loadState(ctx, app)
	if err != nil {
		return domain.Account{}, err
	}
	return resolveAccountRef(state.Accounts, ref)
}
