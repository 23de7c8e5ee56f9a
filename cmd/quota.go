package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newQuotaCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Fetch model quotas",
	}

	cmd.AddCommand(newQuotaRefreshCmd(app))

	return cmd
}

func newQuotaRefreshCmd(app *app) *cobra.Command {
	var (
		accountRef string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh quotas for one account or all of them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if accountRef != "" {
				if err := refreshOne(cmd, app, accountRef); err != nil {
					return err
				}
			} else if err := refreshAll(cmd, app); err != nil {
				return err
			}

			state, err := loadState(cmd.Context(), app)
			if err != nil {
				return err
			}
			return writeStateOutput(cmd, app, state, defaultStaleAfter, asJSON)
		},
	}

	cmd.Flags().StringVar(&accountRef, "account", "", "Account id, id prefix, or email (default: all accounts)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of the styled view")

	return cmd
}

func refreshOne(cmd *cobra.Command, app *app, ref string) error {
	account, err := lookupAccount(cmd.Context(), app, ref)
	if err != nil {
		return err
	}

	err = runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Refreshing quota...", func(ctx context.Context) error {
		return app.coordinator.RefreshQuota(ctx, account.ID)
	})
	if err != nil {
		return withReloginHint(fmt.Errorf("refresh quota for %s: %w", account.Email, err))
	}
	return nil
}

func refreshAll(cmd *cobra.Command, app *app) error {
	var stats domain.RefreshStats
	started := app.now()

	err := runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Refreshing quotas...", func(ctx context.Context) error {
		var err error
		stats, err = app.coordinator.RefreshAllQuotas(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("refresh quotas: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%d succeeded, %d failed (%s)\n", stats.Success, stats.Failed, app.now().Sub(started).Round(time.Millisecond))
	for _, detail := range stats.Details {
		_, _ = fmt.Fprintf(out, "  %s\n", detail)
	}
	return nil
}

func withReloginHint(err error) error {
	if errors.Is(err, domain.ErrTokenRevoked) {
		return fmt.Errorf("%w (run `ag login` again to re-authorize)", err)
	}
	return err
}
