package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in with Google in the browser and store the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			finished := make(chan struct{})
			defer close(finished)
			go func() {
				select {
				case <-sigCtx.Done():
					app.coordinator.CancelOAuthLogin(context.WithoutCancel(sigCtx))
				case <-finished:
				}
			}()

			if err := app.coordinator.StartOAuthLogin(cmd.Context()); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			state := app.coordinator.Snapshot()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Login complete, %d account(s) stored\n", len(state.Accounts))
			return err
		},
	}
}
