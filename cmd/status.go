package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/antigravity-accounts-cli/internal/adapters/render/status"
	"github.com/bnema/antigravity-accounts-cli/internal/application"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		asJSON     bool
		staleAfter time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show accounts with their last known quotas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := loadState(cmd.Context(), app)
			if err != nil {
				return err
			}
			return writeStateOutput(cmd, app, state, staleAfter, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of the styled view")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", defaultStaleAfter, "Mark quotas older than this as stale")

	return cmd
}

func writeStateOutput(cmd *cobra.Command, app *app, state application.State, staleAfter time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newStateView(state))
	}

	rendered, err := app.statusRenderer(state, statusadapter.RenderOptions{
		Now:        app.now(),
		StaleAfter: staleAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type stateView struct {
	CurrentAccountID    string        `json:"current_account_id,omitempty"`
	Accounts            []accountView `json:"accounts"`
	LastAutoRefreshTime *time.Time    `json:"last_auto_refresh_time,omitempty"`
}

type accountView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	AuthType  string     `json:"auth_method,omitempty"`
	LastUsed  int64      `json:"last_used,omitempty"`
	ProjectID string     `json:"project_id,omitempty"`
	Forbidden bool       `json:"forbidden"`
	Quota     *quotaView `json:"quota,omitempty"`
}

type quotaView struct {
	IsForbidden bool        `json:"is_forbidden"`
	LastUpdated time.Time   `json:"last_updated"`
	Models      []modelView `json:"models"`
}

type modelView struct {
	Name       string     `json:"name"`
	Percentage int        `json:"percentage"`
	ResetTime  *time.Time `json:"reset_time,omitempty"`
}

func newStateView(state application.State) stateView {
	view := stateView{Accounts: make([]accountView, 0, len(state.Accounts))}
	if state.CurrentAccount != nil {
		view.CurrentAccountID = string(state.CurrentAccount.ID)
	}
	if !state.LastAutoRefreshTime.IsZero() {
		last := state.LastAutoRefreshTime
		view.LastAutoRefreshTime = &last
	}

	for _, account := range state.Accounts {
		view.Accounts = append(view.Accounts, newAccountView(account))
	}
	return view
}

func newAccountView(account domain.Account) accountView {
	view := accountView{
		ID:        string(account.ID),
		Email:     account.Email,
		Name:      account.Name,
		AuthType:  string(account.Auth.Method),
		LastUsed:  account.LastUsed,
		ProjectID: account.ProjectID,
		Forbidden: account.Forbidden,
	}
	if account.Quota == nil {
		return view
	}

	quota := &quotaView{
		IsForbidden: account.Quota.IsForbidden,
		LastUpdated: account.Quota.LastUpdated,
		Models:      make([]modelView, 0, len(account.Quota.Models)),
	}
	for _, model := range account.Quota.Models {
		m := modelView{Name: model.Name, Percentage: model.Percentage}
		if !model.ResetTime.IsZero() {
			reset := model.ResetTime
			m.ResetTime = &reset
		}
		quota.Models = append(quota.Models, m)
	}
	view.Quota = quota
	return view
}
