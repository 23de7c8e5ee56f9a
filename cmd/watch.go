package cmd

import (
	"context"
	"fmt"
	"time"

	statusadapter "github.com/bnema/antigravity-accounts-cli/internal/adapters/render/status"
	"github.com/bnema/antigravity-accounts-cli/internal/application"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const watchRedrawInterval = time.Second

var watchHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

type watchTickMsg time.Time

type watchLoadedMsg struct{}

type watchRefreshDoneMsg struct {
	stats domain.RefreshStats
	err   error
}

// watchModel is a live status view. The auto-refresher runs for as long as
// the view is mounted.
type watchModel struct {
	ctx         context.Context
	coordinator *application.Coordinator
	refresher   *application.AutoRefresher
	now         func() time.Time
	staleAfter  time.Duration

	state  application.State
	notice string
}

func newWatchModel(ctx context.Context, app *app, staleAfter time.Duration) watchModel {
	return watchModel{
		ctx:         ctx,
		coordinator: app.coordinator,
		refresher:   app.autoRefresher,
		now:         app.now,
		staleAfter:  staleAfter,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m watchModel) load() tea.Cmd {
	return func() tea.Msg {
		m.coordinator.FetchAccounts(m.ctx)
		m.coordinator.FetchCurrentAccount(m.ctx)
		return watchLoadedMsg{}
	}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(watchRedrawInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) refreshAll() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.coordinator.RefreshAllQuotas(m.ctx)
		return watchRefreshDoneMsg{stats: stats, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchLoadedMsg:
		// Arm only after the first load so the opening cycle does not race it.
		m.refresher.Start(m.ctx)
		m.state = m.coordinator.Snapshot()
		return m, nil
	case watchTickMsg:
		m.state = m.coordinator.Snapshot()
		return m, m.tick()
	case watchRefreshDoneMsg:
		if msg.err != nil {
			m.notice = "refresh failed: " + msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("refreshed: %d succeeded, %d failed", msg.stats.Success, msg.stats.Failed)
		}
		m.state = m.coordinator.Snapshot()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.refresher.Stop()
			return m, tea.Quit
		case "r":
			m.notice = "refreshing all quotas..."
			return m, m.refreshAll()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	body := statusadapter.View(m.state, statusadapter.RenderOptions{
		Now:         m.now(),
		StaleAfter:  m.staleAfter,
		AutoRefresh: m.refresher.Running(),
	})

	footer := fmt.Sprintf("r refresh all | q quit | every %s", m.refresher.Interval())
	if m.notice != "" {
		footer = m.notice + "\n" + footer
	}
	return body + "\n\n" + watchHelpStyle.Render(footer) + "\n"
}

func newWatchCmd(app *app) *cobra.Command {
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live status view with background quota refresh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			defer app.autoRefresher.Stop()

			p := tea.NewProgram(
				newWatchModel(ctx, app, staleAfter),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&staleAfter, "stale-after", defaultStaleAfter, "Mark quotas older than this as stale")

	return cmd
}
