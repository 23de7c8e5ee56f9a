package status

import (
	"testing"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/application"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

func TestRenderSingleAccount(t *testing.T) {
	output, err := Render(application.State{
		Accounts: []domain.Account{{
			ID:    "3f2a9c1e-0000-4000-8000-000000000001",
			Email: "primary@example.com",
			Quota: &domain.Quota{
				LastUpdated: renderNow.Add(-15 * time.Minute),
				Models: []domain.ModelQuota{
					{Name: "gemini-3-pro-high", Percentage: 73, ResetTime: renderNow.Add(13 * time.Hour)},
				},
			},
		}},
	}, RenderOptions{Now: renderNow, StaleAfter: 6 * time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "Antigravity Accounts")
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "primary@example.com (3f2a9c1e)")
	assert.Contains(t, output, "gemini-3-pro-high")
	assert.Contains(t, output, "27% left")
	assert.Contains(t, output, "resets in 13 hours (00:00)")
	assert.Contains(t, output, "[")
	assert.NotContains(t, output, "[stale]")
}

func TestRenderMultipleAccountsMarksCurrent(t *testing.T) {
	output, err := Render(application.State{
		Accounts: []domain.Account{
			{
				ID:    "acc-1",
				Email: "primary@example.com",
				Name:  "Primary",
				Quota: &domain.Quota{LastUpdated: renderNow, Models: []domain.ModelQuota{
					{Name: "claude-sonnet-4-5", Percentage: 52, ResetTime: renderNow.Add(5 * time.Hour)},
					{Name: "gemini-3-flash", Percentage: 12, ResetTime: renderNow.Add(4 * 24 * time.Hour)},
				}},
			},
			{ID: "acc-2", Email: "backup@example.com"},
		},
		CurrentAccount: &domain.Account{ID: "acc-2"},
	}, RenderOptions{Now: renderNow, StaleAfter: 24 * time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "  Primary <primary@example.com> (acc-1)")
	assert.Contains(t, output, "* backup@example.com (acc-2)")
	assert.Contains(t, output, "48% left")
	assert.Contains(t, output, "88% left")
	assert.Contains(t, output, "resets in 5 hours (16:00)")
	assert.Contains(t, output, "resets in 4 days (11:00 on 18 Feb)")
	assert.Contains(t, output, "quota: n/a")
}

func TestRenderMarksStaleQuota(t *testing.T) {
	output, err := Render(application.State{
		Accounts: []domain.Account{{
			ID:    "acc-1",
			Email: "a@example.com",
			Quota: &domain.Quota{
				LastUpdated: renderNow.Add(-48 * time.Hour),
				Models:      []domain.ModelQuota{{Name: "m", Percentage: 80}},
			},
		}},
	}, RenderOptions{Now: renderNow, StaleAfter: 12 * time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "20% left")
	assert.Contains(t, output, "[stale]")
}

func TestRenderDoesNotMarkStaleWhenNowNotProvided(t *testing.T) {
	output, err := Render(application.State{
		Accounts: []domain.Account{{
			ID:    "acc-1",
			Email: "a@example.com",
			Quota: &domain.Quota{
				LastUpdated: time.Date(2026, 2, 10, 11, 0, 0, 0, time.UTC),
				Models:      []domain.ModelQuota{{Name: "m", Percentage: 80, ResetTime: time.Date(2026, 2, 15, 11, 0, 0, 0, time.UTC)}},
			},
		}},
	}, RenderOptions{StaleAfter: 12 * time.Hour})

	require.NoError(t, err)
	assert.NotContains(t, output, "[stale]")
	assert.Contains(t, output, "resets 2026-02-15T11:00:00Z")
}

func TestRenderForbiddenAccount(t *testing.T) {
	output, err := Render(application.State{
		Accounts: []domain.Account{{
			ID:        "acc-1",
			Email:     "blocked@example.com",
			Forbidden: true,
			Quota:     &domain.Quota{IsForbidden: true, LastUpdated: renderNow},
		}},
	}, RenderOptions{Now: renderNow})

	require.NoError(t, err)
	assert.Contains(t, output, "[forbidden]")
	assert.Contains(t, output, "quota: unavailable")
}

func TestRenderHeaderShowsSchedulerAndError(t *testing.T) {
	output := View(application.State{
		Error:               "rate limited",
		IsAutoRefreshing:    true,
		LastAutoRefreshTime: renderNow,
		Loading:             true,
	}, RenderOptions{Now: renderNow, AutoRefresh: true})

	assert.Contains(t, output, "auto-refresh: running")
	assert.Contains(t, output, "last refresh")
	assert.Contains(t, output, "working...")
	assert.Contains(t, output, "error: rate limited")
	assert.Contains(t, output, "No accounts yet")

	idle := View(application.State{}, RenderOptions{AutoRefresh: true})
	assert.Contains(t, idle, "auto-refresh: on")
	assert.NotContains(t, idle, "last refresh")
}

func TestFormatResetRelative(t *testing.T) {
	assert.Equal(t, "reset now", formatResetRelative(renderNow.Add(-time.Minute), renderNow))
	assert.Equal(t, "resets in 20 min (11:20)", formatResetRelative(renderNow.Add(20*time.Minute), renderNow))
	assert.Equal(t, "resets in 1 hour (12:00)", formatResetRelative(renderNow.Add(time.Hour), renderNow))
	assert.Equal(t, "resets in 1 day (11:00 on 15 Feb)", formatResetRelative(renderNow.Add(24*time.Hour), renderNow))
}
