package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/application"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth         = 24
	resetFadeHorizon = 5 * time.Hour
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
	// AutoRefresh reports whether the background scheduler is armed.
	AutoRefresh bool
}

// View renders the state without running a bubbletea program.
func View(state application.State, opts RenderOptions) string {
	return renderView(state, opts, newStyles())
}

func renderView(state application.State, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Antigravity Accounts"),
		s.header.Render(headerLine(state, opts)),
	}

	if state.Error != "" {
		lines = append(lines, s.warning.Render("error: "+state.Error))
	}

	if len(state.Accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts yet. Add one with `ag login` or `ag account add`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	var currentID domain.AccountID
	if state.CurrentAccount != nil {
		currentID = state.CurrentAccount.ID
	}

	for _, account := range state.Accounts {
		lines = append(lines, s.section.Render(renderAccount(account, account.ID == currentID, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(state application.State, opts RenderOptions) string {
	parts := []string{fmt.Sprintf("accounts: %d", len(state.Accounts))}

	switch {
	case state.IsAutoRefreshing:
		parts = append(parts, "auto-refresh: running")
	case opts.AutoRefresh:
		parts = append(parts, "auto-refresh: on")
	}

	if !state.LastAutoRefreshTime.IsZero() {
		parts = append(parts, "last refresh "+state.LastAutoRefreshTime.Local().Format("15:04:05"))
	}
	if state.Loading {
		parts = append(parts, "working...")
	}

	return strings.Join(parts, " | ")
}

func renderAccount(account domain.Account, current bool, opts RenderOptions, s styles) string {
	titleStyle := s.account
	if current {
		titleStyle = s.current
	}
	title := titleStyle.Render(accountTitle(account, current))
	if account.Forbidden {
		title += " " + s.forbidden.Render("[forbidden]")
	}
	if account.Quota != nil && !opts.Now.IsZero() && account.Quota.IsStale(opts.Now, opts.StaleAfter) {
		title += " " + s.stale.Render("[stale]")
	}

	parts := []string{title}
	parts = append(parts, quotaLines(account, opts, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func accountTitle(account domain.Account, current bool) string {
	marker := " "
	if current {
		marker = "*"
	}

	name := strings.TrimSpace(account.Name)
	if name == "" || name == account.Email {
		return fmt.Sprintf("%s %s (%s)", marker, account.Email, account.ID.Short())
	}
	return fmt.Sprintf("%s %s <%s> (%s)", marker, name, account.Email, account.ID.Short())
}

func quotaLines(account domain.Account, opts RenderOptions, s styles) []string {
	if account.Quota == nil {
		return []string{s.detail.Render("quota: n/a")}
	}
	if account.Quota.IsForbidden {
		return []string{s.detail.Render("quota: unavailable (403 from quota api)")}
	}
	if len(account.Quota.Models) == 0 {
		return []string{s.detail.Render("quota: no models reported")}
	}

	nameWidth := 0
	for _, model := range account.Quota.Models {
		nameWidth = max(nameWidth, len(model.Name))
	}

	lines := make([]string, 0, len(account.Quota.Models))
	for _, model := range account.Quota.Models {
		lines = append(lines, modelLine(model, nameWidth, opts, s))
	}
	return lines
}

func modelLine(model domain.ModelQuota, nameWidth int, opts RenderOptions, s styles) string {
	left := float64(model.Remaining())
	label := s.modelName.Render(fmt.Sprintf("%-*s", nameWidth, model.Name))
	bar := renderProgressBar(float64(model.Percentage), barWidth, s)
	meta := lipgloss.NewStyle().Foreground(interpolateColor(left, 0, 100)).Render(fmt.Sprintf("%3.0f%% left", left))

	parts := []string{"  ", label, " ", bar, " ", meta}
	if !model.ResetTime.IsZero() {
		reset := lipgloss.NewStyle().
			Foreground(resetTimeColor(model.ResetTime, opts.Now)).
			Render(fmt.Sprintf("(%s)", formatResetRelative(model.ResetTime, opts.Now)))
		parts = append(parts, " ", reset)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * (100.0 - used) / 100.0))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatResetAt(resetsAt, now time.Time) string {
	if resetsAt.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return resetsAt.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := resetsAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return resetsAt.Format("15:04")
	}

	return resetsAt.Format("15:04 on 02 Jan")
}

func formatResetRelative(resetsAt, now time.Time) string {
	if now.IsZero() {
		return "resets " + formatResetAt(resetsAt, now)
	}
	if !resetsAt.After(now) {
		return "reset now"
	}

	remaining := resetsAt.Sub(now)
	if remaining < time.Hour {
		minutes := max(int(math.Ceil(remaining.Minutes())), 1)
		return fmt.Sprintf("resets in %d min (%s)", minutes, resetsAt.Format("15:04"))
	}
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		return fmt.Sprintf("resets in %d %s (%s)", hours, plural(hours, "hour"), resetsAt.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	return fmt.Sprintf("resets in %d %s (%s)", days, plural(days, "day"), resetsAt.Format("15:04 on 02 Jan"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	const base, target = 240.0, 255.0
	return lipgloss.Color(fmt.Sprintf("%d", int(base+(target-base)*normalized)))
}

// resetTimeColor brightens as the reset approaches.
func resetTimeColor(resetsAt, now time.Time) lipgloss.Color {
	if now.IsZero() || resetsAt.Before(now) {
		return lipgloss.Color("255")
	}

	inverted := resetFadeHorizon.Seconds() - resetsAt.Sub(now).Seconds()
	return interpolateColor(inverted, 0, resetFadeHorizon.Seconds())
}
