package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// State is what the presentation layer observes. Snapshot returns copies, so
// callers may keep or modify them freely.
type State struct {
	Accounts            []domain.Account
	CurrentAccount      *domain.Account
	Loading             bool
	Error               string
	IsAutoRefreshing    bool
	LastAutoRefreshTime time.Time
}

func (s State) clone() State {
	s.Accounts = domain.CloneAccounts(s.Accounts)
	if s.CurrentAccount != nil {
		current := s.CurrentAccount.Clone()
		s.CurrentAccount = &current
	}
	return s
}

// Coordinator mediates every account mutation through the AccountService and
// keeps a local view of the results.
//
// Every mutation invalidates the whole account cache: after a successful
// facade call the coordinator re-reads the full list (or the current account,
// for switches) instead of patching entries in place. A failed re-read is
// recorded in Error but does not fail the mutation that preceded it.
//
// The lock is never held across a facade call. Foreground actions do not
// queue behind each other, so concurrent callers can overwrite each other's
// Loading flag.
type Coordinator struct {
	service ports.AccountService
	clock   ports.Clock
	logger  logrus.FieldLogger

	mu    sync.RWMutex
	state State
}

func NewCoordinator(service ports.AccountService, clock ports.Clock, logger logrus.FieldLogger) *Coordinator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Coordinator{
		service: service,
		clock:   clock,
		logger:  logger.WithField("component", "coordinator"),
	}
}

func (c *Coordinator) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

func (c *Coordinator) FetchAccounts(ctx context.Context) {
	c.begin()
	if err := c.reloadAccounts(ctx); err != nil {
		c.logger.WithError(err).Warn("fetch accounts failed")
		c.finish(err)
		return
	}
	c.finish(nil)
}

func (c *Coordinator) FetchCurrentAccount(ctx context.Context) {
	c.begin()
	if err := c.reloadCurrent(ctx); err != nil {
		c.logger.WithError(err).Warn("fetch current account failed")
		c.finish(err)
		return
	}
	c.finish(nil)
}

func (c *Coordinator) AddAccount(ctx context.Context, email, refreshToken string) error {
	return c.mutate(ctx, func() error {
		return c.service.AddAccount(ctx, email, refreshToken)
	}, c.reloadAccounts)
}

func (c *Coordinator) DeleteAccount(ctx context.Context, id domain.AccountID) error {
	return c.mutate(ctx, func() error {
		return c.service.DeleteAccount(ctx, id)
	}, c.reloadAccounts)
}

// SwitchAccount re-reads only the current account; quota data is unchanged
// by a switch.
func (c *Coordinator) SwitchAccount(ctx context.Context, id domain.AccountID) error {
	return c.mutate(ctx, func() error {
		return c.service.SwitchAccount(ctx, id)
	}, c.reloadCurrent)
}

func (c *Coordinator) RefreshQuota(ctx context.Context, id domain.AccountID) error {
	return c.mutate(ctx, func() error {
		return c.service.FetchAccountQuota(ctx, id)
	}, c.reloadAccounts)
}

func (c *Coordinator) RefreshAllQuotas(ctx context.Context) (domain.RefreshStats, error) {
	var stats domain.RefreshStats
	err := c.mutate(ctx, func() error {
		var err error
		stats, err = c.service.RefreshAllQuotas(ctx)
		return err
	}, c.reloadAccounts)
	return stats, err
}

func (c *Coordinator) StartOAuthLogin(ctx context.Context) error {
	return c.mutate(ctx, func() error {
		return c.service.StartOAuthLogin(ctx)
	}, c.reloadAccounts)
}

// CancelOAuthLogin is best effort: failures are logged and never returned.
func (c *Coordinator) CancelOAuthLogin(ctx context.Context) {
	c.begin()
	if err := c.service.CancelOAuthLogin(ctx); err != nil {
		c.logger.WithError(err).Warn("cancel oauth login failed")
	}
	c.finish(nil)
}

func (c *Coordinator) ImportV1Accounts(ctx context.Context) error {
	return c.mutate(ctx, func() error {
		return c.service.ImportV1Accounts(ctx)
	}, c.reloadAccounts)
}

func (c *Coordinator) ImportFromDB(ctx context.Context) error {
	return c.mutate(ctx, func() error {
		return c.service.ImportFromDB(ctx)
	}, c.reloadAccounts)
}

// RunAutoRefreshCycle runs one background refresh unless a foreground action
// or another cycle is in flight. It reports whether the cycle ran. Failures are
// logged only; Error and Loading are never touched.
func (c *Coordinator) RunAutoRefreshCycle(ctx context.Context) bool {
	c.mu.Lock()
	if c.state.Loading || c.state.IsAutoRefreshing {
		c.mu.Unlock()
		c.logger.Debug("auto refresh skipped, another operation is in flight")
		return false
	}
	c.state.IsAutoRefreshing = true
	c.mu.Unlock()

	stats, err := c.service.RefreshAllQuotas(ctx)
	var accounts []domain.Account
	if err == nil {
		accounts, err = c.service.ListAccounts(ctx)
	}

	c.mu.Lock()
	c.state.IsAutoRefreshing = false
	if err == nil {
		c.state.Accounts = domain.CloneAccounts(accounts)
		c.state.LastAutoRefreshTime = c.clock.Now()
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.WithError(err).Warn("auto refresh failed")
		return true
	}

	c.logger.WithFields(logrus.Fields{
		"success": stats.Success,
		"failed":  stats.Failed,
	}).Info("auto refresh finished")
	return true
}

func (c *Coordinator) setAutoRefreshing(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsAutoRefreshing = v
}

func (c *Coordinator) mutate(ctx context.Context, call func() error, reload func(context.Context) error) error {
	c.begin()

	if err := call(); err != nil {
		c.finish(err)
		return err
	}

	if err := reload(ctx); err != nil {
		c.logger.WithError(err).Warn("reload after mutation failed")
		c.finish(err)
		return nil
	}

	c.finish(nil)
	return nil
}

func (c *Coordinator) reloadAccounts(ctx context.Context) error {
	accounts, err := c.service.ListAccounts(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state.Accounts = domain.CloneAccounts(accounts)
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) reloadCurrent(ctx context.Context) error {
	current, err := c.service.GetCurrentAccount(ctx)
	if err != nil {
		return err
	}

	if current != nil {
		cloned := current.Clone()
		current = &cloned
	}

	c.mu.Lock()
	c.state.CurrentAccount = current
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = true
	c.state.Error = ""
}

func (c *Coordinator) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = err.Error()
	}
	c.state.Loading = false
}
