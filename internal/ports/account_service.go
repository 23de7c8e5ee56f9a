package ports

import (
	"context"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
)

// AccountService is the facade the session coordinator drives. Every method
// may block on I/O and every mutation is followed by a full re-read by the
// caller, so implementations need not return updated records.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// GetCurrentAccount returns nil when no account is selected.
	GetCurrentAccount(ctx context.Context) (*domain.Account, error)
	AddAccount(ctx context.Context, email, refreshToken string) error
	DeleteAccount(ctx context.Context, id domain.AccountID) error
	SwitchAccount(ctx context.Context, id domain.AccountID) error
	FetchAccountQuota(ctx context.Context, id domain.AccountID) error
	RefreshAllQuotas(ctx context.Context) (domain.RefreshStats, error)
	StartOAuthLogin(ctx context.Context) error
	CancelOAuthLogin(ctx context.Context) error
	ImportV1Accounts(ctx context.Context) error
	ImportFromDB(ctx context.Context) error
}
