package ports

import (
	"context"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
)

// AccountRepository stores account records. Save inserts or replaces; Update
// applies mutate to the stored record atomically and fails with
// domain.ErrAccountNotFound instead of creating it.
type AccountRepository interface {
	GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
	Update(ctx context.Context, id domain.AccountID, mutate func(*domain.Account) error) error
	Delete(ctx context.Context, id domain.AccountID) error
}

// SessionRepository persists which account is currently selected. GetCurrent
// returns an empty id when no account is selected.
type SessionRepository interface {
	GetCurrent(ctx context.Context) (domain.AccountID, error)
	SetCurrent(ctx context.Context, id domain.AccountID) error
}
