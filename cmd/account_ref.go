package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
)

// resolveAccountRef matches an exact id first, then an email
// (case-insensitive), then a unique id prefix.
func resolveAccountRef(accounts []domain.Account, raw string) (domain.Account, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return domain.Account{}, fmt.Errorf("account reference is required: %w", domain.ErrAccountNotFound)
	}

	for _, account := range accounts {
		if string(account.ID) == ref {
			return account, nil
		}
	}

	email := domain.NormalizeEmail(ref)
	for _, account := range accounts {
		if domain.NormalizeEmail(account.Email) == email {
			return account, nil
		}
	}

	var matches []domain.Account
	for _, account := range accounts {
		if strings.HasPrefix(string(account.ID), ref) {
			matches = append(matches, account)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Account{}, fmt.Errorf("%w: %q matches %d accounts", domain.ErrAmbiguousAccount, ref, len(matches))
	}
}
