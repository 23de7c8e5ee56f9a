package domain

import (
	"strings"
	"time"
)

type AccountID string

func (id AccountID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

type Account struct {
	ID        AccountID
	Email     string
	Name      string
	Auth      Auth
	CreatedAt time.Time
	// LastUsed is the epoch second of the last switch to this account.
	LastUsed  int64
	// ProjectID is the Cloud Code project quota requests are billed to.
	// Empty until resolved or imported.
	ProjectID string
	Quota     *Quota
	Forbidden bool
}

// DisplayName prefers the profile name and falls back to the email.
func (a Account) DisplayName() string {
	if name := strings.TrimSpace(a.Name); name != "" {
		return name
	}
	return a.Email
}

// Clone returns a copy that shares no quota storage with a.
func (a Account) Clone() Account {
	if a.Quota != nil {
		quota := a.Quota.Clone()
		a.Quota = &quota
	}
	return a
}

func CloneAccounts(accounts []Account) []Account {
	if accounts == nil {
		return nil
	}
	cloned := make([]Account, len(accounts))
	for i, account := range accounts {
		cloned[i] = account.Clone()
	}
	return cloned
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 || strings.ContainsAny(trimmed, " \t") {
		return ErrInvalidEmail
	}
	return nil
}

// RefreshStats summarizes a bulk quota refresh. Success+Failed equals the
// number of accounts attempted.
type RefreshStats struct {
	Success int
	Failed  int
	Details []string
}

func (s RefreshStats) Attempted() int {
	return s.Success + s.Failed
}

// ImportedAccount is a credential discovered in a legacy source.
type ImportedAccount struct {
	Email        string
	Name         string
	RefreshToken string
	ProjectID    string
}
