package ports

import (
	"context"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
)

// AccessToken is a short-lived bearer credential minted from a refresh token.
// RefreshToken is set only when the provider rotated it.
type AccessToken struct {
	Value        string
	Expiry       time.Time
	RefreshToken string
}

type TokenRefresher interface {
	Refresh(ctx context.Context, id domain.AccountID, refreshToken string) (AccessToken, error)
}

// QuotaFetcher reads the per-model quota for the holder of accessToken,
// scoped to projectID when it is not empty. A forbidden account yields a
// Quota with IsForbidden set and no error.
type QuotaFetcher interface {
	FetchQuota(ctx context.Context, accessToken, projectID string) (domain.Quota, error)
}

// ProjectResolver looks up the Cloud Code project assigned to the holder of
// accessToken.
type ProjectResolver interface {
	ResolveProject(ctx context.Context, accessToken string) (string, error)
}

// LoginResult is the identity and long-lived credential returned by a
// completed interactive login.
type LoginResult struct {
	Email        string
	Name         string
	RefreshToken string
}

// OAuthLogin runs one interactive login. It returns domain.ErrOAuthCancelled
// when ctx is cancelled before the provider redirects back.
type OAuthLogin interface {
	Login(ctx context.Context) (LoginResult, error)
}

type AccountImporter interface {
	Import(ctx context.Context) ([]domain.ImportedAccount, error)
}
