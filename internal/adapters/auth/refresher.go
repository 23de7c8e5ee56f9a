package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"golang.org/x/oauth2"
)

// DefaultRefreshAhead is how long before expiry a cached access token is
// considered unusable.
const DefaultRefreshAhead = 5 * time.Minute

type cachedToken struct {
	refreshToken string
	token        ports.AccessToken
}

// Refresher mints access tokens from refresh tokens and caches them per
// account until they are about to expire.
type Refresher struct {
	config       *oauth2.Config
	httpClient   *http.Client
	clock        ports.Clock
	refreshAhead time.Duration

	mu    sync.Mutex
	cache map[domain.AccountID]cachedToken
}

var _ ports.TokenRefresher = (*Refresher)(nil)

func NewRefresher(cfg Config, httpClient *http.Client, clock ports.Clock) *Refresher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Refresher{
		config:       cfg.withDefaults().OAuth2(""),
		httpClient:   httpClient,
		clock:        clock,
		refreshAhead: DefaultRefreshAhead,
		cache:        map[domain.AccountID]cachedToken{},
	}
}

func (r *Refresher) Refresh(ctx context.Context, id domain.AccountID, refreshToken string) (ports.AccessToken, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return ports.AccessToken{}, domain.ErrInvalidToken
	}

	if token, ok := r.cached(id, refreshToken); ok {
		return token, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	fresh, err := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		r.Invalidate(id)
		if isPermanentRefreshError(err) {
			return ports.AccessToken{}, fmt.Errorf("refresh access token: %w: %v", domain.ErrTokenRevoked, err)
		}
		return ports.AccessToken{}, fmt.Errorf("refresh access token: %w", err)
	}

	result := ports.AccessToken{Value: fresh.AccessToken, Expiry: fresh.Expiry}
	current := refreshToken
	if fresh.RefreshToken != "" && fresh.RefreshToken != refreshToken {
		result.RefreshToken = fresh.RefreshToken
		current = fresh.RefreshToken
	}

	r.mu.Lock()
	r.cache[id] = cachedToken{refreshToken: current, token: ports.AccessToken{Value: result.Value, Expiry: result.Expiry}}
	r.mu.Unlock()

	return result, nil
}

func (r *Refresher) Invalidate(id domain.AccountID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, id)
}

func (r *Refresher) cached(id domain.AccountID, refreshToken string) (ports.AccessToken, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[id]
	if !ok || entry.refreshToken != refreshToken {
		return ports.AccessToken{}, false
	}
	if entry.token.Expiry.IsZero() || !r.clock.Now().Add(r.refreshAhead).Before(entry.token.Expiry) {
		return ports.AccessToken{}, false
	}

	return entry.token, true
}

func isPermanentRefreshError(err error) bool {
	if err == nil {
		return false
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		switch retrieveErr.ErrorCode {
		case "invalid_grant", "invalid_client", "unauthorized_client":
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"invalid_grant", "invalid_client", "unauthorized_client", "revoked"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
