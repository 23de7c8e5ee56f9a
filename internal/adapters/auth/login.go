package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	DefaultUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	defaultLoginTimeout = 5 * time.Minute
	maxUserInfoBytes    = 1 << 20
)

var DefaultScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/cclog",
	"https://www.googleapis.com/auth/experimentsandconfigs",
}

var ErrClientNotConfigured = errors.New("oauth client id is not configured")

type Config struct {
	ClientID     string
	ClientSecret string
	ListenAddr   string
	Timeout      time.Duration
	Endpoint     oauth2.Endpoint
	Scopes       []string
	UserInfoURL  string
}

func (c Config) withDefaults() Config {
	if c.Endpoint.TokenURL == "" {
		c.Endpoint = google.Endpoint
	}
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes
	}
	if c.UserInfoURL == "" {
		c.UserInfoURL = DefaultUserInfoURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultLoginTimeout
	}
	return c
}

func (c Config) OAuth2(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     c.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       c.Scopes,
	}
}

// BrowserLogin runs the authorization-code flow with PKCE against a loopback
// redirect.
type BrowserLogin struct {
	cfg        Config
	httpClient *http.Client
	prompt     func(authURL string)
	logger     logrus.FieldLogger
}

var _ ports.OAuthLogin = (*BrowserLogin)(nil)

type LoginOption func(*BrowserLogin)

func WithHTTPClient(client *http.Client) LoginOption {
	return func(b *BrowserLogin) {
		if client != nil {
			b.httpClient = client
		}
	}
}

// WithPrompt sets the callback that shows the authorization URL to the user.
func WithPrompt(prompt func(authURL string)) LoginOption {
	return func(b *BrowserLogin) {
		if prompt != nil {
			b.prompt = prompt
		}
	}
}

func WithLogger(logger logrus.FieldLogger) LoginOption {
	return func(b *BrowserLogin) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func NewBrowserLogin(cfg Config, opts ...LoginOption) *BrowserLogin {
	b := &BrowserLogin{
		cfg:        cfg.withDefaults(),
		httpClient: http.DefaultClient,
		prompt:     func(string) {},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithField("component", "oauth")
	return b
}

func (b *BrowserLogin) Login(ctx context.Context) (ports.LoginResult, error) {
	if b.cfg.ClientID == "" {
		return ports.LoginResult{}, ErrClientNotConfigured
	}

	state, err := NewState()
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("generate oauth state: %w", err)
	}

	server, err := StartCallbackServer(b.cfg.ListenAddr, state)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("start callback server: %w", err)
	}
	defer func() { _ = server.Close() }()

	conf := b.cfg.OAuth2(server.RedirectURI())
	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)
	b.logger.WithField("redirect_uri", server.RedirectURI()).Debug("waiting for oauth callback")
	b.prompt(authURL)

	code, err := server.WaitForCode(ctx, b.cfg.Timeout)
	if err != nil {
		return ports.LoginResult{}, err
	}

	exchangeCtx := context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		if ctx.Err() != nil {
			return ports.LoginResult{}, fmt.Errorf("exchange authorization code: %w", domain.ErrOAuthCancelled)
		}
		return ports.LoginResult{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return ports.LoginResult{}, fmt.Errorf("token response has no refresh token: %w", domain.ErrInvalidToken)
	}

	identity, err := b.identity(ctx, token)
	if err != nil {
		return ports.LoginResult{}, err
	}

	return ports.LoginResult{
		Email:        identity.Email,
		Name:         identity.Name,
		RefreshToken: token.RefreshToken,
	}, nil
}

func (b *BrowserLogin) identity(ctx context.Context, token *oauth2.Token) (Identity, error) {
	if raw, ok := token.Extra("id_token").(string); ok && raw != "" {
		identity, err := IdentityFromIDToken(raw)
		if err == nil {
			return identity, nil
		}
		b.logger.WithError(err).Debug("id token unusable, falling back to userinfo")
	}

	return b.fetchUserInfo(ctx, token.AccessToken)
}

func (b *BrowserLogin) fetchUserInfo(ctx context.Context, accessToken string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.cfg.UserInfoURL, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBytes)).Decode(&payload); err != nil {
		return Identity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if payload.Email == "" {
		return Identity{}, errors.New("userinfo response has no email")
	}

	return Identity{Email: payload.Email, Name: payload.Name}, nil
}
