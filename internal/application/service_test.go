package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	tomlrepo "github.com/bnema/antigravity-accounts-cli/internal/adapters/repo/toml"
	filesecrets "github.com/bnema/antigravity-accounts-cli/internal/adapters/secrets/file"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/bnema/antigravity-accounts-cli/internal/ports/mocks"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.February, 14, 11, 0, 0, 0, time.UTC)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sequentialIDs(prefix string) func() domain.AccountID {
	var n atomic.Int64
	return func() domain.AccountID {
		return domain.AccountID(fmt.Sprintf("%s-%d", prefix, n.Add(1)))
	}
}

type localFixture struct {
	service  *Service
	repo     *tomlrepo.Repository
	sessions *tomlrepo.SessionRepository
	store    *filesecrets.Store
}

func newLocalFixture(t *testing.T, opts ...ServiceOption) localFixture {
	t.Helper()

	dir := t.TempDir()
	cfg := viper.New()
	cfg.Set(tomlrepo.AccountsPathKey, filepath.Join(dir, "accounts.toml"))
	cfg.Set(tomlrepo.SessionPathKey, filepath.Join(dir, "session.toml"))

	repo, err := tomlrepo.NewRepository(cfg)
	require.NoError(t, err)
	sessions, err := tomlrepo.NewSessionRepository(cfg)
	require.NoError(t, err)
	store := filesecrets.NewStore(filepath.Join(dir, "secrets"))

	opts = append([]ServiceOption{WithSessions(sessions), WithLogger(quietLogger())}, opts...)
	service := NewService(repo, store, stubClock{now: testNow}, opts...)
	service.newID = sequentialIDs("acc")

	return localFixture{service: service, repo: repo, sessions: sessions, store: store}
}

func (f localFixture) seed(t *testing.T, account domain.Account, refreshToken string) {
	t.Helper()

	if account.Auth.SecretRef == "" {
		account.Auth = domain.Auth{Method: domain.AuthMethodManual, SecretRef: domain.RefreshTokenSecretRef(account.ID)}
	}
	require.NoError(t, f.store.Put(context.Background(), account.Auth.SecretRef, refreshToken))
	require.NoError(t, f.repo.Save(context.Background(), account))
}

func TestServiceAddAccountStoresSecretAndRecord(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, stubClock{now: testNow}, WithLogger(quietLogger()))
	service.newID = func() domain.AccountID { return "acc-new" }

	repo.EXPECT().List(mockAnyContext()).Return([]domain.Account{{ID: "acc-1", Email: "other@example.com"}}, nil)
	store.EXPECT().Put(mockAnyContext(), "ag/accounts/acc-new/refresh_token", "rt-secret").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Account{
		ID:        "acc-new",
		Email:     "new@example.com",
		Auth:      domain.Auth{Method: domain.AuthMethodManual, SecretRef: "ag/accounts/acc-new/refresh_token"},
		CreatedAt: testNow,
	}).Return(nil)

	err := service.AddAccount(context.Background(), " new@example.com ", "rt-secret")
	require.NoError(t, err)
}

func TestServiceAddAccountRejectsDuplicateEmail(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, stubClock{now: testNow})

	repo.EXPECT().List(mockAnyContext()).Return([]domain.Account{{ID: "acc-1", Email: "X@Y.com"}}, nil)

	err := service.AddAccount(context.Background(), "x@y.com", "tok")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestServiceAddAccountValidatesInput(t *testing.T) {
	service := NewService(mocks.NewMockAccountRepository(t), mocks.NewMockSecretStore(t), nil)

	require.ErrorIs(t, service.AddAccount(context.Background(), "not-an-email", "tok"), domain.ErrInvalidEmail)
	require.ErrorIs(t, service.AddAccount(context.Background(), "a@example.com", "  "), domain.ErrInvalidToken)
}

func TestServiceAddAccountRollsBackSecretWhenSaveFails(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, stubClock{now: testNow})
	service.newID = func() domain.AccountID { return "acc-new" }

	saveErr := errors.New("disk full")
	deleteErr := errors.New("keyring locked")
	repo.EXPECT().List(mockAnyContext()).Return(nil, nil)
	store.EXPECT().Put(mockAnyContext(), "ag/accounts/acc-new/refresh_token", "tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), "ag/accounts/acc-new/refresh_token").Return(deleteErr)

	err := service.AddAccount(context.Background(), "a@example.com", "tok")
	require.ErrorIs(t, err, saveErr)
	require.ErrorIs(t, err, deleteErr)
}

func TestServiceDeleteCurrentAccountClearsSession(t *testing.T) {
	t.Parallel()

	f := newLocalFixture(t)
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")
	f.seed(t, domain.Account{ID: "acc-2", Email: "b@example.com"}, "rt-2")
	require.NoError(t, f.sessions.SetCurrent(context.Background(), "acc-1"))

	require.NoError(t, f.service.DeleteAccount(context.Background(), "acc-1"))

	accounts, err := f.service.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, domain.AccountID("acc-2"), accounts[0].ID)

	_, err = f.store.Get(context.Background(), domain.RefreshTokenSecretRef("acc-1"))
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	current, err := f.service.GetCurrentAccount(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestServiceDeleteOtherAccountKeepsSession(t *testing.T) {
	t.Parallel()

	f := newLocalFixture(t)
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")
	f.seed(t, domain.Account{ID: "acc-2", Email: "b@example.com"}, "rt-2")
	require.NoError(t, f.sessions.SetCurrent(context.Background(), "acc-1"))

	require.NoError(t, f.service.DeleteAccount(context.Background(), "acc-2"))

	current, err := f.service.GetCurrentAccount(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, domain.AccountID("acc-1"), current.ID)

	err = f.service.DeleteAccount(context.Background(), "acc-2")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestServiceSwitchAccountUpdatesSessionAndLastUsed(t *testing.T) {
	t.Parallel()

	f := newLocalFixture(t)
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	require.NoError(t, f.service.SwitchAccount(context.Background(), "acc-1"))

	current, err := f.service.GetCurrentAccount(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, domain.AccountID("acc-1"), current.ID)
	assert.Equal(t, testNow.Unix(), current.LastUsed)

	err = f.service.SwitchAccount(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestServiceSwitchAccountSessionFailureKeepsRecord(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	sessions := mocks.NewMockSessionRepository(t)
	service := NewService(repo, mocks.NewMockSecretStore(t), stubClock{now: testNow}, WithSessions(sessions))

	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("acc-1")).Return(domain.Account{ID: "acc-1"}, nil).Once()
	sessions.EXPECT().SetCurrent(mockAnyContext(), domain.AccountID("acc-1")).Return(errors.New("disk full")).Once()

	err := service.SwitchAccount(context.Background(), "acc-1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "set current session: disk full")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceGetCurrentAccountIgnoresStaleSession(t *testing.T) {
	t.Parallel()

	f := newLocalFixture(t)
	require.NoError(t, f.sessions.SetCurrent(context.Background(), "gone"))

	current, err := f.service.GetCurrentAccount(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestServiceFetchAccountQuotaStoresQuotaAndRotatedToken(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").
		Return(ports.AccessToken{Value: "at-1", RefreshToken: "rt-rotated"}, nil)
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").
		Return(domain.Quota{Models: []domain.ModelQuota{{Name: "gemini-3-pro-high", Percentage: 40}}}, nil)

	require.NoError(t, f.service.FetchAccountQuota(context.Background(), "acc-1"))

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	require.NotNil(t, account.Quota)
	assert.Equal(t, 40, account.Quota.Models[0].Percentage)
	assert.True(t, account.Quota.LastUpdated.Equal(testNow))
	assert.False(t, account.Forbidden)

	token, err := f.store.Get(context.Background(), domain.RefreshTokenSecretRef("acc-1"))
	require.NoError(t, err)
	assert.Equal(t, "rt-rotated", token)
}

func TestServiceFetchAccountQuotaMarksForbidden(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil)
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").Return(domain.Quota{IsForbidden: true, LastUpdated: testNow}, nil)

	require.NoError(t, f.service.FetchAccountQuota(context.Background(), "acc-1"))

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Forbidden)
	require.NotNil(t, account.Quota)
	assert.True(t, account.Quota.IsForbidden)
}

func TestServiceFetchAccountQuotaReturnsRefreshError(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").
		Return(ports.AccessToken{}, fmt.Errorf("refresh access token: %w", domain.ErrTokenRevoked))

	err := f.service.FetchAccountQuota(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrTokenRevoked)

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Nil(t, account.Quota)
}

func TestServiceFetchAccountQuotaResolvesAndKeepsProject(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	projects := mocks.NewMockProjectResolver(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher), WithProjectResolver(projects))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil).Twice()
	projects.EXPECT().ResolveProject(mockAnyContext(), "at-1").Return("bright-river-a1b2c", nil).Once()
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "bright-river-a1b2c").Return(domain.Quota{LastUpdated: testNow}, nil).Twice()

	require.NoError(t, f.service.FetchAccountQuota(context.Background(), "acc-1"))

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "bright-river-a1b2c", account.ProjectID)

	require.NoError(t, f.service.FetchAccountQuota(context.Background(), "acc-1"))
}

func TestServiceFetchAccountQuotaProjectLookupFailureStillFetches(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	projects := mocks.NewMockProjectResolver(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher), WithProjectResolver(projects))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil)
	projects.EXPECT().ResolveProject(mockAnyContext(), "at-1").Return("", errors.New("status 500"))
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").Return(domain.Quota{LastUpdated: testNow}, nil)

	require.NoError(t, f.service.FetchAccountQuota(context.Background(), "acc-1"))

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, account.ProjectID)
	assert.NotNil(t, account.Quota)
}

func TestServiceFetchAccountQuotaDoesNotRecreateDeletedAccount(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil)
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").
		RunAndReturn(func(ctx context.Context, _, _ string) (domain.Quota, error) {
			require.NoError(t, f.service.DeleteAccount(ctx, "acc-1"))
			return domain.Quota{LastUpdated: testNow}, nil
		})

	err := f.service.FetchAccountQuota(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	accounts, err := f.service.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestServiceFetchAccountQuotaKeepsConcurrentSwitch(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher))
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil)
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").
		RunAndReturn(func(ctx context.Context, _, _ string) (domain.Quota, error) {
			require.NoError(t, f.service.SwitchAccount(ctx, "acc-1"))
			return domain.Quota{LastUpdated: testNow}, nil
		})

	require.NoError(t, f.service.FetchAccountQuota(context.Background(), "acc-1"))

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, testNow.Unix(), account.LastUsed)
	assert.NotNil(t, account.Quota)
}

func TestServiceFetchAccountQuotaRequiresProviders(t *testing.T) {
	t.Parallel()

	f := newLocalFixture(t)
	f.seed(t, domain.Account{ID: "acc-1", Email: "a@example.com"}, "rt-1")

	err := f.service.FetchAccountQuota(context.Background(), "acc-1")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestServiceRefreshAllQuotasCountsAttempts(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher), WithConcurrency(2))
	f.seed(t, domain.Account{ID: "acc-1", Email: "ok@example.com"}, "rt-1")
	f.seed(t, domain.Account{ID: "acc-2", Email: "revoked@example.com"}, "rt-2")
	f.seed(t, domain.Account{ID: "acc-3", Email: "blocked@example.com", Forbidden: true}, "rt-3")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil)
	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-2"), "rt-2").
		Return(ports.AccessToken{}, fmt.Errorf("refresh access token: %w", domain.ErrTokenRevoked))
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").Return(domain.Quota{Models: []domain.ModelQuota{{Name: "m", Percentage: 5}}}, nil)

	stats, err := f.service.RefreshAllQuotas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Success)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.Attempted())
	require.Len(t, stats.Details, 2)
	assert.Contains(t, stats.Details[0], "revoked@example.com")
	assert.Contains(t, stats.Details[1], "skipped")

	account, err := f.repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.NotNil(t, account.Quota)
}

func TestServiceRefreshAllQuotasReportsRetryDelay(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewMockTokenRefresher(t)
	fetcher := mocks.NewMockQuotaFetcher(t)
	f := newLocalFixture(t, WithTokenRefresher(refresher), WithQuotaFetcher(fetcher))
	f.seed(t, domain.Account{ID: "acc-1", Email: "busy@example.com"}, "rt-1")

	refresher.EXPECT().Refresh(mockAnyContext(), domain.AccountID("acc-1"), "rt-1").Return(ports.AccessToken{Value: "at-1"}, nil)
	fetcher.EXPECT().FetchQuota(mockAnyContext(), "at-1", "").Return(domain.Quota{}, &domain.RateLimitError{RetryAfter: 2 * time.Minute})

	stats, err := f.service.RefreshAllQuotas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, []string{"busy@example.com: fetch quota: rate limited, retry in 2m0s"}, stats.Details)
}

func TestServiceRefreshAllQuotasEmpty(t *testing.T) {
	t.Parallel()

	f := newLocalFixture(t, WithTokenRefresher(mocks.NewMockTokenRefresher(t)), WithQuotaFetcher(mocks.NewMockQuotaFetcher(t)))

	stats, err := f.service.RefreshAllQuotas(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Attempted())
}

func TestServiceOAuthLoginCreatesAccount(t *testing.T) {
	t.Parallel()

	login := mocks.NewMockOAuthLogin(t)
	f := newLocalFixture(t, WithOAuthLogin(login))

	login.EXPECT().Login(mockAnyContext()).Return(ports.LoginResult{Email: "dev@example.com", Name: "Dev", RefreshToken: "rt-oauth"}, nil)

	require.NoError(t, f.service.StartOAuthLogin(context.Background()))

	accounts, err := f.service.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "dev@example.com", accounts[0].Email)
	assert.Equal(t, "Dev", accounts[0].Name)
	assert.Equal(t, domain.AuthMethodOAuth, accounts[0].Auth.Method)

	token, err := f.store.Get(context.Background(), accounts[0].Auth.SecretRef)
	require.NoError(t, err)
	assert.Equal(t, "rt-oauth", token)
}

func TestServiceOAuthLoginSingleFlightAndCancel(t *testing.T) {
	t.Parallel()

	login := mocks.NewMockOAuthLogin(t)
	f := newLocalFixture(t, WithOAuthLogin(login))

	started := make(chan struct{})
	login.EXPECT().Login(mockAnyContext()).RunAndReturn(func(ctx context.Context) (ports.LoginResult, error) {
		close(started)
		<-ctx.Done()
		return ports.LoginResult{}, ctx.Err()
	}).Once()

	errCh := make(chan error, 1)
	go func() { errCh <- f.service.StartOAuthLogin(context.Background()) }()
	<-started

	require.ErrorIs(t, f.service.StartOAuthLogin(context.Background()), domain.ErrLoginInProgress)
	require.NoError(t, f.service.CancelOAuthLogin(context.Background()))

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, domain.ErrOAuthCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("login did not return after cancel")
	}

	require.NoError(t, f.service.CancelOAuthLogin(context.Background()))
}

func TestServiceImportUpsertsByEmail(t *testing.T) {
	t.Parallel()

	importer := mocks.NewMockAccountImporter(t)
	f := newLocalFixture(t, WithV1Importer(importer))
	f.seed(t, domain.Account{ID: "acc-old", Email: "Existing@example.com", Forbidden: true}, "rt-old")

	importer.EXPECT().Import(mockAnyContext()).Return([]domain.ImportedAccount{
		{Email: "existing@example.com", Name: "Existing", RefreshToken: "rt-new", ProjectID: "proj-old"},
		{Email: "fresh@example.com", RefreshToken: "rt-fresh", ProjectID: "proj-fresh"},
	}, nil)

	require.NoError(t, f.service.ImportV1Accounts(context.Background()))

	accounts, err := f.service.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, domain.AccountID("acc-old"), accounts[0].ID)
	assert.Equal(t, "Existing", accounts[0].Name)
	assert.False(t, accounts[0].Forbidden)
	assert.Equal(t, domain.AuthMethodImport, accounts[0].Auth.Method)
	assert.Equal(t, "proj-old", accounts[0].ProjectID)
	assert.Equal(t, "fresh@example.com", accounts[1].Email)
	assert.Equal(t, "proj-fresh", accounts[1].ProjectID)

	token, err := f.store.Get(context.Background(), domain.RefreshTokenSecretRef("acc-old"))
	require.NoError(t, err)
	assert.Equal(t, "rt-new", token)
}

func TestServiceImportPartialFailureKeepsValidAccounts(t *testing.T) {
	t.Parallel()

	importer := mocks.NewMockAccountImporter(t)
	f := newLocalFixture(t, WithDBImporter(importer))

	importer.EXPECT().Import(mockAnyContext()).Return([]domain.ImportedAccount{
		{Email: "good@example.com", RefreshToken: "rt"},
		{Email: "bad", RefreshToken: "rt"},
	}, nil)

	err := f.service.ImportFromDB(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	accounts, err := f.service.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "good@example.com", accounts[0].Email)
}

func TestServiceImportErrors(t *testing.T) {
	t.Parallel()

	importer := mocks.NewMockAccountImporter(t)
	f := newLocalFixture(t, WithDBImporter(importer))

	importer.EXPECT().Import(mockAnyContext()).Return(nil, fmt.Errorf("%w: bad json", domain.ErrMalformedImport))

	require.ErrorIs(t, f.service.ImportFromDB(context.Background()), domain.ErrMalformedImport)
	require.ErrorIs(t, f.service.ImportV1Accounts(context.Background()), ErrNotConfigured)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
