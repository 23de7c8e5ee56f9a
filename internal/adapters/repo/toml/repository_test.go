package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, accountsPath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set("accounts.path", accountsPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	created := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	first := domain.Account{
		ID:        "acc-1",
		Email:     "primary@example.com",
		Name:      "Primary",
		CreatedAt: created,
		LastUsed:  created.Unix(),
		ProjectID: "bright-river-a1b2c",
		Auth:      domain.Auth{Method: domain.AuthMethodOAuth, SecretRef: domain.RefreshTokenSecretRef("acc-1")},
	}
	second := domain.Account{
		ID:    "acc-2",
		Email: "backup@example.com",
		Auth:  domain.Auth{Method: domain.AuthMethodManual, SecretRef: domain.RefreshTokenSecretRef("acc-2")},
	}

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{first, second}, accounts)
}

func TestRepositoryRoundTripPersistsQuota(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	account := domain.Account{
		ID:        "acc-1",
		Email:     "primary@example.com",
		Forbidden: true,
		Quota: &domain.Quota{
			IsForbidden: true,
			LastUpdated: now,
			Models: []domain.ModelQuota{
				{Name: "gemini-3-pro-high", Percentage: 80, ResetTime: now.Add(4 * time.Hour)},
				{Name: "claude-sonnet-4-5", Percentage: 12},
			},
		},
	}

	require.NoError(t, repo.Save(context.Background(), account))

	got, err := repo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Quota)
	assert.Equal(t, *account.Quota, *got.Quota)
	assert.True(t, got.Forbidden)
}

func TestRepositorySaveReplacesExistingEntry(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"}))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com", Name: "Renamed"}))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Renamed", accounts[0].Name)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"}))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-2", Email: "b@example.com"}))

	require.NoError(t, repo.Delete(context.Background(), "acc-1"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, domain.AccountID("acc-2"), accounts[0].ID)

	err = repo.Delete(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepositoryUpdateMutatesStoredRecord(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com", Name: "A"}))

	err := repo.Update(context.Background(), "acc-1", func(account *domain.Account) error {
		account.LastUsed = 42
		account.ProjectID = "proj-1"
		account.ID = "ignored"
		return nil
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, int64(42), got.LastUsed)
	assert.Equal(t, "proj-1", got.ProjectID)
}

func TestRepositoryUpdateMissingAccountDoesNotCreate(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"}))
	require.NoError(t, repo.Delete(context.Background(), "acc-1"))

	called := false
	err := repo.Update(context.Background(), "acc-1", func(*domain.Account) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.False(t, called)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestRepositoryUpdateMutateErrorLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"}))

	boom := errors.New("boom")
	err := repo.Update(context.Background(), "acc-1", func(account *domain.Account) error {
		account.Name = "changed"
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, got.Name)
}

func TestRepositoryReadsFileWithoutQuota(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[accounts]]",
		"id = \"acc-1\"",
		"email = \"primary@example.com\"",
		"",
		"[accounts.auth]",
		"method = \"\"",
		"secret_ref = \"\"",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, accountsPath)

	account, err := repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "primary@example.com", account.Email)
	assert.Nil(t, account.Quota)
	assert.Zero(t, account.LastUsed)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"})
	require.NoError(t, err)

	accountsPath := filepath.Join(homeDir, ".ag", "accounts.toml")
	info, err := os.Stat(accountsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "accounts.toml"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = repo.GetByID(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	err = repo.Delete(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte("accounts = ["), 0o600))

	repo := newTestRepository(t, accountsPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode accounts file")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "accounts.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Account{ID: "acc-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveBothAccounts(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	repoA := newTestRepository(t, accountsPath)
	repoB := newTestRepository(t, accountsPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoA.Save(context.Background(), domain.Account{ID: domain.AccountID("acc-a-" + strconv.Itoa(i))})
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoB.Save(context.Background(), domain.Account{ID: domain.AccountID("acc-b-" + strconv.Itoa(i))})
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	accounts, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, perRepoWrites*2)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	repo := newTestRepository(t, accountsPath)

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"}))

	data, err := os.ReadFile(accountsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "a@example.com")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte("version = 999\n\naccounts = []\n"), 0o600))

	repo := newTestRepository(t, accountsPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported accounts schema version")
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	cfg := viper.New()
	cfg.Set("session.path", path)

	repo, err := NewSessionRepository(cfg)
	require.NoError(t, err)

	current, err := repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, current)

	require.NoError(t, repo.SetCurrent(context.Background(), "acc-2"))

	current, err = repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("acc-2"), current)

	require.NoError(t, repo.SetCurrent(context.Background(), ""))
	current, err = repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestSessionRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 7\ncurrent_account_id = \"x\"\n"), 0o600))

	cfg := viper.New()
	cfg.Set("session.path", path)
	repo, err := NewSessionRepository(cfg)
	require.NoError(t, err)

	_, err = repo.GetCurrent(context.Background())
	assert.ErrorContains(t, err, "unsupported session schema version")
}

func TestRepositoryExpandsTildePath(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo := newTestRepository(t, "~/custom/accounts.toml")
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "acc-1", Email: "a@example.com"}))

	_, err := os.Stat(filepath.Join(homeDir, "custom", "accounts.toml"))
	require.NoError(t, err)
}
