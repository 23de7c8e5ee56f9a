package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultRefreshConcurrency = 4

var ErrNotConfigured = errors.New("not configured")

// Service is the local implementation of ports.AccountService. Accounts live
// in the repository, refresh tokens in the secret store.
type Service struct {
	repo  ports.AccountRepository
	store ports.SecretStore
	clock ports.Clock

	sessions    ports.SessionRepository
	refresher   ports.TokenRefresher
	quota       ports.QuotaFetcher
	projects    ports.ProjectResolver
	login       ports.OAuthLogin
	v1Importer  ports.AccountImporter
	dbImporter  ports.AccountImporter
	logger      logrus.FieldLogger
	concurrency int
	newID       func() domain.AccountID

	loginMu     sync.Mutex
	loginCancel context.CancelFunc
}

var _ ports.AccountService = (*Service)(nil)

type ServiceOption func(*Service)

func WithSessions(sessions ports.SessionRepository) ServiceOption {
	return func(s *Service) { s.sessions = sessions }
}

func WithTokenRefresher(refresher ports.TokenRefresher) ServiceOption {
	return func(s *Service) { s.refresher = refresher }
}

func WithQuotaFetcher(fetcher ports.QuotaFetcher) ServiceOption {
	return func(s *Service) { s.quota = fetcher }
}

// WithProjectResolver looks up the Cloud Code project of accounts that have
// none before their quota is fetched.
func WithProjectResolver(resolver ports.ProjectResolver) ServiceOption {
	return func(s *Service) { s.projects = resolver }
}

func WithOAuthLogin(login ports.OAuthLogin) ServiceOption {
	return func(s *Service) { s.login = login }
}

func WithV1Importer(importer ports.AccountImporter) ServiceOption {
	return func(s *Service) { s.v1Importer = importer }
}

func WithDBImporter(importer ports.AccountImporter) ServiceOption {
	return func(s *Service) { s.dbImporter = importer }
}

func WithLogger(logger logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency bounds how many accounts RefreshAllQuotas refreshes at once.
func WithConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(repo ports.AccountRepository, store ports.SecretStore, clock ports.Clock, opts ...ServiceOption) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		repo:        repo,
		store:       store,
		clock:       clock,
		logger:      logrus.StandardLogger(),
		concurrency: DefaultRefreshConcurrency,
		newID:       func() domain.AccountID { return domain.AccountID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) GetCurrentAccount(ctx context.Context) (*domain.Account, error) {
	if s.sessions == nil {
		return nil, nil
	}

	id, err := s.sessions.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}
	if id == "" {
		return nil, nil
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.WithField("account_id", id).Debug("session points at a missing account")
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return &account, nil
}

func (s *Service) AddAccount(ctx context.Context, email, refreshToken string) error {
	if err := domain.ValidateEmail(email); err != nil {
		return err
	}
	if strings.TrimSpace(refreshToken) == "" {
		return domain.ErrInvalidToken
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, strings.TrimSpace(email))
	}

	_, err = s.createAccount(ctx, domain.ImportedAccount{Email: email, RefreshToken: refreshToken}, domain.AuthMethodManual)
	return err
}

func (s *Service) DeleteAccount(ctx context.Context, id domain.AccountID) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if ref := account.Auth.SecretRef; ref != "" {
		if err := s.store.Delete(ctx, ref); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
			s.logger.WithError(err).WithField("account_id", id).Warn("refresh token left behind after delete")
		}
	}

	if s.sessions == nil {
		return nil
	}
	current, err := s.sessions.GetCurrent(ctx)
	if err != nil {
		return fmt.Errorf("get current session: %w", err)
	}
	if current == id {
		if err := s.sessions.SetCurrent(ctx, ""); err != nil {
			return fmt.Errorf("clear current session: %w", err)
		}
	}

	return nil
}

func (s *Service) SwitchAccount(ctx context.Context, id domain.AccountID) error {
	if s.sessions == nil {
		return fmt.Errorf("switch account: session store %w", ErrNotConfigured)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}

	if err := s.sessions.SetCurrent(ctx, id); err != nil {
		return fmt.Errorf("set current session: %w", err)
	}

	lastUsed := s.clock.Now().Unix()
	err := s.repo.Update(ctx, id, func(account *domain.Account) error {
		account.LastUsed = lastUsed
		return nil
	})
	if err != nil {
		return fmt.Errorf("save account last used: %w", err)
	}

	return nil
}

func (s *Service) FetchAccountQuota(ctx context.Context, id domain.AccountID) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}
	return s.refreshQuota(ctx, account)
}

// RefreshAllQuotas refreshes every account that is not forbidden. Individual
// failures are counted in the stats, not returned.
func (s *Service) RefreshAllQuotas(ctx context.Context) (domain.RefreshStats, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return domain.RefreshStats{}, fmt.Errorf("list accounts: %w", err)
	}

	results := make([]error, len(accounts))
	attempted := make([]bool, len(accounts))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, account := range accounts {
		if account.Forbidden {
			continue
		}
		attempted[i] = true
		g.Go(func() error {
			results[i] = s.refreshQuota(ctx, account)
			return nil
		})
	}
	_ = g.Wait()

	var stats domain.RefreshStats
	for i, account := range accounts {
		switch {
		case !attempted[i]:
			stats.Details = append(stats.Details, fmt.Sprintf("%s: skipped (forbidden)", account.Email))
		case results[i] != nil:
			stats.Failed++
			stats.Details = append(stats.Details, fmt.Sprintf("%s: %v", account.Email, results[i]))
			s.logger.WithError(results[i]).WithField("account_id", account.ID).Warn("quota refresh failed")
		default:
			stats.Success++
		}
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// StartOAuthLogin blocks until the interactive login completes, fails, or is
// cancelled through CancelOAuthLogin. Only one login may run at a time.
func (s *Service) StartOAuthLogin(ctx context.Context) error {
	if s.login == nil {
		return fmt.Errorf("oauth login %w", ErrNotConfigured)
	}

	s.loginMu.Lock()
	if s.loginCancel != nil {
		s.loginMu.Unlock()
		return domain.ErrLoginInProgress
	}
	loginCtx, cancel := context.WithCancel(ctx)
	s.loginCancel = cancel
	s.loginMu.Unlock()

	defer func() {
		s.loginMu.Lock()
		s.loginCancel = nil
		s.loginMu.Unlock()
		cancel()
	}()

	result, err := s.login.Login(loginCtx)
	if err != nil {
		if loginCtx.Err() != nil && !errors.Is(err, domain.ErrOAuthCancelled) {
			return fmt.Errorf("oauth login: %w", domain.ErrOAuthCancelled)
		}
		return fmt.Errorf("oauth login: %w", err)
	}

	created, err := s.upsert(ctx, domain.ImportedAccount{
		Email:        result.Email,
		Name:         result.Name,
		RefreshToken: result.RefreshToken,
	}, domain.AuthMethodOAuth)
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"email": result.Email, "created": created}).Info("oauth login completed")
	return nil
}

func (s *Service) CancelOAuthLogin(context.Context) error {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	if s.loginCancel == nil {
		return nil
	}
	s.loginCancel()
	return nil
}

func (s *Service) ImportV1Accounts(ctx context.Context) error {
	return s.importFrom(ctx, "v1", s.v1Importer)
}

func (s *Service) ImportFromDB(ctx context.Context) error {
	return s.importFrom(ctx, "db", s.dbImporter)
}

func (s *Service) importFrom(ctx context.Context, source string, importer ports.AccountImporter) error {
	if importer == nil {
		return fmt.Errorf("import %s: %w", source, ErrNotConfigured)
	}

	imported, err := importer.Import(ctx)
	if err != nil {
		return fmt.Errorf("import %s: %w", source, err)
	}

	var (
		created, updated int
		errs             error
	)
	for _, candidate := range imported {
		isNew, err := s.upsert(ctx, candidate, domain.AuthMethodImport)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", candidate.Email, err))
			continue
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"source":  source,
		"created": created,
		"updated": updated,
	}).Info("import finished")

	if errs != nil {
		return fmt.Errorf("import %s: %w", source, errs)
	}
	return nil
}

func (s *Service) refreshQuota(ctx context.Context, account domain.Account) error {
	if s.refresher == nil || s.quota == nil {
		return fmt.Errorf("quota refresh %w", ErrNotConfigured)
	}

	refreshToken, err := s.store.Get(ctx, account.Auth.SecretRef)
	if err != nil {
		return fmt.Errorf("read refresh token: %w", err)
	}

	token, err := s.refresher.Refresh(ctx, account.ID, refreshToken)
	if err != nil {
		return err
	}
	if token.RefreshToken != "" {
		if err := s.store.Put(ctx, account.Auth.SecretRef, token.RefreshToken); err != nil {
			return fmt.Errorf("store rotated refresh token: %w", err)
		}
	}

	projectID := s.resolveProject(ctx, account, token.Value)

	quota, err := s.quota.FetchQuota(ctx, token.Value, projectID)
	if err != nil {
		return fmt.Errorf("fetch quota: %w", err)
	}
	if quota.LastUpdated.IsZero() {
		quota.LastUpdated = s.clock.Now()
	}

	// The record may have changed or been deleted while the request was in
	// flight; Update applies only the quota fields and never recreates it.
	err = s.repo.Update(ctx, account.ID, func(latest *domain.Account) error {
		latest.Quota = &quota
		latest.Forbidden = quota.IsForbidden
		if latest.ProjectID == "" {
			latest.ProjectID = projectID
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save account quota: %w", err)
	}
	return nil
}

// resolveProject returns the account's project, looking it up when unset. A
// failed lookup is logged and yields an empty project so the quota request
// still goes out unscoped.
func (s *Service) resolveProject(ctx context.Context, account domain.Account, accessToken string) string {
	if account.ProjectID != "" || s.projects == nil {
		return account.ProjectID
	}

	projectID, err := s.projects.ResolveProject(ctx, accessToken)
	if err != nil {
		s.logger.WithError(err).WithField("account_id", account.ID).Warn("project lookup failed")
		return ""
	}

	s.logger.WithFields(logrus.Fields{"account_id": account.ID, "project_id": projectID}).Debug("resolved project")
	return projectID
}

// upsert stores the credential on the account with the same email, or creates
// a new account. It reports whether an account was created.
func (s *Service) upsert(ctx context.Context, candidate domain.ImportedAccount, method domain.AuthMethod) (bool, error) {
	if err := domain.ValidateEmail(candidate.Email); err != nil {
		return false, err
	}
	if strings.TrimSpace(candidate.RefreshToken) == "" {
		return false, domain.ErrInvalidToken
	}

	existing, err := s.findByEmail(ctx, candidate.Email)
	if err != nil {
		return false, err
	}
	if existing == nil {
		if _, err := s.createAccount(ctx, candidate, method); err != nil {
			return false, err
		}
		return true, nil
	}

	secretRef := existing.Auth.SecretRef
	if secretRef == "" {
		secretRef = domain.RefreshTokenSecretRef(existing.ID)
	}
	if err := s.store.Put(ctx, secretRef, candidate.RefreshToken); err != nil {
		return false, fmt.Errorf("store refresh token: %w", err)
	}

	err = s.repo.Update(ctx, existing.ID, func(account *domain.Account) error {
		account.Auth.SecretRef = secretRef
		account.Auth.Method = method
		account.Forbidden = false
		if account.Name == "" {
			account.Name = candidate.Name
		}
		if candidate.ProjectID != "" {
			account.ProjectID = candidate.ProjectID
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("save account: %w", err)
	}
	return false, nil
}

func (s *Service) createAccount(ctx context.Context, candidate domain.ImportedAccount, method domain.AuthMethod) (domain.Account, error) {
	id := s.newID()
	secretRef := domain.RefreshTokenSecretRef(id)

	if err := s.store.Put(ctx, secretRef, candidate.RefreshToken); err != nil {
		return domain.Account{}, fmt.Errorf("store refresh token: %w", err)
	}

	account := domain.Account{
		ID:        id,
		Email:     strings.TrimSpace(candidate.Email),
		Name:      candidate.Name,
		ProjectID: candidate.ProjectID,
		Auth:      domain.Auth{Method: method, SecretRef: secretRef},
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.Save(ctx, account); err != nil {
		if rollbackErr := s.store.Delete(ctx, secretRef); rollbackErr != nil {
			return domain.Account{}, fmt.Errorf("save account and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	want := domain.NormalizeEmail(email)
	for _, account := range accounts {
		if domain.NormalizeEmail(account.Email) == want {
			return &account, nil
		}
	}
	return nil, nil
}
