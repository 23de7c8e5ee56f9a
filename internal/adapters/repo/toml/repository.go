package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	AccountsPathKey    = "accounts.path"
	accountsFileMode   = 0o600
	accountsDirMode    = 0o700
	ConfigDir          = ".ag"
	accountsConfigFile = "accounts.toml"
	tempFilePattern    = ".ag-*.toml.tmp"
)

type Repository struct {
	accountsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.AccountRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	accountsPath, err := resolvePath(cfg, AccountsPathKey, accountsConfigFile)
	if err != nil {
		return nil, err
	}

	return &Repository{accountsPath: accountsPath, mu: lockForPath(accountsPath)}, nil
}

// Save inserts the account or replaces the entry with the same id, keeping
// file order stable.
func (r *Repository) Save(ctx context.Context, account domain.Account) error {
	encoded := toSchema(account)
	return r.update(ctx, func(file *fileSchema) error {
		for i := range file.Accounts {
			if file.Accounts[i].ID == encoded.ID {
				file.Accounts[i] = encoded
				return nil
			}
		}
		file.Accounts = append(file.Accounts, encoded)
		return nil
	})
}

// Update applies mutate to the stored account under the write lock. It never
// creates a record: a missing id yields domain.ErrAccountNotFound.
func (r *Repository) Update(ctx context.Context, id domain.AccountID, mutate func(*domain.Account) error) error {
	return r.update(ctx, func(file *fileSchema) error {
		for i := range file.Accounts {
			if file.Accounts[i].ID != string(id) {
				continue
			}
			account := fromSchema(file.Accounts[i])
			if err := mutate(&account); err != nil {
				return err
			}
			account.ID = id
			file.Accounts[i] = toSchema(account)
			return nil
		}
		return domain.ErrAccountNotFound
	})
}

func (r *Repository) Delete(ctx context.Context, id domain.AccountID) error {
	return r.update(ctx, func(file *fileSchema) error {
		for i, entry := range file.Accounts {
			if entry.ID == string(id) {
				file.Accounts = append(file.Accounts[:i], file.Accounts[i+1:]...)
				return nil
			}
		}
		return domain.ErrAccountNotFound
	})
}

// update runs a read-modify-write of accounts.toml under the path lock.
func (r *Repository) update(ctx context.Context, mutate func(*fileSchema) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	if err := mutate(&file); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	file.applyDefaults()
	return writeTOMLFile(r.accountsPath, file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	for _, entry := range file.Accounts {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		accounts = append(accounts, fromSchema(entry))
	}

	return accounts, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode accounts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

// resolvePath reads key from cfg, falling back to fileName under ~/.ag.
func resolvePath(cfg *viper.Viper, key, fileName string) (string, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(key)
	if path == "" || path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "" {
			path = filepath.Join(homeDir, ConfigDir, fileName)
		} else {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", key, err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), accountsDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(accountsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}

	cleanup = false

	return nil
}

func toSchema(account domain.Account) accountSchema {
	return accountSchema{
		ID:        string(account.ID),
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: formatTime(account.CreatedAt),
		LastUsed:  account.LastUsed,
		Forbidden: account.Forbidden,
		ProjectID: account.ProjectID,
		Auth: authSchema{
			Method:    string(account.Auth.Method),
			SecretRef: account.Auth.SecretRef,
		},
		Quota: toQuotaSchema(account.Quota),
	}
}

func fromSchema(account accountSchema) domain.Account {
	return domain.Account{
		ID:        domain.AccountID(account.ID),
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: parseTime(account.CreatedAt),
		LastUsed:  account.LastUsed,
		Forbidden: account.Forbidden,
		ProjectID: account.ProjectID,
		Auth: domain.Auth{
			Method:    domain.AuthMethod(account.Auth.Method),
			SecretRef: account.Auth.SecretRef,
		},
		Quota: fromQuotaSchema(account.Quota),
	}
}

func toQuotaSchema(quota *domain.Quota) *quotaSchema {
	if quota == nil {
		return nil
	}

	models := make([]modelQuotaSchema, 0, len(quota.Models))
	for _, model := range quota.Models {
		models = append(models, modelQuotaSchema{
			Name:       model.Name,
			Percentage: model.Percentage,
			ResetTime:  formatTime(model.ResetTime),
		})
	}

	return &quotaSchema{
		IsForbidden: quota.IsForbidden,
		LastUpdated: formatTime(quota.LastUpdated),
		Models:      models,
	}
}

func fromQuotaSchema(schema *quotaSchema) *domain.Quota {
	if schema == nil {
		return nil
	}

	var models []domain.ModelQuota
	for _, model := range schema.Models {
		models = append(models, domain.ModelQuota{
			Name:       model.Name,
			Percentage: model.Percentage,
			ResetTime:  parseTime(model.ResetTime),
		})
	}

	return &domain.Quota{
		IsForbidden: schema.IsForbidden,
		LastUpdated: parseTime(schema.LastUpdated),
		Models:      models,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
