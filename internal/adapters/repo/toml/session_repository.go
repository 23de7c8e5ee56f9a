package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SessionPathKey  = "session.path"
	sessionFileName = "session.toml"
)

// SessionRepository stores the currently selected account in its own file so
// switching never rewrites accounts.toml.
type SessionRepository struct {
	path string
	mu   *sync.RWMutex
	now  func() time.Time
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	path, err := resolvePath(cfg, SessionPathKey, sessionFileName)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path), now: time.Now}, nil
}

func (r *SessionRepository) GetCurrent(ctx context.Context) (domain.AccountID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return "", err
	}

	return domain.AccountID(file.CurrentAccountID), nil
}

func (r *SessionRepository) SetCurrent(ctx context.Context, id domain.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.CurrentAccountID = string(id)
	file.UpdatedAt = formatTime(r.now())
	file.applyDefaults()

	return writeTOMLFile(r.path, file)
}

func (r *SessionRepository) readSchema() (sessionFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessionFileSchema{Version: currentSessionSchemaVersion}, nil
		}
		return sessionFileSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file sessionFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return sessionFileSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return sessionFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
