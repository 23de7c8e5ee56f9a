// Package sqlitedb imports the signed-in account from the IDE's local
// state database (state.vscdb).
package sqlitedb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultStateKey is the ItemTable key holding the IDE's login state.
const DefaultStateKey = "antigravityAuthStatus"

type item struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (item) TableName() string { return "ItemTable" }

type authStatus struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	RefreshToken string `json:"refreshToken"`
	ProjectID    string `json:"projectId"`
	// Older IDE builds wrote snake_case.
	LegacyRefreshToken string `json:"refresh_token"`
	LegacyProjectID    string `json:"project_id"`
}

func (s authStatus) refreshToken() string {
	if s.RefreshToken != "" {
		return s.RefreshToken
	}
	return s.LegacyRefreshToken
}

func (s authStatus) projectID() string {
	if s.ProjectID != "" {
		return strings.TrimSpace(s.ProjectID)
	}
	return strings.TrimSpace(s.LegacyProjectID)
}

type Importer struct {
	path   string
	key    string
	logger logrus.FieldLogger
}

var _ ports.AccountImporter = (*Importer)(nil)

func NewImporter(path, key string, logger logrus.FieldLogger) *Importer {
	if strings.TrimSpace(key) == "" {
		key = DefaultStateKey
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{path: path, key: key, logger: logger.WithField("component", "import.db")}
}

func (i *Importer) Import(ctx context.Context) ([]domain.ImportedAccount, error) {
	if strings.TrimSpace(i.path) == "" {
		return nil, fmt.Errorf("%w: no database path configured", domain.ErrImportSourceUnavailable)
	}
	if _, err := os.Stat(i.path); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportSourceUnavailable, err)
	}

	db, err := gorm.Open(sqlite.Open(i.path), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrImportSourceUnavailable, i.path, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	var row item
	err = db.WithContext(ctx).Where("key = ?", i.key).Take(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: no login state under %q", domain.ErrImportSourceUnavailable, i.key)
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: query %s: %v", domain.ErrImportSourceUnavailable, i.path, err)
	}

	var status authStatus
	if err := json.Unmarshal([]byte(row.Value), &status); err != nil {
		return nil, fmt.Errorf("%w: decode login state: %v", domain.ErrMalformedImport, err)
	}
	if err := domain.ValidateEmail(status.Email); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedImport, err)
	}
	if strings.TrimSpace(status.refreshToken()) == "" {
		return nil, fmt.Errorf("%w: login state has no refresh token", domain.ErrMalformedImport)
	}

	i.logger.WithField("email", status.Email).Debug("read login state from ide database")

	return []domain.ImportedAccount{{
		Email:        strings.TrimSpace(status.Email),
		Name:         status.Name,
		RefreshToken: status.refreshToken(),
		ProjectID:    status.projectID(),
	}}, nil
}
