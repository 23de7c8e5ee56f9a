package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const maxAccountFileBytes = 1 << 20

// accountFile is one account as written by the previous desktop release,
// stored as <dir>/<id>.json.
type accountFile struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Token tokenFile `json:"token"`
}

type tokenFile struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	ExpiresIn       int64  `json:"expires_in"`
	ExpiryTimestamp int64  `json:"expiry_timestamp"`
	ProjectID       string `json:"project_id,omitempty"`
}

type Importer struct {
	dir    string
	logger logrus.FieldLogger
}

var _ ports.AccountImporter = (*Importer)(nil)

func NewImporter(dir string, logger logrus.FieldLogger) *Importer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{dir: dir, logger: logger.WithField("component", "import.v1")}
}

// Import reads every *.json file in the directory. Unreadable or incomplete
// files are skipped with a warning; the import fails only when nothing usable
// was found.
func (i *Importer) Import(ctx context.Context) ([]domain.ImportedAccount, error) {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrImportSourceUnavailable, i.dir)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrImportSourceUnavailable, i.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no account files in %s", domain.ErrImportSourceUnavailable, i.dir)
	}

	accounts := make([]domain.ImportedAccount, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		account, err := readAccountFile(filepath.Join(i.dir, name))
		if err != nil {
			i.logger.WithError(err).WithField("file", name).Warn("skipping legacy account file")
			continue
		}
		accounts = append(accounts, account)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: none of %d files in %s could be read", domain.ErrMalformedImport, len(names), i.dir)
	}

	return accounts, nil
}

func readAccountFile(path string) (domain.ImportedAccount, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.ImportedAccount{}, err
	}
	if info.Size() > maxAccountFileBytes {
		return domain.ImportedAccount{}, fmt.Errorf("file too large (%d bytes)", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImportedAccount{}, err
	}

	var file accountFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.ImportedAccount{}, fmt.Errorf("decode: %w", err)
	}
	if err := domain.ValidateEmail(file.Email); err != nil {
		return domain.ImportedAccount{}, err
	}
	if strings.TrimSpace(file.Token.RefreshToken) == "" {
		return domain.ImportedAccount{}, domain.ErrInvalidToken
	}

	return domain.ImportedAccount{
		Email:        strings.TrimSpace(file.Email),
		Name:         file.Name,
		RefreshToken: file.Token.RefreshToken,
		ProjectID:    strings.TrimSpace(file.Token.ProjectID),
	}, nil
}
