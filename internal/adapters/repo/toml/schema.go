package toml

import "fmt"

const (
	currentSchemaVersion        = 1
	currentSessionSchemaVersion = 1
)

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID        string       `toml:"id"`
	Email     string       `toml:"email"`
	Name      string       `toml:"name,omitempty"`
	CreatedAt string       `toml:"created_at,omitempty"`
	LastUsed  int64        `toml:"last_used,omitempty"`
	Forbidden bool         `toml:"forbidden,omitempty"`
	ProjectID string       `toml:"project_id,omitempty"`
	Auth      authSchema   `toml:"auth"`
	Quota     *quotaSchema `toml:"quota,omitempty"`
}

type authSchema struct {
	Method    string `toml:"method"`
	SecretRef string `toml:"secret_ref"`
}

type quotaSchema struct {
	IsForbidden bool               `toml:"is_forbidden"`
	LastUpdated string             `toml:"last_updated"`
	Models      []modelQuotaSchema `toml:"models,omitempty"`
}

type modelQuotaSchema struct {
	Name       string `toml:"name"`
	Percentage int    `toml:"percentage"`
	ResetTime  string `toml:"reset_time,omitempty"`
}

type sessionFileSchema struct {
	Version          int    `toml:"version"`
	CurrentAccountID string `toml:"current_account_id"`
	UpdatedAt        string `toml:"updated_at,omitempty"`
}

func (s *sessionFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionSchemaVersion
	}
}

func (s sessionFileSchema) validateVersion() error {
	if s.Version > currentSessionSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSessionSchemaVersion)
	}

	return nil
}
