// Package config assembles settings from ~/.ag/config.toml, AG_* environment
// variables, and .env files into one viper instance.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	Dir       = ".ag"
	EnvPrefix = "AG"

	KeyAccountsPath        = "accounts.path"
	KeySessionPath         = "session.path"
	KeySecretsDir          = "secrets.dir"
	KeySecretsBackend      = "secrets.backend"
	KeySecretsPassDir      = "secrets.pass_dir"
	KeyAutoRefreshInterval = "auto_refresh.interval"
	KeyQuotaBaseURL        = "quota.base_url"
	KeyQuotaConcurrency    = "quota.concurrency"
	KeyOAuthClientID       = "oauth.client_id"
	KeyOAuthClientSecret   = "oauth.client_secret"
	KeyOAuthListenAddr     = "oauth.listen_addr"
	KeyOAuthTimeout        = "oauth.timeout"
	KeyOAuthAuthURL        = "oauth.auth_url"
	KeyOAuthTokenURL       = "oauth.token_url"
	KeyImportV1Dir         = "import.v1_dir"
	KeyImportDBPath        = "import.db_path"
	KeyImportDBKey         = "import.db_key"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
)

// Settings is the typed view of the keys the CLI wires from.
type Settings struct {
	SecretsDir          string
	SecretsBackend      string
	SecretsPassDir      string
	AutoRefreshInterval time.Duration
	QuotaBaseURL        string
	QuotaConcurrency    int
	OAuthClientID       string
	OAuthClientSecret   string
	OAuthListenAddr     string
	OAuthTimeout        time.Duration
	OAuthAuthURL        string
	OAuthTokenURL       string
	ImportV1Dir         string
	ImportDBPath        string
	ImportDBKey         string
	LogLevel            string
	LogFormat           string
}

// Load returns a viper instance with defaults applied. configFile may be empty,
// in which case ~/.ag/config.toml is read when it exists.
func Load(configFile string) (*viper.Viper, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	if err := loadDotEnv(filepath.Join(home, Dir, ".env"), ".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, home)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(home, Dir, "config.toml")
	}
	if _, err := os.Stat(configFile); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
		return v, nil
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return v, nil
}

func Decode(v *viper.Viper) Settings {
	return Settings{
		SecretsDir:          expandHome(v.GetString(KeySecretsDir)),
		SecretsBackend:      v.GetString(KeySecretsBackend),
		SecretsPassDir:      expandHome(v.GetString(KeySecretsPassDir)),
		AutoRefreshInterval: v.GetDuration(KeyAutoRefreshInterval),
		QuotaBaseURL:        v.GetString(KeyQuotaBaseURL),
		QuotaConcurrency:    v.GetInt(KeyQuotaConcurrency),
		OAuthClientID:       v.GetString(KeyOAuthClientID),
		OAuthClientSecret:   v.GetString(KeyOAuthClientSecret),
		OAuthListenAddr:     v.GetString(KeyOAuthListenAddr),
		OAuthTimeout:        v.GetDuration(KeyOAuthTimeout),
		OAuthAuthURL:        v.GetString(KeyOAuthAuthURL),
		OAuthTokenURL:       v.GetString(KeyOAuthTokenURL),
		ImportV1Dir:         expandHome(v.GetString(KeyImportV1Dir)),
		ImportDBPath:        expandHome(v.GetString(KeyImportDBPath)),
		ImportDBKey:         v.GetString(KeyImportDBKey),
		LogLevel:            v.GetString(KeyLogLevel),
		LogFormat:           v.GetString(KeyLogFormat),
	}
}

func setDefaults(v *viper.Viper, home string) {
	base := filepath.Join(home, Dir)

	v.SetDefault(KeyAccountsPath, filepath.Join(base, "accounts.toml"))
	v.SetDefault(KeySessionPath, filepath.Join(base, "session.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(base, "secrets"))
	v.SetDefault(KeySecretsBackend, "auto")
	v.SetDefault(KeySecretsPassDir, "")
	v.SetDefault(KeyAutoRefreshInterval, 5*time.Minute)
	v.SetDefault(KeyQuotaBaseURL, "https://cloudcode-pa.googleapis.com/v1internal")
	v.SetDefault(KeyQuotaConcurrency, 4)
	v.SetDefault(KeyOAuthClientID, "")
	v.SetDefault(KeyOAuthClientSecret, "")
	v.SetDefault(KeyOAuthListenAddr, "127.0.0.1:0")
	v.SetDefault(KeyOAuthTimeout, 5*time.Minute)
	v.SetDefault(KeyOAuthAuthURL, "https://accounts.google.com/o/oauth2/auth")
	v.SetDefault(KeyOAuthTokenURL, "https://oauth2.googleapis.com/token")
	v.SetDefault(KeyImportV1Dir, filepath.Join(home, ".antigravity_tools", "accounts"))
	v.SetDefault(KeyImportDBPath, defaultStateDBPath(home))
	v.SetDefault(KeyImportDBKey, "antigravityAuthStatus")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

func defaultStateDBPath(home string) string {
	const rel = "Antigravity/User/globalStorage/state.vscdb"

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", filepath.FromSlash(rel))
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, filepath.FromSlash(rel))
		}
		return filepath.Join(home, "AppData", "Roaming", filepath.FromSlash(rel))
	default:
		return filepath.Join(home, ".config", filepath.FromSlash(rel))
	}
}

// loadDotEnv loads the files that exist. Variables already set in the
// environment win.
func loadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
