package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	v, err := Load("")
	require.NoError(t, err)

	settings := Decode(v)
	assert.Equal(t, filepath.Join(home, ".ag", "accounts.toml"), v.GetString(KeyAccountsPath))
	assert.Equal(t, filepath.Join(home, ".ag", "session.toml"), v.GetString(KeySessionPath))
	assert.Equal(t, filepath.Join(home, ".ag", "secrets"), settings.SecretsDir)
	assert.Equal(t, 5*time.Minute, settings.AutoRefreshInterval)
	assert.Equal(t, 4, settings.QuotaConcurrency)
	assert.Equal(t, "127.0.0.1:0", settings.OAuthListenAddr)
	assert.Equal(t, filepath.Join(home, ".antigravity_tools", "accounts"), settings.ImportV1Dir)
	assert.Equal(t, "antigravityAuthStatus", settings.ImportDBKey)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Empty(t, settings.OAuthClientID)
}

func TestLoadConfigFileEnvAndDotEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ag"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ag", "config.toml"), []byte(`
[auto_refresh]
interval = "90s"

[quota]
concurrency = 8

[import]
v1_dir = "~/legacy"
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ag", ".env"), []byte("AG_OAUTH_CLIENT_ID=from-dotenv\nAG_LOG_LEVEL=warn\n"), 0o600))
	t.Setenv("AG_LOG_LEVEL", "debug")
	t.Setenv("AG_OAUTH_CLIENT_ID", "")
	require.NoError(t, os.Unsetenv("AG_OAUTH_CLIENT_ID"))

	v, err := Load("")
	require.NoError(t, err)

	settings := Decode(v)
	assert.Equal(t, 90*time.Second, settings.AutoRefreshInterval)
	assert.Equal(t, 8, settings.QuotaConcurrency)
	assert.Equal(t, filepath.Join(home, "legacy"), settings.ImportV1Dir)
	assert.Equal(t, "from-dotenv", settings.OAuthClientID)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadExplicitMissingConfigFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadMalformedConfigFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("quota = ["), 0o600))

	_, err := Load(path)
	require.ErrorContains(t, err, "read config file")
}
