package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	authadapter "github.com/bnema/antigravity-accounts-cli/internal/adapters/auth"
	"github.com/bnema/antigravity-accounts-cli/internal/adapters/importer/sqlitedb"
	v1importer "github.com/bnema/antigravity-accounts-cli/internal/adapters/importer/v1"
	"github.com/bnema/antigravity-accounts-cli/internal/adapters/quota/cloudcode"
	statusadapter "github.com/bnema/antigravity-accounts-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/antigravity-accounts-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/antigravity-accounts-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/antigravity-accounts-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/antigravity-accounts-cli/internal/adapters/secrets/pass"
	"github.com/bnema/antigravity-accounts-cli/internal/application"
	"github.com/bnema/antigravity-accounts-cli/internal/config"
	"github.com/bnema/antigravity-accounts-cli/internal/logging"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

const (
	httpTimeout       = 30 * time.Second
	defaultStaleAfter = 30 * time.Minute
)

// app is the lifecycle owner: it holds the coordinator and the one
// AutoRefresher for the process.
type app struct {
	cfg      *viper.Viper
	settings config.Settings
	logger   *logrus.Logger

	service       *application.Service
	coordinator   *application.Coordinator
	autoRefresher *application.AutoRefresher

	statusRenderer func(application.State, statusadapter.RenderOptions) (string, error)
	now            func() time.Time

	// promptOut receives the OAuth authorization URL.
	promptOut io.Writer
}

func loadApp() (*app, error) {
	cfg, err := config.Load(os.Getenv("AG_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{
		cfg:            cfg,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
		promptOut:      os.Stdout,
	}, nil
}

// wire builds every component from the current configuration. It runs after
// flag parsing so flags bound to config keys take effect.
func (a *app) wire(logOut io.Writer) error {
	a.settings = config.Decode(a.cfg)

	logger, err := logging.New(a.settings.LogLevel, a.settings.LogFormat, logOut)
	if err != nil {
		return err
	}
	a.logger = logger

	repo, err := tomlrepo.NewRepository(a.cfg)
	if err != nil {
		return fmt.Errorf("wire account repository: %w", err)
	}
	sessions, err := tomlrepo.NewSessionRepository(a.cfg)
	if err != nil {
		return fmt.Errorf("wire session repository: %w", err)
	}

	secretStore, err := newSecretStore(a.settings, logger)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	clock := ports.SystemClock{}
	httpClient := &http.Client{Timeout: httpTimeout}
	oauthCfg := authadapter.Config{
		ClientID:     a.settings.OAuthClientID,
		ClientSecret: a.settings.OAuthClientSecret,
		ListenAddr:   a.settings.OAuthListenAddr,
		Timeout:      a.settings.OAuthTimeout,
		Endpoint: oauth2.Endpoint{
			AuthURL:   a.settings.OAuthAuthURL,
			TokenURL:  a.settings.OAuthTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	login := authadapter.NewBrowserLogin(oauthCfg,
		authadapter.WithHTTPClient(httpClient),
		authadapter.WithLogger(logger),
		authadapter.WithPrompt(a.showAuthURL),
	)

	cloudCode := cloudcode.NewClient(a.settings.QuotaBaseURL, httpClient, clock)

	a.service = application.NewService(repo, secretStore, clock,
		application.WithSessions(sessions),
		application.WithTokenRefresher(authadapter.NewRefresher(oauthCfg, httpClient, clock)),
		application.WithQuotaFetcher(cloudCode),
		application.WithProjectResolver(cloudCode),
		application.WithOAuthLogin(login),
		application.WithV1Importer(v1importer.NewImporter(a.settings.ImportV1Dir, logger)),
		application.WithDBImporter(sqlitedb.NewImporter(a.settings.ImportDBPath, a.settings.ImportDBKey, logger)),
		application.WithConcurrency(a.settings.QuotaConcurrency),
		application.WithLogger(logger),
	)
	a.coordinator = application.NewCoordinator(a.service, clock, logger)
	a.autoRefresher = application.NewAutoRefresher(a.coordinator, a.settings.AutoRefreshInterval, logger)

	return nil
}

func (a *app) showAuthURL(authURL string) {
	_, _ = fmt.Fprintf(a.promptOut, "Open this URL in your browser to sign in:\n%s\n", authURL)
}

func newSecretStore(settings config.Settings, logger logrus.FieldLogger) (ports.SecretStore, error) {
	switch strings.ToLower(strings.TrimSpace(settings.SecretsBackend)) {
	case "file":
		return filestore.NewStore(settings.SecretsDir), nil
	case "pass":
		return passstore.NewStore(passstore.WithStoreDir(settings.SecretsPassDir)), nil
	case "", "auto":
		return chainstore.NewPassFirstWithFileFallback(settings.SecretsPassDir, settings.SecretsDir, logger)
	default:
		return nil, fmt.Errorf("unknown secrets backend %q (want auto, pass, or file)", settings.SecretsBackend)
	}
}
