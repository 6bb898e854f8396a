package cmd

import (
	"fmt"

	authadapter "github.com/simplu-io/simplu-cli/internal/adapters/auth"
	"github.com/simplu-io/simplu-cli/internal/adapters/httpapi"
	stripeadapter "github.com/simplu-io/simplu-cli/internal/adapters/payments/stripe"
	tomlrepo "github.com/simplu-io/simplu-cli/internal/adapters/repo/toml"
	chainstore "github.com/simplu-io/simplu-cli/internal/adapters/secrets/chain"
	filestore "github.com/simplu-io/simplu-cli/internal/adapters/secrets/file"
	"github.com/simplu-io/simplu-cli/internal/application"
	"github.com/simplu-io/simplu-cli/internal/config"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/logging"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type app struct {
	cfg        config.Config
	logger     *zap.Logger
	sessions   ports.SessionStore
	bridge     *authadapter.TokenBridge
	oauth      *oauth2.Config
	oauthErr   error
	wizard     *application.Wizard
	businesses *application.BusinessService
	payments   *application.PaymentManager
}

func wireApp() (*app, error) {
	v, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg := config.Load(v)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	secrets, err := newSecretStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}
	sessions := authadapter.NewSecretSessionStore(secrets, cfg.Auth.ClientID)

	// A missing auth configuration only matters to `auth login`; stored
	// sessions are still used, just never renewed.
	oauthCfg, oauthErr := authadapter.OAuthConfig(authadapter.Settings{
		Domain:      cfg.Auth.Domain,
		ClientID:    cfg.Auth.ClientID,
		RedirectURL: cfg.Auth.RedirectURL,
		Scopes:      cfg.Auth.Scopes,
	})
	bridge := authadapter.NewTokenBridge(sessions, oauthCfg, authadapter.WithBridgeLogger(logger))

	api := httpapi.New(cfg.APIURL, bridge,
		httpapi.WithTimeout(cfg.HTTPTimeout),
		httpapi.WithLogger(logger),
	)

	cards := newCardConfirmer(cfg, logger)

	drafts, err := tomlrepo.NewDraftRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire draft repository: %w", err)
	}

	wizard := application.NewWizard(api, drafts, cards,
		application.WithWizardLogger(logger),
		application.WithWizardIdentity(bridge),
		application.OnUpdated(func(b domain.Business) {
			logger.Info("business updated from wizard", zap.String("business", string(b.ID)))
		}),
		application.OnLaunched(func(b domain.Business) {
			logger.Info("business launched from wizard", zap.String("business", string(b.ID)), zap.String("url", b.PublicURL()))
		}),
	)

	return &app{
		cfg:        cfg,
		logger:     logger,
		sessions:   sessions,
		bridge:     bridge,
		oauth:      oauthCfg,
		oauthErr:   oauthErr,
		wizard:     wizard,
		businesses: application.NewBusinessService(api, api, bridge, logger),
		payments: application.NewPaymentManager(application.PaymentManagerConfig{
			Payments:       api,
			Users:          api,
			Businesses:     api,
			Cards:          cards,
			Identity:       bridge,
			DefaultPriceID: cfg.DefaultPriceID,
			Logger:         logger,
		}),
	}, nil
}

func newSecretStore(cfg config.Config, logger *zap.Logger) (ports.SecretStore, error) {
	switch cfg.SecretsBackend {
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.SecretsBackendAuto, "":
		return chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir, logger)
	default:
		return nil, fmt.Errorf("unknown secrets backend %q (want %s or %s)", cfg.SecretsBackend, config.SecretsBackendAuto, config.SecretsBackendFile)
	}
}

// newCardConfirmer returns nil when no publishable key is configured; card
// steps then fail with ErrPaymentsUnavailable instead of at startup.
func newCardConfirmer(cfg config.Config, logger *zap.Logger) ports.CardConfirmer {
	opts := []stripeadapter.Option{stripeadapter.WithLogger(logger)}
	if cfg.StripeAPIURL != "" {
		opts = append(opts, stripeadapter.WithBackendURL(cfg.StripeAPIURL))
	}

	confirmer, err := stripeadapter.New(cfg.StripeKey, opts...)
	if err != nil {
		logger.Debug("card confirmation disabled", zap.Error(err))
		return nil
	}
	return confirmer
}
