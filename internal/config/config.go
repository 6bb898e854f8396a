package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SIMPLU"
	ConfigDir = ".simplu"

	KeyAPIURL         = "api.url"
	KeyAuthDomain     = "auth.domain"
	KeyAuthClientID   = "auth.client_id"
	KeyAuthRedirect   = "auth.redirect_url"
	KeyAuthScopes     = "auth.scopes"
	KeyLoginTimeout   = "auth.login_timeout"
	KeyStripeKey      = "stripe.publishable_key"
	KeyStripeAPIURL   = "stripe.api_url"
	KeyDefaultPriceID = "payments.default_price_id"
	KeyDraftsPath     = "drafts.path"
	KeySecretsDir     = "secrets.dir"
	KeySecretsBackend = "secrets.backend"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyHTTPTimeout    = "api.timeout"
)

// Secret backends: auto tries pass and falls back to files, file skips pass.
const (
	SecretsBackendAuto = "auto"
	SecretsBackendFile = "file"
)

type Auth struct {
	Domain       string
	ClientID     string
	RedirectURL  string
	Scopes       []string
	LoginTimeout time.Duration
}

type Config struct {
	APIURL         string
	// HTTPTimeout of zero leaves API calls to the transport's own limits.
	HTTPTimeout    time.Duration
	Auth           Auth
	StripeKey      string
	StripeAPIURL   string
	DefaultPriceID string
	DraftsPath     string
	SecretsDir     string
	SecretsBackend string
	LogLevel       string
	LogFormat      string
}

// New returns a viper instance reading ~/.simplu/config.toml (when present)
// with SIMPLU_* environment overrides, e.g. SIMPLU_API_URL for api.url.
func New() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, filepath.Join(homeDir, ConfigDir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyDefaultPriceID, EnvPrefix+"_PAYMENTS_DEFAULT_PRICE_ID", EnvPrefix+"_DEFAULT_PRICE_ID")

	path := os.Getenv(EnvPrefix + "_CONFIG")
	if path == "" {
		path = filepath.Join(homeDir, ConfigDir, "config.toml")
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault(KeyAPIURL, "http://localhost:3000")
	v.SetDefault(KeyHTTPTimeout, "0s")
	v.SetDefault(KeyAuthDomain, "")
	v.SetDefault(KeyAuthClientID, "")
	v.SetDefault(KeyAuthRedirect, "http://localhost:5173/auth/callback")
	v.SetDefault(KeyAuthScopes, "phone openid email")
	v.SetDefault(KeyLoginTimeout, "5m")
	v.SetDefault(KeyStripeKey, "")
	v.SetDefault(KeyStripeAPIURL, "")
	v.SetDefault(KeyDefaultPriceID, "price_basic_monthly")
	v.SetDefault(KeyDraftsPath, filepath.Join(baseDir, "drafts.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(baseDir, "secrets"))
	v.SetDefault(KeySecretsBackend, SecretsBackendAuto)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
}

func Load(v *viper.Viper) Config {
	return Config{
		APIURL:      strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		Auth: Auth{
			Domain:       strings.TrimRight(v.GetString(KeyAuthDomain), "/"),
			ClientID:     v.GetString(KeyAuthClientID),
			RedirectURL:  v.GetString(KeyAuthRedirect),
			Scopes:       strings.Fields(v.GetString(KeyAuthScopes)),
			LoginTimeout: v.GetDuration(KeyLoginTimeout),
		},
		StripeKey:      v.GetString(KeyStripeKey),
		StripeAPIURL:   strings.TrimRight(v.GetString(KeyStripeAPIURL), "/"),
		DefaultPriceID: v.GetString(KeyDefaultPriceID),
		DraftsPath:     v.GetString(KeyDraftsPath),
		SecretsDir:     v.GetString(KeySecretsDir),
		SecretsBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}
}
