package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// refreshSkew renews tokens slightly before they expire so a request does
// not race the expiry.
const refreshSkew = 30 * time.Second

// TokenBridge hands the current access token to the API client, silently
// renewing an expired session with its refresh token. It never returns an
// error: any failure degrades to an unauthenticated request.
type TokenBridge struct {
	mu         sync.Mutex
	store      ports.SessionStore
	oauth      *oauth2.Config
	httpClient *http.Client
	clock      ports.Clock
	logger     *zap.Logger
	closed     bool
}

var (
	_ ports.TokenProvider    = (*TokenBridge)(nil)
	_ ports.IdentityProvider = (*TokenBridge)(nil)
)

type BridgeOption func(*TokenBridge)

func WithBridgeHTTPClient(client *http.Client) BridgeOption {
	return func(b *TokenBridge) {
		b.httpClient = client
	}
}

func WithBridgeClock(clock ports.Clock) BridgeOption {
	return func(b *TokenBridge) {
		b.clock = clock
	}
}

func WithBridgeLogger(logger *zap.Logger) BridgeOption {
	return func(b *TokenBridge) {
		b.logger = logger
	}
}

// NewTokenBridge builds a bridge; oauthCfg may be nil, in which case expired
// sessions are never renewed.
func NewTokenBridge(store ports.SessionStore, oauthCfg *oauth2.Config, opts ...BridgeOption) *TokenBridge {
	b := &TokenBridge{
		store:  store,
		oauth:  oauthCfg,
		clock:  ports.SystemClock{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *TokenBridge) AccessToken(ctx context.Context) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ""
	}

	session, ok := b.loadSession(ctx)
	if !ok || session.AccessToken == "" {
		return ""
	}

	now := b.clock.Now()
	if !session.Expired(now.Add(refreshSkew)) {
		return session.AccessToken
	}

	renewed, err := b.renew(ctx, session)
	if err != nil {
		if !session.Expired(now) {
			b.logger.Debug("early session renewal failed; using current token", zap.Error(err))
			return session.AccessToken
		}
		b.logger.Warn("session renewal failed; continuing unauthenticated", zap.Error(err))
		return ""
	}
	return renewed.AccessToken
}

// Identity reads the signed-in user from the stored ID token.
func (b *TokenBridge) Identity(ctx context.Context) (domain.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	session, err := b.store.Load(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	return IdentityFromSession(session)
}

// Close detaches the bridge; every later call yields no token.
func (b *TokenBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
}

func (b *TokenBridge) loadSession(ctx context.Context) (domain.Session, bool) {
	session, err := b.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			b.logger.Warn("load session failed", zap.Error(err))
		}
		return domain.Session{}, false
	}
	return session, true
}

func (b *TokenBridge) renew(ctx context.Context, session domain.Session) (domain.Session, error) {
	if b.oauth == nil {
		return domain.Session{}, ErrNotConfigured
	}
	if session.RefreshToken == "" {
		return domain.Session{}, errors.New("session has no refresh token")
	}

	if b.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
	}

	// A zero access token forces the source to hit the token endpoint.
	source := b.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: session.RefreshToken})
	tok, err := source.Token()
	if err != nil {
		return domain.Session{}, err
	}

	renewed := sessionFromToken(tok, session)
	if err := b.store.Save(ctx, renewed); err != nil {
		b.logger.Warn("persist renewed session failed", zap.Error(err))
	}
	b.logger.Debug("session renewed", zap.Time("expires_at", renewed.ExpiresAt))

	return renewed, nil
}
