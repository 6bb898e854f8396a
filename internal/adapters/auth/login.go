package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"golang.org/x/oauth2"
)

const defaultLoginTimeout = 5 * time.Minute

// BrowserLogin runs the authorization-code flow with PKCE against the hosted
// UI and a local callback server.
type BrowserLogin struct {
	OAuth      *oauth2.Config
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Run prints nothing itself; prompt receives the URL the user must open.
func (l BrowserLogin) Run(ctx context.Context, prompt func(authURL string)) (domain.Session, error) {
	if l.OAuth == nil {
		return domain.Session{}, ErrNotConfigured
	}

	state, err := NewState()
	if err != nil {
		return domain.Session{}, fmt.Errorf("generate oauth state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	server, err := StartCallbackServer(l.OAuth.RedirectURL, state)
	if err != nil {
		return domain.Session{}, fmt.Errorf("start callback server: %w", err)
	}

	cfg := *l.OAuth
	cfg.RedirectURL = server.RedirectURI()
	authURL := cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	if prompt != nil {
		prompt(authURL)
	}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = defaultLoginTimeout
	}
	code, err := server.WaitForCode(ctx, timeout)
	if err != nil {
		return domain.Session{}, fmt.Errorf("wait for oauth callback: %w", err)
	}

	tok, err := cfg.Exchange(l.context(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return domain.Session{}, fmt.Errorf("exchange code for tokens: %w", err)
	}

	session := sessionFromToken(tok, domain.Session{})
	if session.IDToken == "" {
		return domain.Session{}, errors.New("token response missing id_token")
	}
	return session, nil
}

func (l BrowserLogin) context(ctx context.Context) context.Context {
	if l.HTTPClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, l.HTTPClient)
}
