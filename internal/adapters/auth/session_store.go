package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
)

// SecretSessionStore keeps the session as one JSON secret.
type SecretSessionStore struct {
	secrets ports.SecretStore
	key     string
}

var _ ports.SessionStore = (*SecretSessionStore)(nil)

func NewSecretSessionStore(secrets ports.SecretStore, clientID string) *SecretSessionStore {
	return &SecretSessionStore{secrets: secrets, key: SessionKey(clientID)}
}

func SessionKey(clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		clientID = "default"
	}
	return "cognito/" + clientID + "/session"
}

type storedSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

func (s *SecretSessionStore) Load(ctx context.Context) (domain.Session, error) {
	value, err := s.secrets.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if strings.TrimSpace(stored.AccessToken) == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	session := domain.Session{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		IDToken:      stored.IDToken,
		TokenType:    stored.TokenType,
	}
	if stored.ExpiresAt > 0 {
		session.ExpiresAt = time.Unix(stored.ExpiresAt, 0).UTC()
	}
	return session, nil
}

func (s *SecretSessionStore) Save(ctx context.Context, session domain.Session) error {
	stored := storedSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		IDToken:      session.IDToken,
		TokenType:    session.TokenType,
	}
	if !session.ExpiresAt.IsZero() {
		stored.ExpiresAt = session.ExpiresAt.Unix()
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.secrets.Put(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SecretSessionStore) Clear(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, s.key); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
