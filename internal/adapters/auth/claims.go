package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/simplu-io/simplu-cli/internal/domain"
)

// IdentityFromSession extracts subject and email from the ID token without
// verifying its signature. Sessions lacking an ID token fall back to the
// access token claims.
func IdentityFromSession(session domain.Session) (domain.Identity, error) {
	raw := session.IDToken
	if raw == "" {
		raw = session.AccessToken
	}
	if raw == "" {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return domain.Identity{}, fmt.Errorf("parse id token: %w", err)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return domain.Identity{}, fmt.Errorf("read subject claim: %w", err)
	}

	identity := domain.Identity{Subject: subject}
	if email, ok := claims["email"].(string); ok {
		identity.Email = strings.TrimSpace(email)
	}
	if !identity.Known() {
		return domain.Identity{}, errors.New("id token carries neither subject nor email")
	}
	return identity, nil
}
