package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"golang.org/x/oauth2"
)

var ErrNotConfigured = errors.New("auth domain and client id must be configured")

type Settings struct {
	Domain      string
	ClientID    string
	RedirectURL string
	Scopes      []string
}

// Endpoint returns the hosted-UI endpoints of a Cognito user pool domain.
// Cognito public clients expect the client id in the form body.
func Endpoint(domainURL string) oauth2.Endpoint {
	base := strings.TrimRight(domainURL, "/")
	return oauth2.Endpoint{
		AuthURL:   base + "/oauth2/authorize",
		TokenURL:  base + "/oauth2/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func OAuthConfig(s Settings) (*oauth2.Config, error) {
	if strings.TrimSpace(s.Domain) == "" || strings.TrimSpace(s.ClientID) == "" {
		return nil, ErrNotConfigured
	}

	parsed, err := url.Parse(s.Domain)
	if err != nil {
		return nil, fmt.Errorf("parse auth domain: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("auth domain must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("auth domain host is required")
	}

	return &oauth2.Config{
		ClientID:    s.ClientID,
		Endpoint:    Endpoint(s.Domain),
		RedirectURL: s.RedirectURL,
		Scopes:      s.Scopes,
	}, nil
}

// LogoutURL ends the hosted-UI session and sends the browser back to logoutURI.
func LogoutURL(domainURL string, clientID string, logoutURI string) string {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("logout_uri", logoutURI)
	return strings.TrimRight(domainURL, "/") + "/logout?" + q.Encode()
}

// sessionFromToken keeps previous's refresh token when the token endpoint
// does not rotate it.
func sessionFromToken(tok *oauth2.Token, previous domain.Session) domain.Session {
	session := domain.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
		IDToken:      previous.IDToken,
	}
	if session.RefreshToken == "" {
		session.RefreshToken = previous.RefreshToken
	}
	if idToken, ok := tok.Extra("id_token").(string); ok && idToken != "" {
		session.IDToken = idToken
	}
	if !session.ExpiresAt.IsZero() {
		session.ExpiresAt = session.ExpiresAt.UTC().Truncate(time.Second)
	}
	return session
}
