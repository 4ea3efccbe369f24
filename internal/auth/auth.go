// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth exchanges Spotify API credentials for a bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenURL is the client-credentials token endpoint. Declared as a var so
// tests can substitute an httptest server.
var TokenURL = "https://accounts.spotify.com/api/token"

var (
	// ErrInvalidCredentials means the client id or secret is empty. It is
	// reported before any network call.
	ErrInvalidCredentials = errors.New("client id and client secret are required")

	// ErrAuthRejected means the token endpoint refused the credentials.
	// The caller must re-supply credentials; there is no retry.
	ErrAuthRejected = errors.New("token endpoint rejected the credentials")
)

// Credentials identifies an API client application.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Session holds a bearer token and its expiry. Callers thread the session
// explicitly through pipeline invocations; there is no ambient token state.
type Session struct {
	AccessToken string    `json:"access_token" yaml:"access_token"`
	ExpiresAt   time.Time `json:"expires_at" yaml:"expires_at"`
}

// Valid reports whether the session carries an unexpired token.
func (s Session) Valid() bool {
	return s.AccessToken != "" && time.Now().Before(s.ExpiresAt)
}

// Exchange performs one client-credentials grant and returns the resulting
// session. Empty credentials fail with ErrInvalidCredentials without
// touching the network; a non-success response from the endpoint fails
// with ErrAuthRejected.
func Exchange(ctx context.Context, client *http.Client, creds Credentials) (Session, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Session{}, ErrInvalidCredentials
	}

	cfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	if client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
	}

	tok, err := cfg.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return Session{}, fmt.Errorf("%w: HTTP %d", ErrAuthRejected, rerr.Response.StatusCode)
		}
		return Session{}, fmt.Errorf("requesting token: %w", err)
	}

	return Session{AccessToken: tok.AccessToken, ExpiresAt: tok.Expiry}, nil
}
