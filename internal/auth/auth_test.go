// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTokenURL(t *testing.T, url string) {
	t.Helper()
	old := TokenURL
	TokenURL = url
	t.Cleanup(func() { TokenURL = old })
}

func TestExchangeEmptyCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"both empty", Credentials{}},
		{"missing secret", Credentials{ClientID: "id"}},
		{"missing id", Credentials{ClientSecret: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The validation must fire before any network call, so no
			// server is needed.
			_, err := Exchange(context.Background(), nil, tt.creds)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestExchangeSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		id, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "my-id", id)
		assert.Equal(t, "my-secret", secret)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "abc123", "token_type": "Bearer", "expires_in": 3600}`))
	}))
	defer ts.Close()
	withTokenURL(t, ts.URL)

	session, err := Exchange(context.Background(), ts.Client(), Credentials{
		ClientID:     "my-id",
		ClientSecret: "my-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", session.AccessToken)
	assert.True(t, session.Valid())
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestExchangeRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid_client"}`))
	}))
	defer ts.Close()
	withTokenURL(t, ts.URL)

	_, err := Exchange(context.Background(), ts.Client(), Credentials{
		ClientID:     "bad",
		ClientSecret: "worse",
	})
	assert.ErrorIs(t, err, ErrAuthRejected)
}

func TestSessionValid(t *testing.T) {
	assert.False(t, Session{}.Valid())
	assert.False(t, Session{AccessToken: "t", ExpiresAt: time.Now().Add(-time.Minute)}.Valid())
	assert.True(t, Session{AccessToken: "t", ExpiresAt: time.Now().Add(time.Minute)}.Valid())
}
