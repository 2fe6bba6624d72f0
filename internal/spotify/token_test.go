package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ekysel/tracklist/internal/shared"
)

func TestBearerToken(t *testing.T) {
	t.Run("Valid Header", func(t *testing.T) {
		if got := BearerToken("Bearer abc123"); got != "abc123" {
			t.Errorf("expected abc123, got %q", got)
		}
	})

	t.Run("Empty Header", func(t *testing.T) {
		if got := BearerToken(""); got != "" {
			t.Errorf("expected empty token, got %q", got)
		}
	})

	t.Run("Other Scheme", func(t *testing.T) {
		if got := BearerToken("Basic dXNlcjpwYXNz"); got != "" {
			t.Errorf("expected empty token for non-bearer scheme, got %q", got)
		}
	})

	t.Run("Case Sensitive Prefix", func(t *testing.T) {
		if got := BearerToken("bearer abc123"); got != "" {
			t.Errorf("expected empty token for lowercase scheme, got %q", got)
		}
	})
}

func TestTokenResolver(t *testing.T) {
	creds := shared.SpotifyConfig{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
	}

	t.Run("Supplied Bearer Passes Through", func(t *testing.T) {
		resolver := NewTokenResolver(creds, "http://127.0.0.1:1/token", nil, nil)

		token, err := resolver.Resolve(context.Background(), "user_token_value")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if token.Value != "user_token_value" {
			t.Errorf("expected supplied token to pass through, got %q", token.Value)
		}
		if token.Provenance != UserToken {
			t.Errorf("expected UserToken provenance, got %v", token.Provenance)
		}
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		resolver := NewTokenResolver(shared.SpotifyConfig{}, "http://127.0.0.1:1/token", nil, nil)

		_, err := resolver.Resolve(context.Background(), "")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Client Credentials Exchange", func(t *testing.T) {
		var gotGrantType, gotUser, gotPass string
		var gotBasicAuth bool

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			gotGrantType = r.FormValue("grant_type")
			gotUser, gotPass, gotBasicAuth = r.BasicAuth()

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "client_token_value",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))
		defer srv.Close()

		resolver := NewTokenResolver(creds, srv.URL, srv.Client(), nil)

		token, err := resolver.Resolve(context.Background(), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if token.Value != "client_token_value" {
			t.Errorf("expected exchanged token, got %q", token.Value)
		}
		if token.Provenance != ClientToken {
			t.Errorf("expected ClientToken provenance, got %v", token.Provenance)
		}

		if gotGrantType != "client_credentials" {
			t.Errorf("expected grant_type client_credentials, got %q", gotGrantType)
		}
		if !gotBasicAuth {
			t.Error("expected credentials sent as HTTP basic auth")
		}
		if gotUser != creds.ClientID || gotPass != creds.ClientSecret {
			t.Errorf("expected basic auth %s:%s, got %s:%s", creds.ClientID, creds.ClientSecret, gotUser, gotPass)
		}
	})

	t.Run("Exchange Failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_client"}`))
		}))
		defer srv.Close()

		resolver := NewTokenResolver(creds, srv.URL, srv.Client(), nil)

		_, err := resolver.Resolve(context.Background(), "")
		if !errors.Is(err, shared.ErrCredentialsExchange) {
			t.Errorf("expected ErrCredentialsExchange, got %v", err)
		}
	})
}

func TestOAuthConfig(t *testing.T) {
	config := OAuthConfig(shared.SpotifyConfig{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		RedirectURI:  "http://localhost:8080/callback",
	})

	if config.Endpoint.AuthURL != AuthURL {
		t.Errorf("expected auth URL %s, got %s", AuthURL, config.Endpoint.AuthURL)
	}
	if config.Endpoint.TokenURL != TokenURL {
		t.Errorf("expected token URL %s, got %s", TokenURL, config.Endpoint.TokenURL)
	}

	authURL := config.AuthCodeURL("")
	if !strings.Contains(authURL, "playlist-read-private") {
		t.Error("expected playlist-read-private scope in auth URL")
	}
	if !strings.Contains(authURL, "test_client_id") {
		t.Error("expected client_id in auth URL")
	}
}

func TestProvenanceString(t *testing.T) {
	if ClientToken.String() != "client credentials" {
		t.Errorf("unexpected string for ClientToken: %s", ClientToken.String())
	}
	if UserToken.String() != "user token" {
		t.Errorf("unexpected string for UserToken: %s", UserToken.String())
	}
}
