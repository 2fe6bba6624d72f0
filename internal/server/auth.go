package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/ekysel/tracklist/internal/shared"
	"golang.org/x/oauth2"
)

// AuthHandler implements the Spotify authorization code flow: /auth
// redirects the browser to the authorize URL and /callback exchanges the
// returned code for tokens, handing them to the front end via a URL
// fragment. Tokens are never stored server-side.
type AuthHandler struct {
	config *oauth2.Config
	logger *log.Logger
}

// NewAuthHandler creates an AuthHandler around the given OAuth2 config.
// The logger defaults to stderr.
func NewAuthHandler(config *oauth2.Config, logger *log.Logger) *AuthHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AuthHandler{config: config, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/auth", "/callback"}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth":
		h.login(w, r)
	case "/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login redirects the browser to the authorize endpoint with the scopes
// needed to read private playlists.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if h.config.ClientID == "" {
		writeError(w, http.StatusInternalServerError, "missing spotify client id")
		return
	}

	http.Redirect(w, r, h.config.AuthCodeURL(""), http.StatusFound)
}

// callback exchanges the authorization code for tokens. Every error branch
// redirects back to the front end with an error query parameter rather than
// rendering a failure page.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		h.logger.Error("oauth error from spotify", "error", errParam)
		http.Redirect(w, r, "/?error="+url.QueryEscape(errParam), http.StatusFound)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.logger.Error("oauth callback received no code")
		http.Redirect(w, r, "/?error=no_code", http.StatusFound)
		return
	}

	if h.config.ClientID == "" || h.config.ClientSecret == "" {
		h.logger.Error("oauth callback without configured credentials")
		http.Redirect(w, r, "/?error=missing_credentials", http.StatusFound)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		http.Redirect(w, r, "/?error=token_exchange_failed", http.StatusFound)
		return
	}

	h.logger.Info("token received", "scopes", token.Extra("scope"), "expires", token.Expiry)

	// The fragment keeps tokens out of server logs on the next request.
	redirect := fmt.Sprintf("/#access_token=%s&refresh_token=%s",
		url.QueryEscape(token.AccessToken), url.QueryEscape(token.RefreshToken))
	http.Redirect(w, r, redirect, http.StatusFound)
}
