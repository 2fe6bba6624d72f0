package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ekysel/tracklist/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Provenance identifies how an access token was obtained. A 401 or 403 from
// the playlist API means different things depending on who the token
// represents, so provenance is threaded through the whole fetch.
type Provenance int

const (
	// ClientToken is an application-only token from the client credentials
	// grant. It cannot see private playlists.
	ClientToken Provenance = iota
	// UserToken was supplied by the caller and represents a logged-in user.
	UserToken
)

func (p Provenance) String() string {
	if p == UserToken {
		return "user token"
	}
	return "client credentials"
}

// AccessToken is an opaque bearer token tagged with its provenance.
//
// Tokens are request-scoped values and are never persisted or cached.
type AccessToken struct {
	Value      string
	Provenance Provenance
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Any other scheme, or an empty header, yields "".
func BearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return header[len(prefix):]
	}
	return ""
}

// TokenResolver resolves the access token for an aggregation request: a
// caller-supplied bearer token passes through untouched, otherwise a client
// credentials exchange is performed against the token endpoint.
type TokenResolver struct {
	creds      shared.SpotifyConfig
	tokenURL   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewTokenResolver creates a TokenResolver. An empty tokenURL selects the
// production accounts endpoint; client and logger default to
// [http.DefaultClient] and a stderr logger.
func NewTokenResolver(creds shared.SpotifyConfig, tokenURL string, client *http.Client, logger *log.Logger) *TokenResolver {
	if tokenURL == "" {
		tokenURL = TokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &TokenResolver{
		creds:      creds,
		tokenURL:   tokenURL,
		httpClient: client,
		logger:     logger,
	}
}

// Resolve returns the supplied bearer token tagged [UserToken], or performs
// a client credentials exchange and returns the result tagged [ClientToken].
//
// Results are never cached: every call without a supplied bearer hits the
// token endpoint again. Missing configured credentials fail with
// [shared.ErrMissingCredentials] before any network call.
func (r *TokenResolver) Resolve(ctx context.Context, suppliedBearer string) (AccessToken, error) {
	if suppliedBearer != "" {
		return AccessToken{Value: suppliedBearer, Provenance: UserToken}, nil
	}

	if r.creds.ClientID == "" || r.creds.ClientSecret == "" {
		return AccessToken{}, shared.ErrMissingCredentials
	}

	// AuthStyleInHeader sends the id/secret pair as HTTP Basic auth with a
	// grant_type=client_credentials form body.
	config := &clientcredentials.Config{
		ClientID:     r.creds.ClientID,
		ClientSecret: r.creds.ClientSecret,
		TokenURL:     r.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	token, err := config.Token(context.WithValue(ctx, oauth2.HTTPClient, r.httpClient))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			r.logger.Error("client credentials exchange failed",
				"status", retrieveErr.Response.StatusCode,
				"body", string(retrieveErr.Body))
		}
		return AccessToken{}, fmt.Errorf("%w: %v", shared.ErrCredentialsExchange, err)
	}

	return AccessToken{Value: token.AccessToken, Provenance: ClientToken}, nil
}

// OAuthConfig builds the authorization code flow configuration used by the
// login endpoints. playlist-read-private is required for private playlists.
func OAuthConfig(creds shared.SpotifyConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes: []string{
			"playlist-read-private",
			"playlist-read-collaborative",
			"user-read-private",
			"user-read-email",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
	}
}
