package shared

import "fmt"

// Sentinel errors for the aggregation pipeline. The playlist URL error texts
// are part of the endpoint's wire contract and are returned verbatim to
// callers; everything else surfaces as a generic internal error.
var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrMissingCredentials = fmt.Errorf("missing spotify credentials")

	// Authentication errors
	ErrCredentialsExchange = fmt.Errorf("client credentials exchange failed")

	// Request validation errors
	ErrMissingPlaylistURL = fmt.Errorf("missing playlist url")
	ErrInvalidPlaylistURL = fmt.Errorf("invalid spotify playlist url")

	// API and input errors
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
