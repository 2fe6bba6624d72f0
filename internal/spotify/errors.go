package spotify

import "fmt"

// StatusError classifies a non-2xx playlist response by upstream status and
// token provenance. Message is the user-facing string surfaced by the
// aggregation endpoint; the raw upstream body is only ever logged.
type StatusError struct {
	Status     int
	Provenance Provenance
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify: %s (status %d, %s)", e.Message, e.Status, e.Provenance)
}

// classifyStatus maps (status, provenance) pairs to the stable error
// taxonomy in a single exhaustive switch. Message strings are contract.
func classifyStatus(status int, prov Provenance) *StatusError {
	message := "failed to fetch playlist"

	switch {
	case status == 401 && prov == UserToken:
		message = "user token invalid or expired, please login again"
	case status == 401 && prov == ClientToken:
		message = "client token invalid, try again later"
	case status == 403 && prov == ClientToken:
		message = "private playlist — login with Spotify to access it"
	case status == 403 && prov == UserToken:
		message = "not authorized (missing scope or no access to playlist)"
	}

	return &StatusError{Status: status, Provenance: prov, Message: message}
}
