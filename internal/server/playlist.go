package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/ekysel/tracklist/internal/shared"
	"github.com/ekysel/tracklist/internal/spotify"
	"github.com/ekysel/tracklist/internal/tasks"
)

// PlaylistHandler serves the aggregation endpoint: GET /playlist?url=<url>
// with an optional Authorization bearer header.
type PlaylistHandler struct {
	aggregator *tasks.Aggregator
	logger     *log.Logger
}

// NewPlaylistHandler creates a PlaylistHandler. The logger defaults to
// stderr.
func NewPlaylistHandler(aggregator *tasks.Aggregator, logger *log.Logger) *PlaylistHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistHandler{aggregator: aggregator, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/playlist"}
}

// ServeHTTP aggregates the requested playlist and writes {name, tracks} on
// success, or the classified error payload on failure. OPTIONS requests are
// handled upstream by the CORS middleware.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	playlist, err := h.aggregator.Aggregate(r.Context(),
		r.URL.Query().Get("url"),
		spotify.BearerToken(r.Header.Get("Authorization")))
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// respondError translates classified aggregation failures into an HTTP
// status and a short user-facing message. Raw upstream error bodies never
// leave the process; they are logged where the failure was classified.
func (h *PlaylistHandler) respondError(w http.ResponseWriter, err error) {
	var statusErr *spotify.StatusError

	switch {
	case errors.Is(err, shared.ErrMissingPlaylistURL):
		writeError(w, http.StatusBadRequest, shared.ErrMissingPlaylistURL.Error())
	case errors.Is(err, shared.ErrInvalidPlaylistURL):
		writeError(w, http.StatusBadRequest, shared.ErrInvalidPlaylistURL.Error())
	case errors.As(err, &statusErr):
		writeError(w, statusErr.Status, statusErr.Message)
	default:
		// Covers missing credentials, failed token exchanges, and anything
		// unexpected. Detail stays server-side.
		h.logger.Error("aggregation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
