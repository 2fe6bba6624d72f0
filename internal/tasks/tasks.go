// package tasks orchestrates playlist aggregation: URL parsing, token
// resolution, and the paginated fetch.
package tasks

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ekysel/tracklist/internal/models"
	"github.com/ekysel/tracklist/internal/shared"
	"github.com/ekysel/tracklist/internal/spotify"
)

var playlistIDPattern = regexp.MustCompile(`playlist/([a-zA-Z0-9]+)(\?.*)?`)

// ExtractPlaylistID pulls the playlist identifier out of a Spotify playlist
// URL, ignoring any trailing query string. Returns "" when no identifier is
// present.
func ExtractPlaylistID(rawURL string) string {
	match := playlistIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// Aggregator resolves an access token and fetches a playlist's complete
// track list. Each call is independent: no state is shared between requests
// and nothing is cached.
type Aggregator struct {
	resolver *spotify.TokenResolver
	client   *spotify.Client
	logger   *log.Logger
}

// NewAggregator creates an Aggregator. The logger defaults to stderr.
func NewAggregator(resolver *spotify.TokenResolver, client *spotify.Client, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Aggregator{resolver: resolver, client: client, logger: logger}
}

// Aggregate validates the playlist URL, resolves an access token, and
// fetches the full playlist. suppliedBearer may be empty, in which case a
// client credentials token is obtained.
//
// URL validation happens before any network call: a missing URL fails with
// [shared.ErrMissingPlaylistURL] and one without an extractable identifier
// with [shared.ErrInvalidPlaylistURL].
func (a *Aggregator) Aggregate(ctx context.Context, playlistURL, suppliedBearer string) (*models.Playlist, error) {
	if strings.TrimSpace(playlistURL) == "" {
		return nil, shared.ErrMissingPlaylistURL
	}

	id := ExtractPlaylistID(playlistURL)
	if id == "" {
		return nil, shared.ErrInvalidPlaylistURL
	}

	token, err := a.resolver.Resolve(ctx, suppliedBearer)
	if err != nil {
		return nil, err
	}

	a.logger.Info("fetching playlist", "id", id, "token", token.Provenance.String())

	return a.client.FetchPlaylist(ctx, id, token)
}
