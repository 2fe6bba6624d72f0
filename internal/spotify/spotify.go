// Spotify Web API client for playlist aggregation.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/ekysel/tracklist/internal/models"
	"github.com/ekysel/tracklist/internal/shared"
)

const (
	AuthURL  = "https://accounts.spotify.com/authorize"
	TokenURL = "https://accounts.spotify.com/api/token"
	BaseURL  = "https://api.spotify.com/v1"
)

// Image represents an image resource. The API orders a resource's images
// largest to smallest.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a contributing artist on a track.
type Artist struct {
	Name string `json:"name"`
}

// Album represents the album a track belongs to.
type Album struct {
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	Images      []Image `json:"images"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// Track represents a Spotify track.
type Track struct {
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// PlaylistItem represents a track within a playlist context. Track is nil
// for removed or local entries.
type PlaylistItem struct {
	Track *Track `json:"track"`
}

// TrackPage is one page of a playlist's track collection. Next is an
// absolute URL to the following page, or nil on the final page.
type TrackPage struct {
	Items []PlaylistItem `json:"items"`
	Next  *string        `json:"next"`
}

// Playlist represents a Spotify playlist with its first page of tracks
// embedded.
type Playlist struct {
	Name   string    `json:"name"`
	Tracks TrackPage `json:"tracks"`
}

// Client fetches playlists from the Spotify Web API.
//
// continueOnPageFailure is the fail-soft pagination policy: when a page
// request after the first fails, the fetch stops and the tracks accumulated
// so far are returned as a successful result. The caller sees a
// shorter-than-true track list rather than an error.
type Client struct {
	baseURL               string
	httpClient            *http.Client
	logger                *log.Logger
	continueOnPageFailure bool
}

// NewClient creates a Client. An empty baseURL selects the production API;
// client and logger default to [http.DefaultClient] and a stderr logger.
func NewClient(baseURL string, client *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:               baseURL,
		httpClient:            client,
		logger:                logger,
		continueOnPageFailure: true,
	}
}

// FetchPlaylist retrieves a playlist's metadata and its full, paginated
// track collection, normalizing every item.
//
// A non-2xx response to the initial request fails with a [StatusError]
// classified by status and token provenance. Page requests after the first
// follow the continueOnPageFailure policy instead of failing the whole
// aggregation. Pagination is sequential: each page's URL is only known from
// the previous response.
func (c *Client) FetchPlaylist(ctx context.Context, id string, token AccessToken) (*models.Playlist, error) {
	var playlist Playlist
	status, body, err := c.get(ctx, c.baseURL+"/playlists/"+id, token, &playlist)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if status < 200 || status >= 300 {
		c.logger.Error("spotify API error", "status", status, "body", string(body))
		return nil, classifyStatus(status, token.Provenance)
	}

	tracks := NormalizeItems(playlist.Tracks.Items)

	next := playlist.Tracks.Next
	for next != nil {
		var page TrackPage
		status, body, err := c.get(ctx, *next, token, &page)
		if err != nil || status < 200 || status >= 300 {
			if !c.continueOnPageFailure {
				if err == nil {
					err = classifyStatus(status, token.Provenance)
				}
				return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
			c.logger.Error("spotify pagination error",
				"status", status, "url", *next, "error", err, "body", string(body))
			break
		}

		tracks = append(tracks, NormalizeItems(page.Items)...)
		next = page.Next
	}

	return &models.Playlist{Name: playlist.Name, Tracks: tracks}, nil
}

// get performs an authenticated GET and decodes a 2xx body into out. The raw
// body is returned alongside the status so that failures can be logged.
func (c *Client) get(ctx context.Context, url string, token AccessToken, out any) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Value)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, body, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, body, nil
}
