package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekysel/tracklist/internal/shared"
	tu "github.com/ekysel/tracklist/internal/testing"
)

func playlistPayload(name string, next *string, titles ...string) map[string]any {
	items := make([]map[string]any, len(titles))
	for i, title := range titles {
		items[i] = map[string]any{
			"track": map[string]any{
				"name":    title,
				"artists": []map[string]any{{"name": "Artist " + title}},
				"album": map[string]any{
					"name":         "Album " + title,
					"release_date": "2021-06-15",
				},
			},
		}
	}
	return map[string]any{
		"name": name,
		"tracks": map[string]any{
			"items": items,
			"next":  next,
		},
	}
}

func pagePayload(next *string, titles ...string) map[string]any {
	items := make([]map[string]any, len(titles))
	for i, title := range titles {
		items[i] = map[string]any{
			"track": map[string]any{
				"name":    title,
				"artists": []map[string]any{{"name": "Artist " + title}},
				"album":   map[string]any{"name": "Album " + title},
			},
		}
	}
	return map[string]any{"items": items, "next": next}
}

func TestFetchPlaylist(t *testing.T) {
	token := AccessToken{Value: "test_token", Provenance: ClientToken}

	t.Run("Single Page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test_token" {
				t.Errorf("expected bearer header, got %q", got)
			}
			json.NewEncoder(w).Encode(playlistPayload("Chill Mix", nil, "One", "Two"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client(), nil)

		playlist, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if playlist.Name != "Chill Mix" {
			t.Errorf("expected playlist name 'Chill Mix', got %q", playlist.Name)
		}
		if len(playlist.Tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(playlist.Tracks))
		}
		if playlist.Tracks[0].Title != "One" || playlist.Tracks[1].Title != "Two" {
			t.Errorf("unexpected track order: %q, %q", playlist.Tracks[0].Title, playlist.Tracks[1].Title)
		}
	})

	t.Run("Follows Pagination In Order", func(t *testing.T) {
		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/playlists/abc123", func(w http.ResponseWriter, r *http.Request) {
			next := srv.URL + "/page2"
			json.NewEncoder(w).Encode(playlistPayload("Long Mix", &next, "One", "Two"))
		})
		mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
			next := srv.URL + "/page3"
			json.NewEncoder(w).Encode(pagePayload(&next, "Three"))
		})
		mux.HandleFunc("/page3", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(pagePayload(nil, "Four", "Five"))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client(), nil)

		playlist, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"One", "Two", "Three", "Four", "Five"}
		if len(playlist.Tracks) != len(want) {
			t.Fatalf("expected %d tracks, got %d", len(want), len(playlist.Tracks))
		}
		for i, title := range want {
			if playlist.Tracks[i].Title != title {
				t.Errorf("track %d: expected %q, got %q", i, title, playlist.Tracks[i].Title)
			}
		}
	})

	t.Run("Page Failure Returns Partial Result", func(t *testing.T) {
		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/playlists/abc123", func(w http.ResponseWriter, r *http.Request) {
			next := srv.URL + "/page2"
			json.NewEncoder(w).Encode(playlistPayload("Flaky Mix", &next, "One", "Two"))
		})
		mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"status":500}}`)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client(), nil)

		playlist, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if err != nil {
			t.Fatalf("expected partial success, got error %v", err)
		}

		if len(playlist.Tracks) != 2 {
			t.Errorf("expected the 2 tracks from the first page, got %d", len(playlist.Tracks))
		}
	})

	t.Run("First Request Failure Is Fatal", func(t *testing.T) {
		cases := []struct {
			name       string
			status     int
			provenance Provenance
			message    string
		}{
			{"401 User Token", 401, UserToken, "user token invalid or expired, please login again"},
			{"401 Client Token", 401, ClientToken, "client token invalid, try again later"},
			{"403 Client Token", 403, ClientToken, "private playlist — login with Spotify to access it"},
			{"403 User Token", 403, UserToken, "not authorized (missing scope or no access to playlist)"},
			{"404 Any Token", 404, ClientToken, "failed to fetch playlist"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
					fmt.Fprint(w, `{"error":{"message":"upstream detail"}}`)
				}))
				defer srv.Close()

				client := NewClient(srv.URL, srv.Client(), nil)

				_, err := client.FetchPlaylist(context.Background(), "abc123", AccessToken{Value: "x", Provenance: tc.provenance})
				if err == nil {
					t.Fatal("expected an error")
				}

				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected StatusError, got %T", err)
				}
				if statusErr.Status != tc.status {
					t.Errorf("expected status %d, got %d", tc.status, statusErr.Status)
				}
				if statusErr.Message != tc.message {
					t.Errorf("expected message %q, got %q", tc.message, statusErr.Message)
				}
			})
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", nil, nil)

		_, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Round Trip Error", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(nil, errors.New("connection reset"))
		client := NewClient("http://api.test", &http.Client{Transport: rt}, nil)

		_, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Body Read Failure", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
		client := NewClient("http://api.test", &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}, nil)

		_, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Mocked Upstream Error Response", func(t *testing.T) {
		resp := tu.JSONResponse(http.StatusInternalServerError, `{"error":{"status":500}}`)
		client := NewClient("http://api.test", &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}, nil)

		_, err := client.FetchPlaylist(context.Background(), "abc123", token)

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if statusErr.Status != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", statusErr.Status)
		}
	})

	t.Run("Null Track Entries Are Dropped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"name": "Sparse Mix",
				"tracks": {
					"items": [
						{"track": null},
						{"track": {"name": "Kept", "artists": [{"name": "A"}], "album": {"name": "B"}}}
					],
					"next": null
				}
			}`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client(), nil)

		playlist, err := client.FetchPlaylist(context.Background(), "abc123", token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(playlist.Tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(playlist.Tracks))
		}
		if playlist.Tracks[0].Title != "Kept" {
			t.Errorf("expected the non-null track, got %q", playlist.Tracks[0].Title)
		}
	})
}
