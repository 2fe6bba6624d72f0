package spotify

import (
	"strings"

	"github.com/ekysel/tracklist/internal/models"
	"github.com/samber/lo"
)

// Normalize maps a raw playlist item into the stable internal track shape.
//
// Returns nil when the item carries no nested track payload, which is how
// the API signals a removed or local track. Callers drop nil results.
func Normalize(item PlaylistItem) *models.Track {
	raw := item.Track
	if raw == nil {
		return nil
	}

	names := lo.Map(raw.Artists, func(a Artist, _ int) string { return a.Name })

	track := &models.Track{
		Title:         raw.Name,
		Artist:        strings.Join(names, ", "),
		Album:         raw.Album.Name,
		Year:          releaseYear(raw.Album.ReleaseDate),
		AlbumImageURL: albumImage(raw.Album.Images),
	}

	if raw.ExternalURLs.Spotify != "" {
		track.ExternalURL = &raw.ExternalURLs.Spotify
	}

	return track
}

// NormalizeItems normalizes a page of raw items, dropping entries without a
// track payload. In-page order is preserved.
func NormalizeItems(items []PlaylistItem) []models.Track {
	return lo.FilterMap(items, func(item PlaylistItem, _ int) (models.Track, bool) {
		track := Normalize(item)
		if track == nil {
			return models.Track{}, false
		}
		return *track, true
	})
}

// releaseYear takes the first four characters of the release date string.
// No validation beyond slicing.
func releaseYear(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

// albumImage prefers the third image (typically a small thumbnail, given the
// API's largest-to-smallest ordering), falling back to the last entry, then
// the first, then nil.
func albumImage(images []Image) *string {
	var url string
	switch {
	case len(images) > 2 && images[2].URL != "":
		url = images[2].URL
	case len(images) > 0 && images[len(images)-1].URL != "":
		url = images[len(images)-1].URL
	case len(images) > 0:
		url = images[0].URL
	}

	if url == "" {
		return nil
	}
	return &url
}
