// package formatter exports an aggregated playlist to CSV and plain text,
// with per-track web search links for lyrics and video lookups.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/ekysel/tracklist/internal/models"
)

const lyricsSites = "lyrics site:genius.com OR site:azlyrics.com OR site:musixmatch.com"

// searchURL builds a Google search link for the given query.
func searchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeFilename lowercases the playlist name and collapses runs of
// non-alphanumeric characters to single hyphens, trimming any at the edges.
func SanitizeFilename(name string) string {
	return strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func orUnknown(value, field string) string {
	if value == "" {
		return "unknown " + field
	}
	return value
}

// ExportToCSV converts a playlist to CSV with columns Track, Artist, Album,
// Year, Lyrics, YouTube, Color Coded, Fandom. The last four columns are
// search links derived from the track title and artist.
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Track", "Artist", "Album", "Year", "Lyrics", "YouTube", "Color Coded", "Fandom"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range playlist.Tracks {
		title := orUnknown(track.Title, "track")
		artist := orUnknown(track.Artist, "artist")
		base := title + " " + artist

		record := []string{
			title,
			artist,
			orUnknown(track.Album, "album"),
			orUnknown(track.Year, "year"),
			searchURL(base + " " + lyricsSites),
			searchURL(base + " site:youtube.com"),
			searchURL(base + " color coded lyrics"),
			searchURL(base + " lyrics site:fandom.com"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to a plain text listing.
func ExportToText(playlist *models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(playlist.Tracks)))

	for i, track := range playlist.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
		if track.Album != "" {
			buf.WriteString(fmt.Sprintf("   Album: %s", track.Album))
			if track.Year != "" {
				buf.WriteString(fmt.Sprintf(" (%s)", track.Year))
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes()
}

// WriteCSVExport writes the CSV export to path. An empty path defaults to
// the sanitized playlist name with a .csv extension. Returns the path
// written.
func WriteCSVExport(playlist *models.Playlist, path string) (string, error) {
	if path == "" {
		name := SanitizeFilename(playlist.Name)
		if name == "" {
			name = "playlist"
		}
		path = name + ".csv"
	}

	data, err := ExportToCSV(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
