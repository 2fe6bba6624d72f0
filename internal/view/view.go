// package view derives presentation-time orderings of an aggregated track
// list.
//
// All functions are pure: sorting and filtering return new sequences
// computed from (tracks, sort mode, search query) and never reorder the
// canonical track list.
package view

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ekysel/tracklist/internal/models"
	"github.com/ekysel/tracklist/internal/shared"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the field and direction a derived track sequence is
// ordered by.
type SortMode int

const (
	SortDefault SortMode = iota // upstream pagination order
	SortArtistAsc
	SortArtistDesc
	SortTrackAsc
	SortTrackDesc
)

const sortModeCount = 5

func (m SortMode) String() string {
	switch m {
	case SortArtistAsc:
		return "artist ascending"
	case SortArtistDesc:
		return "artist descending"
	case SortTrackAsc:
		return "track ascending"
	case SortTrackDesc:
		return "track descending"
	default:
		return "default"
	}
}

// Next cycles to the following sort mode, wrapping back to SortDefault.
func (m SortMode) Next() SortMode {
	return (m + 1) % sortModeCount
}

// ParseSortMode parses the CLI flag form of a sort mode.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SortDefault, nil
	case "artist", "artist-asc":
		return SortArtistAsc, nil
	case "artist-desc":
		return SortArtistDesc, nil
	case "track", "track-asc":
		return SortTrackAsc, nil
	case "track-desc":
		return SortTrackDesc, nil
	default:
		return SortDefault, fmt.Errorf("%w: unknown sort mode %q", shared.ErrInvalidFlag, s)
	}
}

// State is the ephemeral view state. It resets to the zero value whenever a
// new playlist is loaded; derived sequences are recomputed from it
// deterministically.
type State struct {
	Sort  SortMode
	Query string
}

// Apply returns the derived track sequence for the given state. Sort runs
// before the search filter.
func Apply(tracks []models.Track, state State) []models.Track {
	return Filter(Sort(tracks, state.Sort), state.Query)
}

// Sort returns a stably sorted copy of tracks. SortDefault returns the
// input unchanged. Comparison is locale-aware lexicographic on the selected
// field; ties keep their original relative order.
func Sort(tracks []models.Track, mode SortMode) []models.Track {
	if mode == SortDefault {
		return tracks
	}

	key := func(t models.Track) string { return t.Artist }
	if mode == SortTrackAsc || mode == SortTrackDesc {
		key = func(t models.Track) string { return t.Title }
	}
	descending := mode == SortArtistDesc || mode == SortTrackDesc

	collator := collate.New(language.Und)
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, func(a, b models.Track) int {
		result := collator.CompareString(key(a), key(b))
		if descending {
			result = -result
		}
		return result
	})

	return sorted
}

// Filter returns the tracks whose normalized title/artist/album haystack
// contains every usable token of the query as a substring. A query reducing
// to zero usable tokens matches everything.
func Filter(tracks []models.Track, query string) []models.Track {
	tokens := searchTokens(query)
	if len(tokens) == 0 {
		return tracks
	}

	return lo.Filter(tracks, func(t models.Track, _ int) bool {
		haystack := normalizeText(t.Title + " " + t.Artist + " " + t.Album)
		for _, token := range tokens {
			if !strings.Contains(haystack, token) {
				return false
			}
		}
		return true
	})
}

var punctuation = strings.NewReplacer(
	"(", "", ")", "", "-", "", "–", "", "—", "", ".", "", ",", "",
)

// normalizeText lowercases, strips punctuation, and collapses runs of
// whitespace to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(punctuation.Replace(strings.ToLower(s))), " ")
}

// searchTokens splits the normalized query on whitespace, discarding
// single-character noise tokens.
func searchTokens(query string) []string {
	var tokens []string
	for _, token := range strings.Fields(normalizeText(query)) {
		if utf8.RuneCountInString(token) > 1 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
