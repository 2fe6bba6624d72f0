// package models defines the normalized data model for the playlist aggregation service
package models

// Track is a playlist entry normalized from the raw Spotify API shape.
//
// Artist is a ", "-joined list of contributing artist names in insertion
// order. Year is the first four characters of the album release date, or
// empty when the date is absent. AlbumImageURL and ExternalURL are nil when
// the upstream record carries no image or open-in-app link.
//
// JSON field names match the aggregation endpoint's wire contract.
type Track struct {
	Title         string  `json:"track"`
	Artist        string  `json:"artist"`
	Album         string  `json:"album"`
	Year          string  `json:"year"`
	AlbumImageURL *string `json:"albumImage"`
	ExternalURL   *string `json:"trackUrl"`
}

// Playlist is the aggregated result of a playlist fetch.
//
// Tracks appear in upstream pagination order: page 1 items first, in-page
// order preserved. The aggregated value is treated as immutable once
// returned; sorting and filtering produce derived sequences and never
// reorder the canonical list.
type Playlist struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}
