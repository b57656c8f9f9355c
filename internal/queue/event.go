// Package queue defines the listing events exchanged over the message
// broker and the consumer that records them.
package queue

import "time"

// ListingQueue is the durable queue every listing event is routed to.
const ListingQueue = "fyyur.listings"

// Event types published after a write commits.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ArtistDeleted = "artist.deleted"
	ShowCreated   = "show.created"
)

// ListingEvent describes one committed change to a venue, artist or show.
// Name is empty for deletions and shows.
type ListingEvent struct {
	Type       string `json:"type"`
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	VenueID    int64  `json:"venue_id,omitempty"`
	ArtistID   int64  `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent stamps an event with at, formatted in UTC.
func NewListingEvent(eventType string, id int64, name string, at time.Time) ListingEvent {
	return ListingEvent{
		Type:       eventType,
		ID:         id,
		Name:       name,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
