package model

import "time"

// Show represents one artist performing at one venue at a given time.
// A show is owned by both parents and is deleted with either of them.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
//  StartTime – when the show begins, always UTC.
type Show struct {
	ID        int64     `json:"id"`         // shows.id
	VenueID   int64     `json:"venue_id"`   // shows.venue_id
	ArtistID  int64     `json:"artist_id"`  // shows.artist_id
	StartTime time.Time `json:"start_time"` // shows.start_time (unix millis)
}

// ShowInput carries the fields needed to schedule a show. A zero StartTime
// means "now" according to the repository clock.
type ShowInput struct {
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowListing is a show joined with the display fields of both parents.
type ShowListing struct {
	Show
	VenueName       string `json:"venue_name"`
	VenueImageLink  string `json:"venue_image_link"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
}
