package projection

import (
	"time"

	"github.com/Timmy-id/fyyur/internal/model"
)

// VenueShow is a show as listed on a venue's page; the counterpart is the
// artist.
type VenueShow struct {
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ArtistShow is a show as listed on an artist's page; the counterpart is
// the venue.
type ArtistShow struct {
	VenueID        int64  `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

func FormatVenueShow(s model.ShowListing) VenueShow {
	return VenueShow{
		ArtistID:        s.ArtistID,
		ArtistName:      s.ArtistName,
		ArtistImageLink: s.ArtistImageLink,
		StartTime:       FormatTime(s.StartTime),
	}
}

func FormatArtistShow(s model.ShowListing) ArtistShow {
	return ArtistShow{
		VenueID:        s.VenueID,
		VenueName:      s.VenueName,
		VenueImageLink: s.VenueImageLink,
		StartTime:      FormatTime(s.StartTime),
	}
}

// VenueDetail is the venue page: the venue itself plus its shows split
// around the reference time.
type VenueDetail struct {
	model.Venue
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	model.Artist
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

func BuildVenueDetail(v model.Venue, shows []model.ShowListing, ref time.Time) VenueDetail {
	past, upcoming := PartitionShows(shows, ref)
	d := VenueDetail{
		Venue:              v,
		PastShows:          mapShows(past, FormatVenueShow),
		UpcomingShows:      mapShows(upcoming, FormatVenueShow),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	return d
}

func BuildArtistDetail(a model.Artist, shows []model.ShowListing, ref time.Time) ArtistDetail {
	past, upcoming := PartitionShows(shows, ref)
	return ArtistDetail{
		Artist:             a,
		PastShows:          mapShows(past, FormatArtistShow),
		UpcomingShows:      mapShows(upcoming, FormatArtistShow),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

func mapShows[T any](shows []model.ShowListing, f func(model.ShowListing) T) []T {
	out := make([]T, 0, len(shows))
	for _, s := range shows {
		out = append(out, f(s))
	}
	return out
}

// Area is one city/state block of the venues page.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// BuildAreas turns grouped venues into the venues page, keeping group order.
func BuildAreas(groups []model.CityGroup, showsByID map[int64][]model.ShowListing, ref time.Time) []Area {
	out := make([]Area, 0, len(groups))
	for _, g := range groups {
		out = append(out, Area{
			City:   g.City,
			State:  g.State,
			Venues: WithShowCounts(g.Venues, showsByID, ref),
		})
	}
	return out
}

// ShowRow is one line of the shows page.
type ShowRow struct {
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

func FormatShowRows(shows []model.ShowListing) []ShowRow {
	return mapShows(shows, func(s model.ShowListing) ShowRow {
		return ShowRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       FormatTime(s.StartTime),
		}
	})
}

// Home is the landing page: the most recently listed venues and artists.
type Home struct {
	RecentVenues  []Summary `json:"recent_venues"`
	RecentArtists []Summary `json:"recent_artists"`
}

func BuildHome(venues []model.Venue, artists []model.Artist, venueShows, artistShows map[int64][]model.ShowListing, ref time.Time) Home {
	return Home{
		RecentVenues:  WithShowCounts(venues, venueShows, ref),
		RecentArtists: WithShowCounts(artists, artistShows, ref),
	}
}
