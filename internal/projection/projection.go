// Package projection shapes repository output into the structures the
// pages render: upcoming/past splits, show counts, search results and
// detail views. Every function is pure; nothing here touches storage, and
// the reference time is always passed in.
package projection

import (
	"errors"
	"strings"
	"time"

	"github.com/Timmy-id/fyyur/internal/model"
)

// TimeLayout is how start times are rendered.
const TimeLayout = "2006-01-02 15:04:05"

// ErrInvalidTimestamp is returned by ParseStartTime for malformed input.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

var inputLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04",
	time.RFC3339,
}

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseStartTime accepts "2006-01-02 15:04:05", "2006-01-02T15:04" or
// RFC 3339. Inputs without a zone are read as UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// PartitionShows splits shows into those that started before ref and those
// starting at or after it. Relative order is kept in both halves.
func PartitionShows(shows []model.ShowListing, ref time.Time) (past, upcoming []model.ShowListing) {
	past = []model.ShowListing{}
	upcoming = []model.ShowListing{}
	for _, s := range shows {
		if s.StartTime.Before(ref) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}

func countUpcoming(shows []model.ShowListing, ref time.Time) int {
	_, upcoming := PartitionShows(shows, ref)
	return len(upcoming)
}

// Listing is implemented by model.Venue and model.Artist.
type Listing interface {
	ListingID() int64
	ListingName() string
}

// Summary is the compact row used by search results and the venues page.
type Summary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// WithShowCounts pairs each entity with the number of its upcoming shows.
// Entities missing from showsByID have none.
func WithShowCounts[L Listing](entities []L, showsByID map[int64][]model.ShowListing, ref time.Time) []Summary {
	out := make([]Summary, 0, len(entities))
	for _, e := range entities {
		out = append(out, Summary{
			ID:               e.ListingID(),
			Name:             e.ListingName(),
			NumUpcomingShows: countUpcoming(showsByID[e.ListingID()], ref),
		})
	}
	return out
}

// SearchResponse is the body of the search endpoints.
type SearchResponse struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

func BuildSearchResponse[L Listing](matches []L, showsByID map[int64][]model.ShowListing, ref time.Time) SearchResponse {
	data := WithShowCounts(matches, showsByID, ref)
	return SearchResponse{Count: len(data), Data: data}
}
