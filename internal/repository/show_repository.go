// Package repository contains data access logic for Show domain operations.
// A show joins one artist to one venue at a start time; reads always come
// back joined with the display fields of both parents.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/model"
)

// NOTE: start_time is stored as unix milliseconds (UTC) so ordering and
// comparison behave the same on every dialect.
const showListingSelect = `SELECT s.id, s.venue_id, s.artist_id, s.start_time,
		v.name, v.image_link, a.name, a.image_link
	FROM shows s
	JOIN venues v  ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db  *database.DB
	now func() time.Time
}

// NewShowRepo constructs a ShowRepo. now supplies the default start time
// for shows created without one; nil means time.Now.
func NewShowRepo(db *database.DB, now func() time.Time) *ShowRepo {
	if now == nil {
		now = time.Now
	}
	return &ShowRepo{db: db, now: now}
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// Create schedules a show. Both the artist and the venue must exist;
// otherwise the result is a validation error.
func (r *ShowRepo) Create(ctx context.Context, in model.ShowInput) (model.Show, error) {
	const op = "show.create"
	start := in.StartTime
	if start.IsZero() {
		start = r.now()
	}
	startMs := toMillis(start)

	var id int64
	err := withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		ok, err := exists(ctx, r.db, tx, "venues", in.VenueID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid(op, "venue_id", "does not exist")
		}
		ok, err = exists(ctx, r.db, tx, "artists", in.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid(op, "artist_id", "does not exist")
		}
		const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
		id, err = r.db.Dialect.InsertID(ctx, tx, q, in.VenueID, in.ArtistID, startMs)
		return err
	})
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{ID: id, VenueID: in.VenueID, ArtistID: in.ArtistID, StartTime: fromMillis(startMs)}, nil
}

// ListAll returns every show ordered by start time, then id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.list(ctx, "show.list", showListingSelect+" ORDER BY s.start_time, s.id")
}

// ForVenue returns the shows booked at a venue.
func (r *ShowRepo) ForVenue(ctx context.Context, venueID int64) ([]model.ShowListing, error) {
	q := showListingSelect + " WHERE s.venue_id = ? ORDER BY s.start_time, s.id"
	return r.list(ctx, "show.for_venue", q, venueID)
}

// ForArtist returns the shows an artist is booked into.
func (r *ShowRepo) ForArtist(ctx context.Context, artistID int64) ([]model.ShowListing, error) {
	q := showListingSelect + " WHERE s.artist_id = ? ORDER BY s.start_time, s.id"
	return r.list(ctx, "show.for_artist", q, artistID)
}

// ForVenues loads the shows of several venues at once, keyed by venue id.
func (r *ShowRepo) ForVenues(ctx context.Context, ids []int64) (map[int64][]model.ShowListing, error) {
	return r.byParent(ctx, "show.for_venues", "s.venue_id", ids, func(s model.ShowListing) int64 { return s.VenueID })
}

// ForArtists loads the shows of several artists at once, keyed by artist id.
func (r *ShowRepo) ForArtists(ctx context.Context, ids []int64) (map[int64][]model.ShowListing, error) {
	return r.byParent(ctx, "show.for_artists", "s.artist_id", ids, func(s model.ShowListing) int64 { return s.ArtistID })
}

// parentBatch caps the ids bound into one IN list; MySQL rejects statements
// with more than 65535 placeholders.
const parentBatch = 500

func (r *ShowRepo) byParent(ctx context.Context, op, column string, ids []int64, key func(model.ShowListing) int64) (map[int64][]model.ShowListing, error) {
	out := make(map[int64][]model.ShowListing, len(ids))
	for start := 0; start < len(ids); start += parentBatch {
		batch := ids[start:min(start+parentBatch, len(ids))]
		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		q := showListingSelect + " WHERE " + column + " IN (" + database.Placeholders(len(batch)) + ") ORDER BY s.start_time, s.id"
		shows, err := r.list(ctx, op, q, args...)
		if err != nil {
			return nil, err
		}
		for _, s := range shows {
			k := key(s)
			out[k] = append(out[k], s)
		}
	}
	return out, nil
}

func (r *ShowRepo) list(ctx context.Context, op, query string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, persistence(op, err)
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var s model.ShowListing
		var startMs int64
		if err := rows.Scan(&s.ID, &s.VenueID, &s.ArtistID, &startMs,
			&s.VenueName, &s.VenueImageLink, &s.ArtistName, &s.ArtistImageLink); err != nil {
			return nil, persistence(op, err)
		}
		s.StartTime = fromMillis(startMs)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence(op, err)
	}
	return out, nil
}
