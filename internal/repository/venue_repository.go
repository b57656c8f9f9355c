// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository for venues: CRUD, free-text search and
// the city/state grouping used by the venues page.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website, genres, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *database.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *database.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func scanVenue(row interface{ Scan(...any) error }) (model.Venue, error) {
	var v model.Venue
	var genres string
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.FacebookLink, &v.Website, &genres, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return model.Venue{}, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return model.Venue{}, fmt.Errorf("decode genres of venue %d: %w", v.ID, err)
	}
	v.Genres = g
	return v, nil
}

func venueFromFields(id int64, f model.VenueFields) model.Venue {
	return model.Venue{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             f.Genres,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// Create inserts a new venue and returns it with its generated id. A name
// that is already taken is a validation error.
func (r *VenueRepo) Create(ctx context.Context, f model.VenueFields) (model.Venue, error) {
	const op = "venue.create"
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return model.Venue{}, fieldError(op, err)
	}
	genres, err := encodeGenres(f.Genres)
	if err != nil {
		return model.Venue{}, persistence(op, err)
	}

	var id int64
	err = withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		taken, err := nameTaken(ctx, r.db, tx, "venues", f.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return invalid(op, "name", "is already taken")
		}
		const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
			website, genres, seeking_talent, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		id, err = r.db.Dialect.InsertID(ctx, tx, q, f.Name, f.City, f.State, f.Address, f.Phone,
			f.ImageLink, f.FacebookLink, f.Website, genres, f.SeekingTalent, f.SeekingDescription)
		return err
	})
	if err != nil {
		return model.Venue{}, err
	}
	return venueFromFields(id, f), nil
}

// GetByID fetches a venue by its ID.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (model.Venue, error) {
	const op = "venue.get"
	q := r.db.Dialect.Rebind("SELECT " + venueColumns + " FROM venues WHERE id = ?")
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Venue{}, notFound(op, "venue", id)
		}
		return model.Venue{}, persistence(op, err)
	}
	return v, nil
}

// Update replaces every editable field of the venue. Existence is checked
// explicitly since MySQL reports zero affected rows for unchanged values.
func (r *VenueRepo) Update(ctx context.Context, id int64, f model.VenueFields) (model.Venue, error) {
	const op = "venue.update"
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return model.Venue{}, fieldError(op, err)
	}
	genres, err := encodeGenres(f.Genres)
	if err != nil {
		return model.Venue{}, persistence(op, err)
	}

	err = withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		ok, err := exists(ctx, r.db, tx, "venues", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(op, "venue", id)
		}
		taken, err := nameTaken(ctx, r.db, tx, "venues", f.Name, id)
		if err != nil {
			return err
		}
		if taken {
			return invalid(op, "name", "is already taken")
		}
		const q = `UPDATE venues SET name = ?, city = ?, state = ?, address = ?, phone = ?,
			image_link = ?, facebook_link = ?, website = ?, genres = ?, seeking_talent = ?,
			seeking_description = ? WHERE id = ?`
		_, err = tx.ExecContext(ctx, r.db.Dialect.Rebind(q), f.Name, f.City, f.State, f.Address, f.Phone,
			f.ImageLink, f.FacebookLink, f.Website, genres, f.SeekingTalent, f.SeekingDescription, id)
		return err
	})
	if err != nil {
		return model.Venue{}, err
	}
	return venueFromFields(id, f), nil
}

// Delete removes a venue and every show booked at it in one transaction.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
	const op = "venue.delete"
	return withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		ok, err := exists(ctx, r.db, tx, "venues", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(op, "venue", id)
		}
		if _, err := tx.ExecContext(ctx, r.db.Dialect.Rebind("DELETE FROM shows WHERE venue_id = ?"), id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, r.db.Dialect.Rebind("DELETE FROM venues WHERE id = ?"), id)
		return err
	})
}

// ListAll returns every venue ordered by id.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.list(ctx, "venue.list", "SELECT "+venueColumns+" FROM venues ORDER BY id")
}

// Search matches the term as a case-insensitive substring of the name, or
// as the exact city or state ignoring case. An empty term matches every
// venue.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE " + searchWhere + " ORDER BY id"
	return r.list(ctx, "venue.search", q, searchArgs(term)...)
}

// Recent returns up to limit venues, newest first.
func (r *VenueRepo) Recent(ctx context.Context, limit int) ([]model.Venue, error) {
	if limit <= 0 {
		return []model.Venue{}, nil
	}
	q := "SELECT " + venueColumns + " FROM venues ORDER BY id DESC LIMIT ?"
	return r.list(ctx, "venue.recent", q, limit)
}

// GroupByCityState returns each distinct (city, state) pair once, in the
// order the pair first appears by venue id, together with every venue at
// that exact pair.
func (r *VenueRepo) GroupByCityState(ctx context.Context) ([]model.CityGroup, error) {
	venues, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	type area struct{ city, state string }
	index := make(map[area]int)
	groups := []model.CityGroup{}
	for _, v := range venues {
		key := area{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.CityGroup{City: v.City, State: v.State})
		}
		groups[i].Venues = append(groups[i].Venues, v)
	}
	return groups, nil
}

func (r *VenueRepo) list(ctx context.Context, op, query string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, persistence(op, err)
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, persistence(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence(op, err)
	}
	return out, nil
}
