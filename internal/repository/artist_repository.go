package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone, image_link, facebook_link,
	website, genres, seeking_venue, seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *database.DB
}

func NewArtistRepo(db *database.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(row interface{ Scan(...any) error }) (model.Artist, error) {
	var a model.Artist
	var genres string
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink,
		&a.FacebookLink, &a.Website, &genres, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return model.Artist{}, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return model.Artist{}, fmt.Errorf("decode genres of artist %d: %w", a.ID, err)
	}
	a.Genres = g
	return a, nil
}

func artistFromFields(id int64, f model.ArtistFields) model.Artist {
	return model.Artist{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             f.Genres,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// Create inserts a new artist. Names are unique among artists.
func (r *ArtistRepo) Create(ctx context.Context, f model.ArtistFields) (model.Artist, error) {
	const op = "artist.create"
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return model.Artist{}, fieldError(op, err)
	}
	genres, err := encodeGenres(f.Genres)
	if err != nil {
		return model.Artist{}, persistence(op, err)
	}

	var id int64
	err = withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		taken, err := nameTaken(ctx, r.db, tx, "artists", f.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return invalid(op, "name", "is already taken")
		}
		const q = `INSERT INTO artists (name, city, state, phone, image_link, facebook_link,
			website, genres, seeking_venue, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		id, err = r.db.Dialect.InsertID(ctx, tx, q, f.Name, f.City, f.State, f.Phone, f.ImageLink,
			f.FacebookLink, f.Website, genres, f.SeekingVenue, f.SeekingDescription)
		return err
	})
	if err != nil {
		return model.Artist{}, err
	}
	return artistFromFields(id, f), nil
}

func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (model.Artist, error) {
	const op = "artist.get"
	q := r.db.Dialect.Rebind("SELECT " + artistColumns + " FROM artists WHERE id = ?")
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Artist{}, notFound(op, "artist", id)
		}
		return model.Artist{}, persistence(op, err)
	}
	return a, nil
}

// Update replaces every editable field of the artist.
func (r *ArtistRepo) Update(ctx context.Context, id int64, f model.ArtistFields) (model.Artist, error) {
	const op = "artist.update"
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return model.Artist{}, fieldError(op, err)
	}
	genres, err := encodeGenres(f.Genres)
	if err != nil {
		return model.Artist{}, persistence(op, err)
	}

	err = withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		ok, err := exists(ctx, r.db, tx, "artists", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(op, "artist", id)
		}
		taken, err := nameTaken(ctx, r.db, tx, "artists", f.Name, id)
		if err != nil {
			return err
		}
		if taken {
			return invalid(op, "name", "is already taken")
		}
		const q = `UPDATE artists SET name = ?, city = ?, state = ?, phone = ?, image_link = ?,
			facebook_link = ?, website = ?, genres = ?, seeking_venue = ?, seeking_description = ?
			WHERE id = ?`
		_, err = tx.ExecContext(ctx, r.db.Dialect.Rebind(q), f.Name, f.City, f.State, f.Phone, f.ImageLink,
			f.FacebookLink, f.Website, genres, f.SeekingVenue, f.SeekingDescription, id)
		return err
	})
	if err != nil {
		return model.Artist{}, err
	}
	return artistFromFields(id, f), nil
}

// Delete removes an artist and every show it is booked into.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	const op = "artist.delete"
	return withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		ok, err := exists(ctx, r.db, tx, "artists", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(op, "artist", id)
		}
		if _, err := tx.ExecContext(ctx, r.db.Dialect.Rebind("DELETE FROM shows WHERE artist_id = ?"), id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, r.db.Dialect.Rebind("DELETE FROM artists WHERE id = ?"), id)
		return err
	})
}

func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.list(ctx, "artist.list", "SELECT "+artistColumns+" FROM artists ORDER BY id")
}

// Search uses the same predicate as VenueRepo.Search.
func (r *ArtistRepo) Search(ctx context.Context, term string) ([]model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE " + searchWhere + " ORDER BY id"
	return r.list(ctx, "artist.search", q, searchArgs(term)...)
}

// Recent returns up to limit artists, newest first.
func (r *ArtistRepo) Recent(ctx context.Context, limit int) ([]model.Artist, error) {
	if limit <= 0 {
		return []model.Artist{}, nil
	}
	q := "SELECT " + artistColumns + " FROM artists ORDER BY id DESC LIMIT ?"
	return r.list(ctx, "artist.recent", q, limit)
}

func (r *ArtistRepo) list(ctx context.Context, op, query string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, persistence(op, err)
	}
	defer rows.Close()

	out := []model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, persistence(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence(op, err)
	}
	return out, nil
}
