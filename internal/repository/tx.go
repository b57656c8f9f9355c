package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/Timmy-id/fyyur/internal/database"
)

// withTx runs fn inside a transaction. The transaction is committed when fn
// succeeds and rolled back on every other path; the returned error is
// always classified.
func withTx(ctx context.Context, db *database.DB, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return persistence(op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return classify(op, err)
	}
	if err = tx.Commit(); err != nil {
		return classify(op, err)
	}
	return nil
}

// exists reports whether table has a row with the given id.
func exists(ctx context.Context, db *database.DB, q database.Querier, table string, id int64) (bool, error) {
	var found int
	err := q.QueryRowContext(ctx, db.Dialect.Rebind("SELECT 1 FROM "+table+" WHERE id = ?"), id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// nameTaken reports whether another row of table already uses name.
// excludeID is the row being updated, or 0 on create.
func nameTaken(ctx context.Context, db *database.DB, q database.Querier, table, name string, excludeID int64) (bool, error) {
	var found int
	err := q.QueryRowContext(ctx,
		db.Dialect.Rebind("SELECT 1 FROM "+table+" WHERE name = ? AND id <> ?"), name, excludeID,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeGenres(raw string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
