package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB couples a connection pool with the dialect its queries must be
// written for.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Options selects the engine and where to find it. Path is only used by
// SQLite; the network fields are ignored there.
type Options struct {
	Driver string
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string
	Path   string
}

// DSN builds the driver specific connection string.
func (o Options) DSN(d Dialect) string {
	switch d {
	case Postgres:
		port := o.Port
		if port == "" {
			port = "5432"
		}
		auth := o.User
		if o.Pass != "" {
			auth = fmt.Sprintf("%s:%s", o.User, o.Pass)
		}
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable", auth, o.Host, port, o.Name)
	case SQLite:
		// Immediate transactions take the write lock at BEGIN, so a writer
		// waits on busy_timeout instead of failing its read-to-write upgrade.
		return filepath.Clean(o.Path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	default:
		port := o.Port
		if port == "" {
			port = "3306"
		}
		auth := o.User
		if o.Pass != "" {
			auth = fmt.Sprintf("%s:%s", o.User, o.Pass)
		}
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&loc=UTC", auth, o.Host, port, o.Name)
	}
}

// Open connects to the configured engine, verifies the connection and
// applies the embedded schema migrations.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}
	if dialect == SQLite {
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		if dir := filepath.Dir(opts.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open(dialect.DriverName(), opts.DSN(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}

	// Pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	db := &DB{DB: sqlDB, Dialect: dialect}
	if err := db.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Close closes the pool. A nil DB is a no-op.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}
