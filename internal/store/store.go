// Package store keeps the synced project cache and privacy-conscious visit
// metrics in a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/pingcap/errors"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// migrations run in order; PRAGMA user_version records how many applied.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		url TEXT,
		image_url TEXT,
		technologies TEXT NOT NULL DEFAULT '[]',
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sync_state (
		name TEXT PRIMARY KEY,
		synced_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,  -- never the raw address
		user_agent TEXT,
		path TEXT,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
}

// Open opens (creating if needed) the database at path and migrates it.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s", path)
	}
	// one connection: sqlite serialises writers anyway and an in-memory
	// database exists per connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		return errors.Annotate(err, "set busy timeout")
	}

	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return errors.Annotate(err, "read schema version")
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return errors.Annotatef(err, "migration %d", i+1)
		}
		// PRAGMA does not accept bound parameters
		if _, err := s.db.ExecContext(ctx, "PRAGMA user_version = "+strconv.Itoa(i+1)); err != nil {
			return errors.Annotate(err, "bump schema version")
		}
	}
	return nil
}
