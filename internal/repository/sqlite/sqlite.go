// Package sqlite implements repository.Store on top of SQLite.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the binary builds without a C
// toolchain and cross-compiles like any other Go program.
//
// DATABASE/SQL OVERVIEW:
//   - sql.DB  : a connection pool (NOT a single connection!)
//   - sql.Row : a single result row
//   - sql.Rows: multiple result rows (must be closed!)
//
// TIMESTAMPS:
// Instants are stored as INTEGER unix milliseconds in UTC. That keeps ORDER BY
// cheap and avoids depending on the driver's DATETIME text format.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// DB wraps a sql.DB connection pool and implements repository.Store.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/events.db" → file-based database (persistent)
//   - ":memory:"       → in-memory database (tests)
//
// ONE CONNECTION:
// SQLite serializes writers anyway, and every ":memory:" connection is a
// separate empty database. Capping the pool at one connection keeps both
// cases correct, and the PRAGMAs below then apply to every statement.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers in other processes proceed during a write.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. events.creator_id relies on them.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable. Used by /healthz.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// migrate creates the schema. Every statement is idempotent, so it runs on
// each start.
func (db *DB) migrate() error {
	// email holds the already lower-cased address, so a plain UNIQUE index
	// gives case-insensitive uniqueness.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			phone         INTEGER NOT NULL,
			created_at    INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			price       REAL NOT NULL CHECK (price >= 0),
			starts_at   INTEGER NOT NULL,
			creator_id  TEXT NOT NULL REFERENCES users(id),
			created_at  INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_creator_id ON events(creator_id);
		CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// now is truncated to millisecond precision so the value handed back to the
// caller matches what a later read returns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column ("users.email").
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	if !strings.Contains(message, column) {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(message, "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
