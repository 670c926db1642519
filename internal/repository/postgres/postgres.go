// Package postgres implements repository.Store on PostgreSQL through a pgx
// connection pool. Schema changes live in migrations/ and are applied with
// golang-migrate (see migrate.go).
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/event-booking/internal/repository"
)

var _ repository.Store = (*DB)(nil)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	usersEmailConstraint = "users_email_key"
)

type DB struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and verifies the connection. It does not run
// migrations; call MigrateUp first.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	const op = "postgres.New"

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres.Ping: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
