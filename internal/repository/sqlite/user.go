package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/model"
	"github.com/sakif/event-booking/internal/repository"
)

// compile-time check that *DB implements the whole gateway
var _ repository.Store = (*DB)(nil)

// CreateUser inserts a new user row.
//
// There is no SELECT-then-INSERT here. Two concurrent registrations for the
// same email both reach the INSERT, and the UNIQUE index on users.email
// rejects the second one. That rejection is what guarantees uniqueness; any
// lookup the service does beforehand is only a fast path.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, phone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Phone,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return apperror.DuplicateEmail(user.Email)
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return nil
}

// GetUserByID returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, phone, created_at
		 FROM users WHERE id = ?`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail expects an already normalized email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, phone, created_at
		 FROM users WHERE email = ?`,
		email,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		u         model.User
		createdAt int64
	)
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}
