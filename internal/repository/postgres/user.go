package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/xid"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/model"
)

// CreateUser relies on users_email_key for uniqueness under concurrency.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	const op = "postgres.CreateUser"

	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, phone, created_at)
		 VALUES (@id, @firstName, @lastName, @email, @passwordHash, @phone, @createdAt)`,
		pgx.NamedArgs{
			"id":           user.ID,
			"firstName":    user.FirstName,
			"lastName":     user.LastName,
			"email":        user.Email,
			"passwordHash": user.PasswordHash,
			"phone":        user.Phone,
			"createdAt":    user.CreatedAt,
		},
	)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == uniqueViolation && constraint == usersEmailConstraint {
			return apperror.DuplicateEmail(user.Email)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	const op = "postgres.GetUserByID"

	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash, phone, created_at
		 FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const op = "postgres.GetUserByEmail"

	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash, phone, created_at
		 FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
