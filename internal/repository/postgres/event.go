package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/xid"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/model"
)

func (db *DB) CreateEvent(ctx context.Context, event *model.Event) error {
	const op = "postgres.CreateEvent"

	event.ID = xid.New().String()
	event.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO events (id, title, description, price, starts_at, creator_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.Title, event.Description, event.Price, event.Date, event.CreatorID, event.CreatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == foreignKeyViolation {
			return apperror.UserNotFound(event.CreatorID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (db *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	const op = "postgres.ListEvents"

	rows, err := db.pool.Query(ctx,
		`SELECT e.id, e.title, e.description, e.price, e.starts_at, e.creator_id, e.created_at,
		        u.id, u.first_name, u.last_name, u.email, u.phone, u.created_at
		 FROM events e
		 JOIN users u ON u.id = e.creator_id
		 ORDER BY e.created_at ASC, e.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Event, error) {
		var (
			e model.Event
			u model.User
		)
		err := row.Scan(
			&e.ID, &e.Title, &e.Description, &e.Price, &e.Date, &e.CreatorID, &e.CreatedAt,
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.CreatedAt,
		)
		normalizeTimes(&e)
		u.CreatedAt = u.CreatedAt.UTC()
		e.Creator = &u
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (db *DB) ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	const op = "postgres.ListEventsByCreator"

	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, price, starts_at, creator_id, created_at
		 FROM events
		 WHERE creator_id = $1
		 ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Event, error) {
		var e model.Event
		err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Price, &e.Date, &e.CreatorID, &e.CreatedAt)
		normalizeTimes(&e)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func normalizeTimes(e *model.Event) {
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
}
