package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/model"
)

// CreateEvent inserts one event row. This is the only write of createEvent:
// the creator's list of events is read back from creator_id, never stored.
func (db *DB) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = xid.New().String()
	event.CreatedAt = now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO events (id, title, description, price, starts_at, creator_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Title,
		event.Description,
		event.Price,
		toMillis(event.Date),
		event.CreatorID,
		toMillis(event.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.UserNotFound(event.CreatorID)
		}
		return fmt.Errorf("sqlite: inserting event: %w", err)
	}

	return nil
}

// ListEvents returns all events joined with their creator, oldest first.
// The JOIN resolves creators in one query instead of one lookup per event.
func (db *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT e.id, e.title, e.description, e.price, e.starts_at, e.creator_id, e.created_at,
		        u.id, u.first_name, u.last_name, u.email, u.phone, u.created_at
		 FROM events e
		 JOIN users u ON u.id = e.creator_id
		 ORDER BY e.created_at ASC, e.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var (
			e                 model.Event
			u                 model.User
			startsAt, created int64
			userCreated       int64
		)
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Price, &startsAt, &e.CreatorID, &created,
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &userCreated,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning event row: %w", err)
		}
		e.Date = fromMillis(startsAt)
		e.CreatedAt = fromMillis(created)
		u.CreatedAt = fromMillis(userCreated)
		e.Creator = &u
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating event rows: %w", err)
	}

	return events, nil
}

// ListEventsByCreator is the derived createdEvents back-reference.
func (db *DB) ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, price, starts_at, creator_id, created_at
		 FROM events
		 WHERE creator_id = ?
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events for %s: %w", userID, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	events := make([]model.Event, 0)
	for rows.Next() {
		var (
			e                 model.Event
			startsAt, created int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Price, &startsAt, &e.CreatorID, &created); err != nil {
			return nil, fmt.Errorf("sqlite: scanning event row: %w", err)
		}
		e.Date = fromMillis(startsAt)
		e.CreatedAt = fromMillis(created)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating event rows: %w", err)
	}
	return events, nil
}
