// Package repository declares the persistence gateway used by the services.
//
// Each operation touches a single row, so implementations only need
// single-row atomicity. The one cross-row rule, email uniqueness, is
// enforced by the store itself (a unique index, or a mutex in memory).
package repository

import (
	"context"

	"github.com/sakif/event-booking/internal/model"
)

type UserRepository interface {
	// CreateUser assigns ID and CreatedAt. A taken email yields
	// apperror.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type EventRepository interface {
	// CreateEvent assigns ID and CreatedAt. The creator must exist.
	CreateEvent(ctx context.Context, event *model.Event) error
	// ListEvents returns every event with Creator populated, oldest first.
	ListEvents(ctx context.Context) ([]model.Event, error)
	// ListEventsByCreator returns the events created by userID, oldest first.
	ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error)
}

// Store is a complete persistence backend.
type Store interface {
	UserRepository
	EventRepository
	Ping(ctx context.Context) error
	Close() error
}
