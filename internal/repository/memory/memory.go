// Package memory is an in-process repository.Store used by tests.
//
// All state sits behind one mutex, so the email check and the insert in
// CreateUser happen atomically. That gives the same uniqueness guarantee the
// SQL stores get from their unique index.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/model"
	"github.com/sakif/event-booking/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	mu          sync.RWMutex
	users       map[string]model.User
	usersByMail map[string]string // email → user id
	events      []model.Event     // insertion order is creation order
}

func New() *Store {
	return &Store{
		users:       make(map[string]model.User),
		usersByMail: make(map[string]string),
	}
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByMail[user.Email]; taken {
		return apperror.DuplicateEmail(user.Email)
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	s.usersByMail[user.Email] = user.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByMail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) CreateEvent(ctx context.Context, event *model.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[event.CreatorID]; !ok {
		return apperror.UserNotFound(event.CreatorID)
	}

	event.ID = xid.New().String()
	event.CreatedAt = time.Now().UTC()

	stored := *event
	stored.Creator = nil
	s.events = append(s.events, stored)
	return nil
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		creator := s.users[e.CreatorID]
		e.Creator = &creator
		result = append(result, e)
	}
	return result, nil
}

func (s *Store) ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Event, 0)
	for _, e := range s.events {
		if e.CreatorID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}
