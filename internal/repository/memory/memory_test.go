package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/model"
)

func createUser(t *testing.T, s *Store, email string) *model.User {
	t.Helper()
	u := &model.User{FirstName: "Ann", LastName: "Lee", Email: email, PasswordHash: "h", Phone: 5551234}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := New()
	createUser(t, s, "ann@example.com")

	err := s.CreateUser(context.Background(), &model.User{Email: "ann@example.com"})
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Fatalf("CreateUser() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	s := New()

	const n = 16
	results := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = s.CreateUser(context.Background(), &model.User{
				FirstName: fmt.Sprintf("u%d", i),
				Email:     "race@example.com",
			})
			return nil
		})
	}
	_ = g.Wait()

	var ok, dup int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperror.ErrDuplicateEmail):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Errorf("successes = %d, duplicates = %d; want 1 and %d", ok, dup, n-1)
	}
}

func TestCreateEvent_UnknownCreator(t *testing.T) {
	s := New()

	err := s.CreateEvent(context.Background(), &model.Event{Title: "x", CreatorID: "missing"})
	if !errors.Is(err, apperror.ErrUserNotFound) {
		t.Fatalf("CreateEvent() error = %v, want ErrUserNotFound", err)
	}

	events, _ := s.ListEvents(context.Background())
	if len(events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(events))
	}
}

func TestListEvents_ExpandsCreatorInOrder(t *testing.T) {
	s := New()
	ann := createUser(t, s, "ann@example.com")
	bob := createUser(t, s, "bob@example.com")

	for i, creator := range []*model.User{ann, bob, ann} {
		e := &model.Event{Title: fmt.Sprintf("e%d", i), CreatorID: creator.ID}
		if err := s.CreateEvent(context.Background(), e); err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
	}

	events, err := s.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	for i, e := range events {
		if e.Title != fmt.Sprintf("e%d", i) {
			t.Errorf("events[%d].Title = %q", i, e.Title)
		}
		if e.Creator == nil || e.Creator.ID != e.CreatorID {
			t.Errorf("events[%d].Creator not expanded", i)
		}
	}

	mine, err := s.ListEventsByCreator(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("ListEventsByCreator() error = %v", err)
	}
	if len(mine) != 2 || mine[0].Title != "e0" || mine[1].Title != "e2" {
		t.Errorf("ListEventsByCreator() = %+v", mine)
	}
}

func TestCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ListEvents(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ListEvents() error = %v, want context.Canceled", err)
	}
}
