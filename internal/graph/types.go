package graph

import (
	"context"
	"fmt"
	"math"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/sakif/event-booking/internal/model"
)

type eventResolver struct {
	event model.Event
	root  *Resolver
}

// ID serves both Event.id and Event._id.
func (e *eventResolver) ID() graphql.ID { return graphql.ID(e.event.ID) }

func (e *eventResolver) Title() string       { return e.event.Title }
func (e *eventResolver) Description() string { return e.event.Description }
func (e *eventResolver) Price() float64      { return e.event.Price }

func (e *eventResolver) Date() string {
	return e.event.Date.UTC().Format(time.RFC3339)
}

func (e *eventResolver) Creator(ctx context.Context) (*userResolver, error) {
	if e.event.Creator == nil {
		return nil, e.root.toGraphQLError(ctx, "Event.creator",
			fmt.Errorf("event %s loaded without its creator", e.event.ID))
	}
	return &userResolver{user: *e.event.Creator, root: e.root}, nil
}

type userResolver struct {
	user model.User
	root *Resolver
}

// ID serves both User.id and User._id.
func (u *userResolver) ID() graphql.ID { return graphql.ID(u.user.ID) }

func (u *userResolver) FirstName() string { return u.user.FirstName }
func (u *userResolver) LastName() string  { return u.user.LastName }
func (u *userResolver) Email() string     { return u.user.Email }

// Password is always null.
func (u *userResolver) Password() *string { return nil }

// Phone is capped at the GraphQL Int range. Registration through the API
// can only store values within it.
func (u *userResolver) Phone() int32 {
	if u.user.Phone > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(u.user.Phone)
}

// CreatedEvents is derived from the events store on every read.
func (u *userResolver) CreatedEvents(ctx context.Context) ([]*eventResolver, error) {
	events, err := u.root.events.ListByCreator(ctx, u.user.ID)
	if err != nil {
		return nil, u.root.toGraphQLError(ctx, "User.createdEvents", err)
	}

	creator := u.user.Public()
	out := make([]*eventResolver, len(events))
	for i := range events {
		events[i].Creator = &creator
		out[i] = &eventResolver{event: events[i], root: u.root}
	}
	return out, nil
}
