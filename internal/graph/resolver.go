package graph

import (
	"context"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/auth"
	"github.com/sakif/event-booking/internal/service"
)

type eventInput struct {
	Title       string
	Description string
	Price       Decimal
	Date        string
}

type userInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     int32
}

// Events resolves Query.events.
func (r *Resolver) Events(ctx context.Context) ([]*eventResolver, error) {
	events, err := r.events.List(ctx)
	if err != nil {
		return nil, r.toGraphQLError(ctx, "events", err)
	}

	out := make([]*eventResolver, len(events))
	for i := range events {
		out[i] = &eventResolver{event: events[i], root: r}
	}
	return out, nil
}

// CreateEvent resolves Mutation.createEvent. The creator is the acting user
// carried in the request context, never a client-supplied argument.
func (r *Resolver) CreateEvent(ctx context.Context, args struct{ EventInput eventInput }) (*eventResolver, error) {
	actingUserID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, r.toGraphQLError(ctx, "createEvent",
			apperror.Unauthorized("an authenticated user is required to create events"))
	}

	in := args.EventInput
	event, err := r.events.Create(ctx, actingUserID, service.CreateEventInput{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price.Value,
		Date:        in.Date,
	})
	if err != nil {
		return nil, r.toGraphQLError(ctx, "createEvent", err)
	}
	return &eventResolver{event: *event, root: r}, nil
}

// CreateUser resolves Mutation.createUser.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ UserInput userInput }) (*userResolver, error) {
	in := args.UserInput
	user, err := r.users.Create(ctx, service.CreateUserInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Phone:     int64(in.Phone),
	})
	if err != nil {
		return nil, r.toGraphQLError(ctx, "createUser", err)
	}
	return &userResolver{user: *user, root: r}, nil
}
