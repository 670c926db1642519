// Package graph exposes the booking services as a GraphQL schema.
//
// The schema lives in schema.graphql and is bound to Go resolvers with
// graph-gophers/graphql-go. Resolvers stay thin: they translate arguments
// into service inputs, pick the acting user from the request context and
// convert service errors into GraphQL errors carrying a stable code.
package graph

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/sakif/event-booking/internal/model"
	"github.com/sakif/event-booking/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// DefaultMaxDepth bounds query nesting. Event.creator and User.createdEvents
// point at each other, so an unbounded query could fan out indefinitely.
const DefaultMaxDepth = 10

// UserCreator is the part of service.UserService the API needs.
type UserCreator interface {
	Create(ctx context.Context, in service.CreateUserInput) (*model.User, error)
}

// EventManager is the part of service.EventService the API needs.
type EventManager interface {
	Create(ctx context.Context, actingUserID string, in service.CreateEventInput) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	ListByCreator(ctx context.Context, userID string) ([]model.Event, error)
}

// Resolver is the root resolver for Query and Mutation.
type Resolver struct {
	users  UserCreator
	events EventManager
	logger *slog.Logger
}

func NewResolver(users UserCreator, events EventManager, logger *slog.Logger) *Resolver {
	return &Resolver{users: users, events: events, logger: logger}
}

// NewSchema parses the embedded SDL against a fresh Resolver. It fails if any
// schema field has no matching resolver method.
func NewSchema(users UserCreator, events EventManager, logger *slog.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, NewResolver(users, events, logger),
		graphql.MaxDepth(DefaultMaxDepth),
		graphql.Logger(panicLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics to slog. The engine recovers them and
// reports a generic error to the client.
type panicLogger struct {
	logger *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "graphql resolver panic", slog.Any("panic", value))
}
