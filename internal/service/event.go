package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/metrics"
	"github.com/sakif/event-booking/internal/model"
	"github.com/sakif/event-booking/internal/repository"
)

// Validation limits for event input.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// CreateEventInput carries event data as the caller sent it. Price and Date
// stay strings here; Create parses and validates them.
type CreateEventInput struct {
	Title       string
	Description string
	Price       string
	Date        string
}

// EventService handles event creation and listing.
type EventService struct {
	events  repository.EventRepository
	users   repository.UserRepository
	timeout time.Duration
	logger  *slog.Logger
}

func NewEventService(events repository.EventRepository, users repository.UserRepository, timeout time.Duration, logger *slog.Logger) *EventService {
	return &EventService{
		events:  events,
		users:   users,
		timeout: timeout,
		logger:  logger,
	}
}

// Create validates the input, resolves the acting user and stores the event.
//
// This is a single write. The creator's createdEvents list is not updated
// because it does not exist as stored data: ListByCreator derives it.
func (s *EventService) Create(ctx context.Context, actingUserID string, in CreateEventInput) (*model.Event, error) {
	event, err := buildEvent(in)
	if err != nil {
		return nil, err
	}

	actingUserID = strings.TrimSpace(actingUserID)
	if actingUserID == "" {
		return nil, apperror.Unauthorized("an authenticated user is required to create events")
	}

	creator, err := s.lookupUser(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	event.CreatorID = creator.ID

	storeCtx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	if err := s.events.CreateEvent(storeCtx, event); err != nil {
		return nil, storeError(s.logger, "create event", err)
	}

	public := creator.Public()
	event.Creator = &public

	metrics.EventsCreatedTotal.Inc()
	s.logger.Info("event created",
		slog.String("id", event.ID),
		slog.String("title", event.Title),
		slog.String("creator_id", event.CreatorID),
	)

	return event, nil
}

// List returns every event with its creator, oldest first.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	storeCtx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	events, err := s.events.ListEvents(storeCtx)
	if err != nil {
		return nil, storeError(s.logger, "list events", err)
	}
	for i := range events {
		if events[i].Creator != nil {
			public := events[i].Creator.Public()
			events[i].Creator = &public
		}
	}
	return events, nil
}

// ListByCreator returns the events created by userID, oldest first.
// An unknown user simply has no events.
func (s *EventService) ListByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	storeCtx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	events, err := s.events.ListEventsByCreator(storeCtx, userID)
	if err != nil {
		return nil, storeError(s.logger, "list events by creator", err)
	}
	return events, nil
}

func (s *EventService) lookupUser(ctx context.Context, id string) (*model.User, error) {
	storeCtx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetUserByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.UserNotFound(id)
		}
		return nil, storeError(s.logger, "look up user", err)
	}
	return user, nil
}

func buildEvent(in CreateEventInput) (*model.Event, error) {
	title := strings.TrimSpace(in.Title)
	if err := requireText("title", title, MaxTitleLength); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if err := requireText("description", description, MaxDescriptionLength); err != nil {
		return nil, err
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	return &model.Event{
		Title:       title,
		Description: description,
		Price:       price,
		Date:        date,
	}, nil
}
