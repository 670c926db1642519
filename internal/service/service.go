// Package service contains the business rules of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	API layer (graph resolvers) → parses requests, shapes responses
//	Service layer               → validates, enforces rules, orchestrates
//	Repository layer            → reads/writes the store
//
// Services accept plain Go values and return *model values or
// *apperror.AppError values. They never see HTTP or GraphQL types, and they
// depend on repository interfaces, so tests run against hand-written fakes
// or the in-memory store.
//
// PERSISTENCE CALLS:
// Every repository call runs under its own deadline (the store timeout).
// Failures that are not already domain errors are logged with their cause
// and replaced by apperror.Persistence, so raw driver messages never reach
// API clients.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/metrics"
)

// DefaultStoreTimeout bounds a single repository call when none is configured.
const DefaultStoreTimeout = 5 * time.Second

// storeContext derives the context for one repository call.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError passes domain errors through and converts anything else
// (driver errors, deadlines) into a PersistenceError after logging it.
func storeError(logger *slog.Logger, operation string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	attrs := []any{
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}
	if errors.Is(err, context.DeadlineExceeded) {
		attrs = append(attrs, slog.Bool("timeout", true))
	}
	logger.Error("store call failed", attrs...)
	metrics.StoreErrorsTotal.WithLabelValues(operation).Inc()

	return apperror.Persistence(operation)
}
