package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/metrics"
)

// Error is what resolvers hand to the GraphQL engine. The engine copies
// Extensions() into the response, giving clients a stable "code" next to the
// human-readable message.
type Error struct {
	Code    string
	Message string
	Field   string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

// toGraphQLError converts a service error for the API boundary. Errors
// outside the taxonomy become INTERNAL with a generic message and are logged
// in full.
func (r *Resolver) toGraphQLError(ctx context.Context, operation string, err error) error {
	code := apperror.Code(err)
	metrics.APIErrorsTotal.WithLabelValues(code).Inc()

	out := &Error{Code: code, Message: apperror.Message(err)}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		out.Field = appErr.Field
	}

	if code == apperror.CodeInternal {
		r.logger.ErrorContext(ctx, "resolver failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	} else {
		r.logger.DebugContext(ctx, "resolver returned domain error",
			slog.String("operation", operation),
			slog.String("code", code),
		)
	}
	return out
}
