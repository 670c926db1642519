package handler

// RESPONSE HELPERS:
// Every non-GraphQL response body goes through writeJSON, and every failure
// through writeError, so clients always see the same error shape:
//
//	{"errors": [{"message": "...", "extensions": {"code": "VALIDATION_ERROR"}}]}
//
// This is the GraphQL error shape, so clients parse transport failures and
// resolver errors the same way.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/metrics"
)

// ErrorResponse is the body of every failed non-GraphQL response.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

type ErrorItem struct {
	Message    string            `json:"message"`
	Extensions map[string]string `json:"extensions,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body is written; once Encode
// writes, later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a domain error to its HTTP status and stable code.
// Errors outside the taxonomy become a generic 500; their text never reaches
// the client.
func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, statusFor(err), err)
}

// writeErrorStatus writes err in the standard shape with an explicit status.
func writeErrorStatus(w http.ResponseWriter, status int, err error) {
	code := apperror.Code(err)
	metrics.APIErrorsTotal.WithLabelValues(code).Inc()

	writeJSON(w, status, ErrorResponse{
		Errors: []ErrorItem{{
			Message:    apperror.Message(err),
			Extensions: map[string]string{"code": code},
		}},
	})
}
