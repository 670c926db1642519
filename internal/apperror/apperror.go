// Package apperror defines the domain error taxonomy shared by every layer.
//
// Services return *AppError values wrapping one of the sentinels below.
// Transport layers (GraphQL resolvers, HTTP handlers) map sentinels to their
// own codes with errors.Is and show only AppError.Message to callers.
// Anything that is not an *AppError is treated as internal and never shown.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrPersistence  = errors.New("persistence error")

	// Narrower kinds. They wrap a broader sentinel so errors.Is matches both.
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrDuplicateEmail = fmt.Errorf("duplicate email: %w", ErrConflict)
)

// Stable error codes exposed to API clients.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeDuplicateEmail  = "DUPLICATE_EMAIL"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodePersistence     = "PERSISTENCE_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL"
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // safe to show to API clients
	Field   string // optional: input field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// UserNotFound is returned when an operation references a user id that does
// not exist, e.g. the acting user of createEvent.
func UserNotFound(id string) *AppError {
	return &AppError{
		Err:     ErrUserNotFound,
		Message: fmt.Sprintf("user not found with id %s", id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// DuplicateEmail reports that an account with the given email already exists.
func DuplicateEmail(email string) *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: fmt.Sprintf("user with email %s already exists", email),
		Field:   "email",
	}
}

// Persistence hides a storage failure behind a stable message. The caller is
// expected to log the underlying error before returning this.
func Persistence(operation string) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("storage unavailable while trying to %s", operation),
	}
}

// Unauthorized returns an AppError for requests without a valid identity.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Code maps err to its stable API code. Order matters: narrow kinds are
// checked before the broad sentinels they wrap.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrDuplicateEmail):
		return CodeDuplicateEmail
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrPersistence):
		return CodePersistence
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthenticated
	default:
		return CodeInternal
	}
}

// Message returns the client-safe message for err. Errors outside the
// taxonomy collapse to a generic message so internals never leak.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
