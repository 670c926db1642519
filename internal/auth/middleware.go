package auth

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
)

// contextKey is unexported so only this package can read or write the
// acting user in a request context.
type contextKey string

const userIDKey contextKey = "userID"

// TokenCookie is the cookie name checked when no Authorization header is sent.
const TokenCookie = "token"

var errCookieNotAllowed = errors.New("auth: token cookie only accepted on JSON POST")

// OptionalAuth extracts the acting user if a valid token is present, but does
// NOT block the request if it's missing or invalid.
//
// /graphql mixes public operations (events, createUser) with createEvent,
// which needs an acting user. Blocking happens per operation: resolvers check
// UserIDFromContext and return UNAUTHENTICATED themselves.
//
// Token sources, in order:
//  1. Authorization: Bearer <jwt>
//  2. Cookie: token=<jwt>, only on POST with Content-Type: application/json
//
// Browsers attach cookies to cross-site GETs and form posts, but cannot send
// a cross-site JSON POST without a CORS preflight.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil && userID != "" {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID returns a context carrying userID as the acting user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return tokens.Validate(strings.TrimSpace(token))
		}
	}

	if !cookieAllowed(r) {
		return "", errCookieNotAllowed
	}
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}

func cookieAllowed(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
