package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runOptionalAuth(t *testing.T, ts *TokenService, req *http.Request) (string, bool) {
	t.Helper()
	var (
		gotID string
		gotOK bool
	)
	h := OptionalAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code, "OptionalAuth must never block")
	return gotID, gotOK
}

func TestOptionalAuth(t *testing.T) {
	ts := newTestTokenService(t)
	token, err := ts.Generate("user-1")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		id, ok := runOptionalAuth(t, ts, req)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})

		id, ok := runOptionalAuth(t, ts, req)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	t.Run("cookie ignored outside JSON POST", func(t *testing.T) {
		requests := map[string]*http.Request{
			"get":        httptest.NewRequest(http.MethodGet, "/graphql", nil),
			"form post":  httptest.NewRequest(http.MethodPost, "/graphql", nil),
			"plain post": httptest.NewRequest(http.MethodPost, "/graphql", nil),
			"no type":    httptest.NewRequest(http.MethodPost, "/graphql", nil),
		}
		requests["form post"].Header.Set("Content-Type", "application/x-www-form-urlencoded")
		requests["plain post"].Header.Set("Content-Type", "text/plain")

		for name, req := range requests {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
			_, ok := runOptionalAuth(t, ts, req)
			assert.False(t, ok, name)
		}
	})

	t.Run("bearer header on GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		id, ok := runOptionalAuth(t, ts, req)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)

		_, ok := runOptionalAuth(t, ts, req)
		assert.False(t, ok)
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		_, ok := runOptionalAuth(t, ts, req)
		assert.False(t, ok)
	})
}

func TestUserIDFromContext_EmptyIsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(WithUserID(req.Context(), ""))
	assert.False(t, ok)
}
