package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"))

	var gotID int
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = UserID(r.Context())
	})
	h := Middleware(tm)(next)

	t.Run("missing token", func(t *testing.T) {
		called = false
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/profile", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.False(t, called)
		require.Contains(t, rr.Body.String(), "Token não fornecido")
	})

	t.Run("invalid token", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.False(t, called)
		require.Contains(t, rr.Body.String(), "Token inválido")
	})

	t.Run("valid token", func(t *testing.T) {
		called = false
		token, err := tm.Issue(7, "x@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.True(t, called)
		require.Equal(t, 7, gotID)
	})
}
