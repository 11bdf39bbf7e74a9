package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibleapp/bible-prayer-api/pkg/util"
)

func protected(t *testing.T, secret string) (http.Handler, *int) {
	t.Helper()
	var gotUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r)
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(secret)(next), &gotUserID
}

func TestMiddleware_MissingHeader(t *testing.T) {
	handler, _ := protected(t, "test-secret")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Unauthorized: No token provided"}`, rec.Body.String())
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	handler, _ := protected(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	handler, _ := protected(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid token"}`, rec.Body.String())
}

func TestMiddleware_ValidTokenInjectsClaims(t *testing.T) {
	handler, gotUserID := protected(t, "test-secret")

	token, err := util.GenerateJWT("test-secret", 7, "a@b.c")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, *gotUserID)
}

func TestMiddleware_WrongSecretRejected(t *testing.T) {
	token, err := util.GenerateJWT("secret-a", 7, "a@b.c")
	require.NoError(t, err)

	handler, _ := protected(t, "secret-b")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
