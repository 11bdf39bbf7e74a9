package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/bibleapp/bible-prayer-api/pkg/response"
	"github.com/bibleapp/bible-prayer-api/pkg/util"
)

type contextKey string

const (
	claimsContextKey contextKey = "claims"
	userIDContextKey contextKey = "user_id"
)

// Middleware builds the auth layer around the configured signing secret. It
// verifies the bearer credential and injects the identity claim into the
// request context. Every protected route sits behind it.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			// Must start with "Bearer "
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := util.ValidateJWT(secret, tokenStr)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			ctx = context.WithValue(ctx, userIDContextKey, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(r *http.Request) (*util.Claims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*util.Claims)
	return claims, ok
}

func UserIDFromContext(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(userIDContextKey).(int)
	return id, ok
}
