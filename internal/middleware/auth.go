package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/service"
)

type contextKey int

const (
	contextKeyUserID contextKey = iota
)

// Auth gets the token from the cookie and puts the user id to the context
func Auth(ts service.TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			payload, err := ts.VerifyToken(cookie.Value)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), payload.UserID)))
		})
	}
}

// WithUserID puts the authenticated user id to the context
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}

// UserIDFromContext extracts the authenticated user id from context
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(uuid.UUID)
	return userID, ok
}
