package mw

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sitecue/sitecue/internal/auth"
	"github.com/sitecue/sitecue/internal/logger"
)

type ctxKey int

const userIDKey ctxKey = iota

// Auth validates the Bearer access token and stores the user ID in the
// request context. Requests without a valid token get a 401 JSON body.
func Auth(svc *auth.Service, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			userID, err := svc.ValidateAccessToken(token)
			if err != nil {
				log.Debug("rejected access token", logger.Error(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID from the request context.
// Empty outside of Auth-wrapped routes.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID injects a user ID into ctx. Test helper for handlers that
// normally sit behind Auth.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
