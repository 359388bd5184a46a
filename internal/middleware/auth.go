// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// contextKey is a type-safe key for context values.
type contextKey string

// userIDContextKey stores the authenticated user ID on the request context.
var userIDContextKey = contextKey("user_id")

// TokenAuthenticator resolves a bearer token to a user ID.
// Implemented by auth.Service.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// NewAuthMiddleware returns a middleware that reads the Authorization header,
// validates the bearer token and injects the authenticated user ID into the
// request context. Requests without a valid token get 401 Unauthorized.
func NewAuthMiddleware(authenticator TokenAuthenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				writeUnauthorizedResponse(w)
				return
			}

			userID, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				slog.Warn("token rejected",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path),
				)
				writeUnauthorizedResponse(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorizedResponse writes the standard 401 body for missing or
// rejected tokens.
func writeUnauthorizedResponse(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
		Code:     "UNAUTHORIZED",
		Message:  "Authentication required.",
		Category: "auth",
		Action:   "Log in and retry.",
	})
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// UserIDFromContext returns the authenticated user ID from the request
// context. Valid only after the auth middleware has run.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID injects a user ID into the context.
// For tests and non-middleware context construction.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
