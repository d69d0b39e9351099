package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wodboard/wodboard/internal/auth"
)

// contextKey is a custom type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

// athleteContextKey stores the authenticated athlete's ID in the request
// context after successful authentication.
const athleteContextKey = contextKey("athleteID")

// authMiddleware protects routes that require authentication. It accepts a
// JWT from the 'Authorization: Bearer' header or, as a fallback, a 'token'
// URL query parameter (needed for SSE connections, where custom headers are
// awkward). On success the athlete's ID is injected into the request
// context; otherwise the request ends with a 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		authHeader := r.Header.Get("Authorization")
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) == 2 && strings.ToLower(headerParts[0]) == "bearer" {
			tokenString = headerParts[1]
		}

		if tokenString == "" {
			tokenString = r.URL.Query().Get("token")
		}

		if tokenString == "" {
			s.errorJSON(w, errors.New("authorization token is required"), http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateToken(tokenString, s.config.JwtSecret)
		if err != nil {
			s.errorJSON(w, errors.New("invalid or expired token"), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), athleteContextKey, claims.AthleteID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getAthleteIDFromContext retrieves the authenticated athlete's ID from the
// request context. Only handlers behind authMiddleware may call it.
func (s *Server) getAthleteIDFromContext(r *http.Request) (int64, error) {
	athleteID, ok := r.Context().Value(athleteContextKey).(int64)
	if !ok {
		// Indicates a server-side wiring error, not a client fault.
		return 0, errors.New("could not retrieve athlete ID from context")
	}
	return athleteID, nil
}
