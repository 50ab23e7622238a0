package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is a custom type used for keys in context.Context. Using a
// custom type prevents collisions with keys defined in other packages.
type contextKey string

// adminContextKey is the key under which the authenticated admin's ID is
// stored in the request context.
const adminContextKey = contextKey("adminID")

// bearerToken extracts the opaque session token from the Authorization
// header. Returns "" when the header is missing or not a bearer token.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) == 2 && strings.ToLower(headerParts[0]) == "bearer" {
		return headerParts[1]
	}
	return ""
}

// authMiddleware protects routes that require a valid admin session. The
// token is opaque: validity means a matching, unexpired row exists in the
// admin_tokens table right now. No refresh or extension happens here.
// On success the admin's ID is injected into the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.errorJSON(w, errors.New("not authorized"), http.StatusUnauthorized)
			return
		}

		at, err := s.db.GetValidToken(s.db.DB(), token)
		if err != nil {
			// Unknown and expired tokens look identical to the caller.
			s.errorJSON(w, errors.New("invalid or expired token"), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, at.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getAdminIDFromContext retrieves the authenticated admin's ID placed in the
// context by authMiddleware.
func (s *Server) getAdminIDFromContext(r *http.Request) (int64, error) {
	adminID, ok := r.Context().Value(adminContextKey).(int64)
	if !ok {
		// Indicates the middleware wasn't applied; a server-side logic error.
		return 0, errors.New("could not retrieve admin ID from context")
	}
	return adminID, nil
}
