package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyClaims contextKey = "claims"

// requireAuth validates the Bearer token and attaches its claims to
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		claims, err := s.auth.Verify(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAction gates a route on the authenticated role's permissions.
// Must be used after requireAuth.
func (s *Server) requireAction(action domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r.Context())
			if claims == nil || !claims.Can(action) {
				response.Forbidden(w, "Insufficient role", s.logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// claimsFrom extracts the authenticated claims from request context.
// Returns nil if not authenticated.
func claimsFrom(ctx context.Context) *auth.AccessClaims {
	if claims, ok := ctx.Value(contextKeyClaims).(*auth.AccessClaims); ok {
		return claims
	}
	return nil
}
