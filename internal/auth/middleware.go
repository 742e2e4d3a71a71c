package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakif/tempshare/internal/apperror"
)

// contextKey is unexported so only this package can read or write values it
// stores in the request context.
type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth enforces a valid bearer token on protected routes.
//
// A missing token answers 403, an invalid or expired one 401, matching the
// login service's contract. On success the token's claims are placed in the
// request context for handlers that need the caller identity.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeAuthError(w, http.StatusForbidden, "token is missing")
				return
			}

			claims, err := tokens.Validate(tokenStr)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims stored by RequireAuth, or nil
// when the request did not pass through it.
func ClaimsFromContext(ctx context.Context) jwt.MapClaims {
	claims, _ := ctx.Value(claimsKey).(jwt.MapClaims)
	return claims
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return token
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	apperror.WriteJSON(w, status, apperror.ErrorResponse{
		Error:   "auth_error",
		Message: message,
	})
}
