package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawlig/go-dog-registry/config"
	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

// Define typed context keys
type contextKey string

const SubjectKey contextKey = "subject"

// Authenticate is middleware to validate bearer tokens of the given
// type. The access guard wraps every resource route; the refresh guard
// wraps only /refresh. On success the token subject (the authenticated
// email) is placed on the request context.
func Authenticate(logger *slog.Logger, jwtCfg config.JWTConfig, want types.TokenType) func(next http.Handler) http.Handler {
	if jwtCfg.SecretKey == "" {
		logger.Error("FATAL: JWT Secret Key is not configured!")
		panic("JWT Secret Key cannot be empty")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}
			tokenString := headerParts[1]

			claims, err := ParseToken(jwtCfg, tokenString, want)
			if err != nil {
				l.WarnContext(ctx, "Token parsing/validation failed", slog.Any("error", err))
				errMsg := "Invalid or expired token"
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					errMsg = "Token has expired"
				case errors.Is(err, jwt.ErrTokenMalformed):
					errMsg = "Malformed token"
				case errors.Is(err, jwt.ErrSignatureInvalid):
					errMsg = "Invalid token signature"
				case errors.Is(err, jwt.ErrTokenInvalidIssuer):
					errMsg = "Invalid token issuer"
				case errors.Is(err, jwt.ErrTokenInvalidAudience):
					errMsg = "Invalid token audience"
				case errors.Is(err, ErrWrongTokenType):
					errMsg = "Invalid token type"
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, errMsg)
				return
			}

			// The subject is trusted as-is: stateless bearer design, no
			// existence re-check against the credential store.
			ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubjectFromContext returns the authenticated email placed on the
// context by Authenticate.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}
