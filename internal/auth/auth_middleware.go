package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

var (
	ErrMissingAuthorization = errors.New("authorization header is required")
	ErrInvalidTokenFormat   = errors.New("invalid token format")
	ErrRoleNotAllowed       = errors.New("role is not allowed for this operation")
)

type contextKey string

const (
	claimsKey    contextKey = "claims"
	authErrorKey contextKey = "authError"
)

// JWTAccessTokenMiddleware decodes the bearer token into the request context.
// It never rejects a request: role checks happen in the gateway after input
// validation, so a missing or bad token is recorded and reported later.
func JWTAccessTokenMiddleware(jwtManager JWTManagerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticate(jwtManager, r.Header.Get("Authorization"))

			ctx := r.Context()
			if err != nil {
				if !errors.Is(err, ErrMissingAuthorization) {
					slog.Debug("Bearer token rejected", "path", r.URL.Path, "error", err)
				}
				ctx = context.WithValue(ctx, authErrorKey, err)
			} else {
				ctx = context.WithValue(ctx, claimsKey, claims)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(jwtManager JWTManagerInterface, authHeader string) (*RoleClaims, error) {
	if authHeader == "" {
		return nil, ErrMissingAuthorization
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return nil, ErrInvalidTokenFormat
	}

	return jwtManager.ValidateAccessToken(tokenString)
}

// ClaimsFromContext returns the validated claims, or the reason there are none.
func ClaimsFromContext(ctx context.Context) (*RoleClaims, error) {
	if claims, ok := ctx.Value(claimsKey).(*RoleClaims); ok {
		return claims, nil
	}
	if err, ok := ctx.Value(authErrorKey).(error); ok {
		return nil, err
	}
	return nil, ErrMissingAuthorization
}

// Authorize succeeds only when the caller holds a valid token with the given role.
func Authorize(ctx context.Context, role string) error {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if claims.Role != role {
		return ErrRoleNotAllowed
	}
	return nil
}

// WithClaims attaches already validated claims to ctx.
func WithClaims(ctx context.Context, claims *RoleClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
