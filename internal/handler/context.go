package handlers

import (
	"context"
	"net/http"

	"socialnet/internal/service"
)

type contextKey string

const (
	claimsKey    contextKey = "claims"
	authErrorKey contextKey = "authError"
)

// WithClaims stores the verified access token claims of the caller.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok && claims != nil
}

// WithAuthError remembers why a presented token was rejected so that
// protected routes can report it.
func WithAuthError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, authErrorKey, err)
}

func AuthErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(authErrorKey).(error)
	return err
}

// currentClaims writes 401 and returns false when the request carries no
// authenticated caller.
func currentClaims(w http.ResponseWriter, r *http.Request) (*service.Claims, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		if err := AuthErrorFromContext(r.Context()); err != nil {
			WriteError(w, err.Error(), http.StatusUnauthorized)
		} else {
			WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		}
		return nil, false
	}
	return claims, true
}

func actorFromClaims(claims *service.Claims) service.Actor {
	return service.Actor{UserID: claims.UserID, Role: claims.Role}
}
