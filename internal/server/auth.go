package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
)

type contextKey string

const userContextKey contextKey = "brewscout.user"

// sessionMiddleware lifts the identity headers into the request context.
// The server trusts the caller (a gateway or the demo frontend) to have
// authenticated the user already.
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		user := entities.User{
			ID:          userID,
			Email:       r.Header.Get("X-User-Email"),
			DisplayName: r.Header.Get("X-User-Name"),
			Admin:       r.Header.Get("X-User-Admin") == "true",
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextAuthenticator resolves sessions from the request context
// populated by sessionMiddleware. Credential operations are not
// available over this transport.
type ContextAuthenticator struct{}

// Current returns the session carried by the request context, or nil.
func (ContextAuthenticator) Current(ctx context.Context) (*ports.Session, error) {
	user, ok := ctx.Value(userContextKey).(entities.User)
	if !ok {
		return nil, nil
	}
	return &ports.Session{User: user}, nil
}

// SignIn is not supported over HTTP identity headers.
func (ContextAuthenticator) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	return nil, fmt.Errorf("signing in over http: %w", entities.ErrAuthFailed)
}

// SignUp is not supported over HTTP identity headers.
func (ContextAuthenticator) SignUp(ctx context.Context, email, password, displayName string) (*ports.Session, error) {
	return nil, fmt.Errorf("signing up over http: %w", entities.ErrAuthFailed)
}

// SignOut is a no-op; the session lives only for the request.
func (ContextAuthenticator) SignOut(ctx context.Context) error {
	return nil
}
