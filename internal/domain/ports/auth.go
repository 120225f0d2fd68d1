package ports

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// Session is the signed-in account for the current request or CLI run.
type Session struct {
	User entities.User
}

// Authenticator supplies the current session and opaque credential
// operations. The core only ever consumes {id, email, displayName, admin}.
type Authenticator interface {
	// Current returns the active session, or nil when signed out.
	Current(ctx context.Context) (*Session, error)

	// SignIn resolves credentials to a session or fails with
	// entities.ErrAuthFailed.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignUp registers a new account and returns its session.
	SignUp(ctx context.Context, email, password, displayName string) (*Session, error)

	// SignOut discards the active session.
	SignOut(ctx context.Context) error
}
