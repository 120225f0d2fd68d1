package mocks

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
)

// Auth is a mock implementation of ports.Authenticator. A nil Session
// models a signed-out caller.
type Auth struct {
	Session *ports.Session
	Err     error
}

// NewAuth creates a mock Authenticator with the given signed-in user.
func NewAuth(user entities.User) *Auth {
	return &Auth{Session: &ports.Session{User: user}}
}

// NewSignedOutAuth creates a mock Authenticator with no session.
func NewSignedOutAuth() *Auth {
	return &Auth{}
}

// Current returns the configured session.
func (m *Auth) Current(_ context.Context) (*ports.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}

// SignIn returns the configured session regardless of credentials.
func (m *Auth) SignIn(_ context.Context, _, _ string) (*ports.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Session == nil {
		return nil, entities.ErrAuthFailed
	}
	return m.Session, nil
}

// SignUp installs and returns a session for the given account.
func (m *Auth) SignUp(_ context.Context, email, _, displayName string) (*ports.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Session = &ports.Session{User: entities.User{ID: "user-" + email, Email: email, DisplayName: displayName}}
	return m.Session, nil
}

// SignOut discards the session.
func (m *Auth) SignOut(_ context.Context) error {
	m.Session = nil
	return m.Err
}
