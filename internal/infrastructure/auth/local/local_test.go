package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

func TestProvider_SignUpAndSession(t *testing.T) {
	provider, err := NewProvider(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	session, err := provider.SignUp(ctx, "Priya@Example.com", "secret1", "Priya")
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", session.User.Email)
	assert.Equal(t, "Priya", session.User.DisplayName)
	assert.True(t, session.User.Admin, "first account is admin")

	// The session persists across provider instances.
	current, err := provider.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session.User.ID, current.User.ID)

	second, err := provider.SignUp(ctx, "other@example.com", "secret2", "")
	require.NoError(t, err)
	assert.False(t, second.User.Admin)
	assert.Equal(t, "other", second.User.DisplayName, "display name defaults to the mailbox")
}

func TestProvider_SignIn(t *testing.T) {
	dir := t.TempDir()
	provider, err := NewProvider(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = provider.SignUp(ctx, "priya@example.com", "secret1", "Priya")
	require.NoError(t, err)
	require.NoError(t, provider.SignOut(ctx))

	current, err := provider.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = provider.SignIn(ctx, "priya@example.com", "wrong")
	assert.ErrorIs(t, err, entities.ErrAuthFailed)

	_, err = provider.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, entities.ErrAuthFailed)

	session, err := provider.SignIn(ctx, "PRIYA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", session.User.Email)
}

func TestProvider_SignUpValidation(t *testing.T) {
	provider, err := NewProvider(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = provider.SignUp(ctx, "not-an-email", "secret1", "")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	_, err = provider.SignUp(ctx, "a@b.com", "short", "")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	_, err = provider.SignUp(ctx, "a@b.com", "secret1", "")
	require.NoError(t, err)

	_, err = provider.SignUp(ctx, "A@B.com", "secret1", "")
	assert.ErrorIs(t, err, entities.ErrInvalidInput, "duplicate email")
}

func TestProvider_SignOutIdempotent(t *testing.T) {
	provider, err := NewProvider(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, provider.SignOut(ctx))
	require.NoError(t, provider.SignOut(ctx))
}
