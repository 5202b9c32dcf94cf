package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

func TestSession_SignInSignOut(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	s := New(store, logging.Discard())

	assert.Equal(t, types.User{}, s.Actor(ctx))
	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	res := types.AuthResult{
		User:  types.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Provider: "google"},
		Token: "mock-token-1",
	}
	require.NoError(t, s.SignIn(ctx, res))

	actor := s.Actor(ctx)
	assert.Equal(t, "u1", actor.ID)
	assert.True(t, actor.IsDistinguished())

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", tok)

	require.NoError(t, s.SignOut(ctx))
	_, ok, err := s.User(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	tok, _ = s.Token(ctx)
	assert.Empty(t, tok)
}

func TestSession_CorruptUser(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, storage.KeyUser, "{broken"))

	s := New(store, nil)
	_, _, err := s.User(ctx)
	assert.Error(t, err)
	assert.Equal(t, types.User{}, s.Actor(ctx))
}

func TestSession_UpdateUserKeepsToken(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemory(), nil)
	require.NoError(t, s.SignIn(ctx, types.AuthResult{User: types.User{ID: "u1", Name: "Ada"}, Token: "t"}))

	require.NoError(t, s.UpdateUser(ctx, types.User{ID: "u1", Name: "Ada L."}))
	assert.Equal(t, "Ada L.", s.Actor(ctx).Name)
	tok, _ := s.Token(ctx)
	assert.Equal(t, "t", tok)
}
