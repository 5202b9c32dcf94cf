package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	svc := NewUserService(store, testAuthConfig())
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) }

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Name: " Rowan ", Email: "Rowan@Example.com", Password: "password123", Company: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rowan", user.Name)
	assert.Equal(t, "rowan@example.com", user.Email)
	assert.Equal(t, "2026-04-01T08:00:00.000Z", user.CreatedAt)

	raw, ok, err := store.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "password123")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &types.RegisterRequest{Name: "Other", Email: "ROWAN@example.com", Password: "password456"})
		var exists *ErrEmailAlreadyExists
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("login", func(t *testing.T) {
		got, err := svc.Login(ctx, &types.LoginRequest{Email: "rowan@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = svc.Login(ctx, &types.LoginRequest{Email: "rowan@example.com", Password: "nope-nope"})
		var creds *ErrInvalidCredentials
		assert.ErrorAs(t, err, &creds)
	})

	t.Run("profile", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, user.ID, types.ProfileUpdate{Phone: "555-0100"})
		require.NoError(t, err)
		assert.Equal(t, "555-0100", updated.Phone)
		assert.Equal(t, "Acme", updated.Company)

		got, err := svc.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "555-0100", got.Phone)

		_, err = svc.Get(ctx, "missing")
		var nf *ErrUserNotFound
		assert.ErrorAs(t, err, &nf)
		_, err = svc.UpdateProfile(ctx, "missing", types.ProfileUpdate{Name: "x"})
		assert.ErrorAs(t, err, &nf)
	})
}
