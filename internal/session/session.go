// Package session persists the signed-in user and auth token.
package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Session reads and writes the user and token keys.
type Session struct {
	store storage.Store
	log   logrus.FieldLogger
}

// New returns a Session over store.
func New(store storage.Store, log logrus.FieldLogger) *Session {
	return &Session{store: store, log: logging.OrDiscard(log)}
}

// User returns the stored user record. ok is false when nothing is stored.
// A corrupt record is an error.
func (s *Session) User(ctx context.Context) (types.User, bool, error) {
	var u types.User
	ok, err := storage.ReadJSON(ctx, s.store, storage.KeyUser, &u)
	if err != nil {
		return types.User{}, false, err
	}
	return u, ok, nil
}

// Actor returns the stored user, or the zero user when absent or unreadable.
func (s *Session) Actor(ctx context.Context) types.User {
	u, _, err := s.User(ctx)
	if err != nil {
		s.log.WithError(err).Warn("stored user unreadable, continuing anonymously")
		return types.User{}
	}
	return u
}

// Token returns the stored auth token, or "" when none is stored.
func (s *Session) Token(ctx context.Context) (string, error) {
	tok, _, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return tok, nil
}

// SignIn stores the user and token of a successful login or registration.
func (s *Session) SignIn(ctx context.Context, res types.AuthResult) error {
	if err := storage.WriteJSON(ctx, s.store, storage.KeyUser, res.User); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyToken, res.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": res.User.ID, "email": res.User.Email}).Info("signed in")
	return nil
}

// UpdateUser replaces the stored user record and keeps the token.
func (s *Session) UpdateUser(ctx context.Context, u types.User) error {
	return storage.WriteJSON(ctx, s.store, storage.KeyUser, u)
}

// SignOut removes the user and token.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.store.Remove(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	if err := s.store.Remove(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
