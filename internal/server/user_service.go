package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiretrack/internal/config"
	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// KeyUsers holds the registered accounts of the stub backend.
const KeyUsers = "server:users"

// account is a stored user with its password hash.
type account struct {
	types.User
	PasswordHash string `json:"passwordHash"`
}

// UserService provides business logic for user authentication operations
type UserService struct {
	mu             sync.Mutex
	store          storage.Store
	passwordConfig *config.AuthConfig
	now            func() time.Time
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store storage.Store, passwordConfig *config.AuthConfig) *UserService {
	return &UserService{store: store, passwordConfig: passwordConfig, now: time.Now}
}

func (s *UserService) accounts(ctx context.Context) []account {
	return storage.ReadList[account](ctx, s.store, logging.Discard(), KeyUsers)
}

func (s *UserService) save(ctx context.Context, list []account) error {
	if err := storage.WriteJSON(ctx, s.store, KeyUsers, list); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	list := s.accounts(ctx)
	for _, a := range list {
		if strings.EqualFold(a.Email, email) {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := types.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Company:   req.Company,
		Role:      req.Role,
		CreatedAt: types.FormatTimestamp(s.now()),
	}
	if err := s.save(ctx, append(list, account{User: user, PasswordHash: passwordHash})); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, a := range s.accounts(ctx) {
		if !strings.EqualFold(a.Email, email) {
			continue
		}
		// Security: same error for unknown email and wrong password
		if !s.passwordConfig.VerifyPassword(req.Password, a.PasswordHash) {
			return nil, &ErrInvalidCredentials{}
		}
		u := a.User
		return &u, nil
	}
	return nil, &ErrInvalidCredentials{}
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, userID string) (*types.User, error) {
	for _, a := range s.accounts(ctx) {
		if a.ID == userID {
			u := a.User
			return &u, nil
		}
	}
	return nil, &ErrUserNotFound{UserID: userID}
}

// UpdateProfile applies p to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, p types.ProfileUpdate) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.accounts(ctx)
	for i := range list {
		if list[i].ID != userID {
			continue
		}
		list[i].User = p.Apply(list[i].User)
		if err := s.save(ctx, list); err != nil {
			return nil, err
		}
		u := list[i].User
		return &u, nil
	}
	return nil, &ErrUserNotFound{UserID: userID}
}
