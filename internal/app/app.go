// Package app wires configuration, storage, the session, the demo-mode
// policy, the gateway, the repositories and the state containers into one
// value the CLI drives.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/config"
	"github.com/jonathan/hiretrack/internal/demomode"
	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/library"
	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/repository"
	"github.com/jonathan/hiretrack/internal/session"
	"github.com/jonathan/hiretrack/internal/state"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Options overrides parts of the wiring. Zero values use the configuration.
type Options struct {
	// Store replaces the configured storage driver. It is not closed by Close.
	Store storage.Store
	// Transport is the live client's base transport.
	Transport http.RoundTripper
	Notifier  notify.Notifier
	Log       logrus.FieldLogger
	Now       func() time.Time
}

// App is a wired hiretrack session.
type App struct {
	Config  *config.Config
	Log     logrus.FieldLogger
	Store   storage.Store
	Session *session.Session
	Demo    *demomode.Policy
	Gateway *gateway.Gateway

	Jobs       *repository.Jobs
	Applicants *repository.Applicants
	Interviews *repository.Interviews
	Library    *library.Library

	JobsState       *state.Jobs
	ApplicantsState *state.Applicants
	InterviewsState *state.Interviews
	Dashboard       *state.Dashboard

	now       func() time.Time
	ownsStore bool
}

// New builds an App from cfg.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	log := logging.OrDiscard(opts.Log)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Log(log)
	}

	a := &App{Config: cfg, Log: log, Store: opts.Store, now: now}
	if a.Store == nil {
		store, err := storage.Open(ctx, cfg.StorageDriver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.StorageDriver, err)
		}
		a.Store = store
		a.ownsStore = true
	}
	log.WithFields(logrus.Fields{"driver": cfg.StorageDriver, "api": cfg.APIBaseURL}).Debug("store opened")

	a.Session = session.New(a.Store, log)
	a.Demo = demomode.NewPolicy(a.Store, cfg.DemoMode, log)

	live := gateway.NewClient(gateway.ClientOptions{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout.Std(),
		Transport: gateway.NewInterceptor(opts.Transport, a.Demo, log),
		Tokens:    a.Session,
		Log:       log,
	})
	mock := gateway.NewMock(a.Store, gateway.MockOptions{
		Latency: cfg.MockLatency.Std(),
		Now:     now,
		Log:     log,
	})
	var cache *gateway.InterviewCache
	if ttl := cfg.InterviewCacheTTL.Std(); ttl > 0 {
		cache = gateway.NewInterviewCache(ttl, now)
	}
	a.Gateway = gateway.New(live, mock, a.Demo, cache, log)

	repoOpts := []repository.Option{
		repository.WithLogger(log),
		repository.WithClock(now),
		repository.WithNotifier(notifier),
	}
	a.Jobs = repository.NewJobs(a.Store, a.Gateway, repoOpts...)
	a.Applicants = repository.NewApplicants(a.Store, a.Gateway, repoOpts...)
	a.Interviews = repository.NewInterviews(a.Store, a.Gateway, repoOpts...)
	a.Library = library.New(a.Store, log)

	a.JobsState = state.NewJobs(a.Jobs, a.Session.Actor, log)
	a.ApplicantsState = state.NewApplicants(a.Applicants, a.Session.Actor, log)
	a.InterviewsState = state.NewInterviews(a.Interviews, a.Session.Actor, log)
	a.Dashboard = &state.Dashboard{
		Applicants: a.ApplicantsState,
		Jobs:       a.JobsState,
		Interviews: a.InterviewsState,
		Now:        now,
	}
	return a, nil
}

// Close releases the store when New opened it.
func (a *App) Close() error {
	if !a.ownsStore {
		return nil
	}
	return storage.Close(a.Store)
}

// Actor returns the signed-in user, or the zero user.
func (a *App) Actor(ctx context.Context) types.User {
	return a.Session.Actor(ctx)
}

// Register creates an account through the gateway and signs in.
func (a *App) Register(ctx context.Context, req types.RegisterRequest) (*types.User, error) {
	res, err := a.Gateway.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.signIn(ctx, res)
}

// Login authenticates through the gateway and signs in.
func (a *App) Login(ctx context.Context, req types.LoginRequest) (*types.User, error) {
	res, err := a.Gateway.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.signIn(ctx, res)
}

// LoginDistinguished signs in a Google-class user without contacting the
// backend. Its data stays in local storage.
func (a *App) LoginDistinguished(ctx context.Context, name, email string) (*types.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	u := types.User{
		ID:           "google_" + email,
		Name:         name,
		Email:        email,
		Provider:     types.ProviderGoogle,
		IsGoogleUser: true,
		CreatedAt:    types.FormatTimestamp(a.now()),
	}
	return a.signIn(ctx, &types.AuthResult{User: u, Token: gateway.MockTokenPrefix + "google"})
}

func (a *App) signIn(ctx context.Context, res *types.AuthResult) (*types.User, error) {
	if err := a.Session.SignIn(ctx, *res); err != nil {
		return nil, err
	}
	a.resetCache()
	u := res.User
	return &u, nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	a.resetCache()
	return a.Session.SignOut(ctx)
}

// Profile returns the backend profile and refreshes the stored user.
func (a *App) Profile(ctx context.Context) (*types.User, error) {
	u, err := a.Gateway.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if err := a.Session.UpdateUser(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile edits the profile and refreshes the stored user.
func (a *App) UpdateProfile(ctx context.Context, p types.ProfileUpdate) (*types.User, error) {
	u, err := a.Gateway.UpdateProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := a.Session.UpdateUser(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *App) resetCache() {
	if c := a.Gateway.InterviewCache(); c != nil {
		c.Reset()
	}
}
