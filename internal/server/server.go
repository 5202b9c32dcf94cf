// Package server is the development stub of the hiretrack backend. It serves
// the REST contract the live gateway client speaks, backed by any
// gateway.Remote (normally the fixture mock over a durable store), with
// bcrypt accounts and HS256 bearer tokens.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/config"
	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/server/middleware"
	"github.com/jonathan/hiretrack/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	backend     gateway.Remote
	tokens      *TokenIssuer
	userService *UserService
	authHandler *AuthHandler
	log         logrus.FieldLogger
}

// Config holds server configuration
type Config struct {
	Addr    string
	Backend gateway.Remote
	Users   storage.Store
	Auth    *config.AuthConfig
	Log     logrus.FieldLogger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Backend == nil {
		return nil, errors.New("server backend is required")
	}
	if cfg.Users == nil {
		return nil, errors.New("server user store is required")
	}
	auth := cfg.Auth
	if auth == nil {
		var err error
		auth, err = config.NewAuthConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create auth config: %w", err)
		}
	}

	log := logging.OrDiscard(cfg.Log).WithField("component", "server")
	s := &Server{
		backend:     cfg.Backend,
		tokens:      NewTokenIssuer(auth),
		userService: NewUserService(cfg.Users, auth),
		log:         log,
	}
	s.authHandler = NewAuthHandler(s.userService, s.tokens, log)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	protect := middleware.AuthMiddleware(s.tokens)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protect(h))
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)

	handle("GET /api/profile", s.authHandler.GetProfile)
	handle("PUT /api/profile", s.authHandler.UpdateProfile)

	handle("GET /api/jobs", s.handleListJobs)
	handle("POST /api/jobs", s.handleCreateJob)
	handle("GET /api/jobs/{id}", s.handleGetJob)
	handle("PATCH /api/jobs/{id}/status", s.handleUpdateJobStatus)
	handle("DELETE /api/jobs/{id}", s.handleDeleteJob)

	handle("GET /api/applications", s.handleListApplicants)
	handle("POST /api/applications", s.handleCreateApplicant)
	handle("GET /api/applications/filter", s.handleFilterApplicants)
	handle("GET /api/applications/{id}", s.handleGetApplicant)
	handle("PATCH /api/applications/{id}/status", s.handleUpdateApplicantStatus)
	handle("PATCH /api/applications/{id}/notes", s.handleAddApplicantNote)
	handle("DELETE /api/applications/{id}", s.handleDeleteApplicant)

	handle("GET /api/interviews", s.handleListInterviews)
	handle("POST /api/interviews", s.handleCreateInterview)
	handle("PATCH /api/interviews/{id}/status", s.handleUpdateInterviewStatus)
	handle("POST /api/interviews/{id}/feedback", s.handleSubmitFeedback)
	handle("DELETE /api/interviews/{id}", s.handleDeleteInterview)

	return mux
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until ctx is done or SIGINT/SIGTERM arrives, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, s.log, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, log logrus.FieldLogger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("error encoding JSON response")
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// dataResponse writes the success envelope.
func dataResponse(w http.ResponseWriter, log logrus.FieldLogger, status int, data any) {
	jsonResponse(w, log, status, envelope{Success: true, Data: data})
}

// errorResponse writes the failure envelope.
func errorResponse(w http.ResponseWriter, log logrus.FieldLogger, status int, msg string) {
	jsonResponse(w, log, status, envelope{Success: false, Message: msg})
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	errorResponse(w, log, status, message(err))
}
