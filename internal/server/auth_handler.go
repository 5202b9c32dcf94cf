package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/server/middleware"
	"github.com/jonathan/hiretrack/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	tokens      *TokenIssuer
	validator   *validator.Validate
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, tokens *TokenIssuer, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		validator:   validator.New(),
		log:         logging.OrDiscard(log),
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, h.log, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.issue(w, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, h.log, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.issue(w, http.StatusOK, user)
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.WithError(err).Error("failed to generate token")
		errorResponse(w, h.log, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	dataResponse(w, h.log, status, types.AuthResult{User: *user, Token: token})
}

// GetProfile returns the signed-in user.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, h.log, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	dataResponse(w, h.log, http.StatusOK, user)
}

// UpdateProfile edits the signed-in user.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, h.log, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var p types.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		errorResponse(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.userService.UpdateProfile(r.Context(), userID, p)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	dataResponse(w, h.log, http.StatusOK, user)
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// first error only
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
