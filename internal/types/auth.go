// Package types provides the entity and request types shared by the hiretrack
// repositories, gateway and stub backend.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProviderGoogle marks users signed in through the Google demo path.
const ProviderGoogle = "google"

// User is the current-session user record.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role,omitempty"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Provider     string `json:"provider,omitempty"`
	IsDemo       bool   `json:"isDemo,omitempty"`
	IsGoogleUser bool   `json:"isGoogleUser,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// IsDistinguished reports whether the user belongs to the demo-only class whose
// data never leaves local storage.
func (u User) IsDistinguished() bool {
	return u.IsGoogleUser || strings.EqualFold(strings.TrimSpace(u.Provider), ProviderGoogle)
}

// RegisterRequest is the registration payload of the auth pair.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Company  string `json:"company,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the login payload of the auth pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Apply copies the non-empty fields of p onto u.
func (p ProfileUpdate) Apply(u User) User {
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Company != "" {
		u.Company = p.Company
	}
	if p.Role != "" {
		u.Role = p.Role
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	return u
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
