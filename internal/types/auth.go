//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var requestValidator = validator.New()

// User is the signed-in identity. IDs are opaque strings: UUIDs for
// registered users, a fixed id for the demo user.
type User struct {
	ID        string    `json:"uid"`
	Name      string    `json:"displayName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// CreateUserRequest represents a registration request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Credentials represents a sign-in request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by sign-in and registration.
type AuthResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Validate checks the struct tags of the request.
func (r *CreateUserRequest) Validate() error {
	return requestValidator.Struct(r)
}

// Validate checks the struct tags of the request.
func (c *Credentials) Validate() error {
	return requestValidator.Struct(c)
}
