package identity

import (
	"errors"
	"fmt"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid sign-in credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
	Cause   error
}

func (e *ErrValidation) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ErrValidation) Unwrap() error {
	return e.Cause
}

// ErrInvalidToken indicates a missing, malformed, expired or revoked token
type ErrInvalidToken struct {
	Reason string
	Cause  error
}

func (e *ErrInvalidToken) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid token: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid token: %s", e.Reason)
}

func (e *ErrInvalidToken) Unwrap() error {
	return e.Cause
}

// ErrRevoked is wrapped by ErrInvalidToken for signed-out tokens.
var ErrRevoked = errors.New("token revoked")
