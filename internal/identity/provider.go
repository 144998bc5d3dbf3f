// Package identity signs users in and out. Without a database a simulated
// demo user is always signed in; with one, users register with a password.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
)

// Provider authenticates users.
type Provider interface {
	SignIn(ctx context.Context, creds types.Credentials) (*types.User, error)
	SignOut(ctx context.Context, user *types.User) error
	Register(ctx context.Context, req types.CreateUserRequest) (*types.User, error)
}

// DemoUser is the simulated user of unconfigured deployments.
var DemoUser = types.User{
	ID:    "demo123",
	Name:  "Demo User",
	Email: "demo@example.com",
}

// DemoProvider signs everyone in as DemoUser.
type DemoProvider struct{}

// SignIn implements Provider. Credentials are ignored.
func (DemoProvider) SignIn(_ context.Context, _ types.Credentials) (*types.User, error) {
	log.Printf("[identity] demo sign-in, no identity backend configured")
	u := DemoUser
	return &u, nil
}

// SignOut implements Provider.
func (DemoProvider) SignOut(_ context.Context, _ *types.User) error {
	log.Printf("[identity] demo sign-out")
	return nil
}

// Register implements Provider and returns DemoUser.
func (p DemoProvider) Register(ctx context.Context, _ types.CreateUserRequest) (*types.User, error) {
	return p.SignIn(ctx, types.Credentials{})
}

// UserStore is the persistence PasswordProvider needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*storage.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*storage.UserRecord, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}

// PasswordProvider authenticates registered users with bcrypt hashes.
type PasswordProvider struct {
	users     UserStore
	passwords *config.PasswordConfig
}

// NewPasswordProvider creates a PasswordProvider.
func NewPasswordProvider(users UserStore, passwords *config.PasswordConfig) *PasswordProvider {
	return &PasswordProvider{users: users, passwords: passwords}
}

// Register implements Provider.
func (p *PasswordProvider) Register(ctx context.Context, req types.CreateUserRequest) (*types.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Message: "invalid registration", Cause: err}
	}
	if err := p.passwords.CheckPassword(req.Password); err != nil {
		return nil, &ErrValidation{Message: "invalid password", Cause: err}
	}

	exists, err := p.users.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	hash, err := p.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec, err := p.users.CreateUser(ctx, req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[identity] registered user %s", rec.ID)
	return rec.User(), nil
}

// SignIn implements Provider. Unknown emails and wrong passwords produce
// the same error.
func (p *PasswordProvider) SignIn(ctx context.Context, creds types.Credentials) (*types.User, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := creds.Validate(); err != nil {
		return nil, &ErrValidation{Message: "invalid credentials", Cause: err}
	}

	rec, err := p.users.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if rec == nil || !p.passwords.VerifyPassword(creds.Password, rec.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return rec.User(), nil
}

// SignOut implements Provider. Sessions are stateless tokens, so there is
// nothing to release here.
func (p *PasswordProvider) SignOut(_ context.Context, _ *types.User) error {
	return nil
}
