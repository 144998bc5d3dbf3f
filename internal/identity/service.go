package identity

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/cv-builder/internal/types"
)

// Service pairs a Provider with session tokens.
type Service struct {
	provider Provider
	tokens   *TokenService
}

// NewService creates a Service.
func NewService(provider Provider, tokens *TokenService) *Service {
	return &Service{provider: provider, tokens: tokens}
}

func (s *Service) respond(user *types.User) (*types.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// SignIn authenticates and issues a session token.
func (s *Service) SignIn(ctx context.Context, creds types.Credentials) (*types.AuthResponse, error) {
	user, err := s.provider.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.respond(user)
}

// Register creates a user and signs them in.
func (s *Service) Register(ctx context.Context, req types.CreateUserRequest) (*types.AuthResponse, error) {
	user, err := s.provider.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.respond(user)
}

// SignOut revokes the token so it no longer authenticates.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if err := s.tokens.Revoke(token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	user := &types.User{ID: claims.UserID, Email: claims.Email}
	if err := s.provider.SignOut(ctx, user); err != nil {
		log.Printf("[identity] provider sign-out failed for %s: %v", user.ID, err)
	}
	return nil
}

// Authenticate returns the claims of a valid, not revoked token.
func (s *Service) Authenticate(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}
