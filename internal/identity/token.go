package identity

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/types"
)

// Claims carries the signed-in user in a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GetUserID returns the user ID from the claims.
func (c *Claims) GetUserID() string {
	return c.UserID
}

// TokenService issues and validates HS256 session tokens. Signed-out tokens
// are remembered by their id until they expire.
type TokenService struct {
	config *config.JWTConfig
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewTokenService creates a token service with the given configuration.
func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		config:  cfg,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Issue signs a token for user and returns it with its expiry.
func (s *TokenService) Issue(user *types.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, &ErrInvalidToken{Reason: "token string is empty"}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, &ErrInvalidToken{Reason: "invalid signature", Cause: err}
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &ErrInvalidToken{Reason: "expired", Cause: err}
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, &ErrInvalidToken{Reason: "malformed", Cause: err}
		}
		return nil, &ErrInvalidToken{Reason: "failed to parse", Cause: err}
	}

	if !token.Valid || claims.UserID == "" {
		return nil, &ErrInvalidToken{Reason: "token is not valid"}
	}
	return claims, nil
}

// Validate checks the signature, expiry and revocation of a token.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, &ErrInvalidToken{Reason: "signed out", Cause: ErrRevoked}
	}
	return claims, nil
}

// Revoke invalidates a valid token. Revoking twice is not an error.
func (s *TokenService) Revoke(tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// pruneLocked forgets revocations of tokens that have expired anyway.
func (s *TokenService) pruneLocked() {
	now := s.now()
	for jti, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, jti)
		}
	}
}
