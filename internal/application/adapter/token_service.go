// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"github.com/google/uuid"
)

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims holds the claims extracted from a validated token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService defines the contract for issuing and validating stateless JWTs.
type TokenService interface {
	// GenerateTokenPair issues a new access and refresh token pair for the user.
	GenerateTokenPair(userID uuid.UUID, email string) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	ValidateRefreshToken(token string) (*TokenClaims, error)
}
