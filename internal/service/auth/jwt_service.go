package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token carrying the user's
	// id and role.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken validates an access token string and extracts the
	// claims. Returns ErrExpiredToken, ErrInvalidToken or
	// ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token with a longer
	// lifetime, used to obtain new access tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateRefreshToken validates a refresh token string and extracts
	// the claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// AccessTokenLifetime returns the configured access token lifetime,
	// used to report expiry timestamps to clients.
	AccessTokenLifetime() time.Duration
}

// Claims is the decoded content of a token issued by this service.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued
	// for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Role is the user's authorization tag at issuance time.
	Role domain.Role `json:"role,omitempty"`

	// TokenType indicates the purpose of the token ("access" or
	// "refresh").
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
