package api

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Role defaults to student when omitted.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin teacher student"`
	Language string `json:"language" validate:"omitempty,max=8"`
	Country  string `json:"country"  validate:"omitempty,max=64"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// VerbRequest defines the payload for verb create and update endpoints.
type VerbRequest struct {
	VerbPairID      string          `json:"verb_pair_id"     validate:"required"`
	ConjugationType int             `json:"conjugation_type" validate:"required,oneof=1 2"`
	Root            string          `json:"root"             validate:"required"`
	StressPattern   string          `json:"stress_pattern"   validate:"omitempty,max=32"`
	Translations    json.RawMessage `json:"translations"`
	Imperfective    json.RawMessage `json:"imperfective"`
	Perfective      json.RawMessage `json:"perfective"`
}

// VerbListResponse pages through the verb lexicon.
type VerbListResponse struct {
	Items   []*domain.Verb `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// NounRequest defines the payload for noun create and update endpoints.
type NounRequest struct {
	Noun         string          `json:"noun"         validate:"required"`
	Gender       string          `json:"gender"       validate:"required,oneof=masculine feminine neuter"`
	Translations json.RawMessage `json:"translations"`
	Declension   json.RawMessage `json:"declension"`
}

// NounListResponse pages through the noun lexicon.
type NounListResponse struct {
	Items   []*domain.Noun `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// GroupRequest defines the payload for group create and rename endpoints.
type GroupRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

// UpdateProfileRequest defines the payload for the self-service profile
// endpoint. Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Language *string `json:"language" validate:"omitempty,max=8"`
	Country  *string `json:"country"  validate:"omitempty,max=64"`
}
