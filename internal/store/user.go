package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry
	// a hashed password; plaintext passwords are never persisted.
	// Returns ErrUsernameExists or ErrEmailExists on uniqueness
	// violations, or domain validation errors for invalid data.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns users ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// Update modifies an existing user. The caller must provide a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists/ErrEmailExists on uniqueness violations.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Owned groups and student-teacher links are
	// removed by cascade.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
