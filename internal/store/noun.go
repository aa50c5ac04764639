package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// NounFilter narrows and paginates noun listings. Zero values mean "no
// filter".
type NounFilter struct {
	// Noun matches the base form as a case-insensitive substring.
	Noun string

	// Gender matches exactly when set.
	Gender domain.Gender

	Page    int
	PerPage int
}

// NounStore defines the interface for noun data persistence.
type NounStore interface {
	// Create saves a new noun.
	// Returns ErrNounExists if the base form is already taken.
	Create(ctx context.Context, noun *domain.Noun) error

	// GetByID retrieves a noun by its unique ID.
	// Returns ErrNounNotFound if the noun does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Noun, error)

	// GetByNoun retrieves a noun by its unique base form.
	// Returns ErrNounNotFound if the noun does not exist.
	GetByNoun(ctx context.Context, noun string) (*domain.Noun, error)

	// List returns nouns matching the filter plus the total match count
	// before pagination.
	List(ctx context.Context, filter NounFilter) ([]*domain.Noun, int, error)

	// Update modifies an existing noun.
	// Returns ErrNounNotFound if the noun does not exist and
	// ErrNounExists if the new base form is taken.
	Update(ctx context.Context, noun *domain.Noun) error

	// Delete removes a noun. Group memberships are removed by cascade.
	// Returns ErrNounNotFound if the noun does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new NounStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) NounStore
}
