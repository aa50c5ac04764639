package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// VerbFilter narrows and paginates verb listings. Zero values mean "no
// filter"; Page/PerPage are normalized by the implementation.
type VerbFilter struct {
	// PairID matches verb_pair_id as a case-insensitive substring.
	PairID string

	// ConjugationType matches exactly when 1 or 2.
	ConjugationType int

	Page    int
	PerPage int
}

// VerbStore defines the interface for verb data persistence.
type VerbStore interface {
	// Create saves a new verb.
	// Returns ErrVerbPairExists if the pair ID is already taken.
	Create(ctx context.Context, verb *domain.Verb) error

	// GetByID retrieves a verb by its unique ID.
	// Returns ErrVerbNotFound if the verb does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error)

	// GetByPairID retrieves a verb by its unique pair identifier.
	// Returns ErrVerbNotFound if the verb does not exist.
	GetByPairID(ctx context.Context, pairID string) (*domain.Verb, error)

	// List returns verbs matching the filter plus the total match count
	// before pagination.
	List(ctx context.Context, filter VerbFilter) ([]*domain.Verb, int, error)

	// Update modifies an existing verb.
	// Returns ErrVerbNotFound if the verb does not exist and
	// ErrVerbPairExists if the new pair ID is taken.
	Update(ctx context.Context, verb *domain.Verb) error

	// Delete removes a verb. Group memberships are removed by cascade.
	// Returns ErrVerbNotFound if the verb does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new VerbStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) VerbStore
}
