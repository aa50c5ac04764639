package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// VerbGroupStore defines the interface for verb group persistence,
// including the group-verb membership set.
type VerbGroupStore interface {
	// Create saves a new group.
	Create(ctx context.Context, group *domain.VerbGroup) error

	// GetByID retrieves a group by its unique ID, without members.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VerbGroup, error)

	// ListByOwner returns all groups owned by the given user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.VerbGroup, error)

	// ListAll returns every group. Reserved for admin listings.
	ListAll(ctx context.Context) ([]*domain.VerbGroup, error)

	// Update modifies an existing group's name.
	// Returns ErrGroupNotFound if the group does not exist.
	Update(ctx context.Context, group *domain.VerbGroup) error

	// Delete removes a group. Memberships are removed by cascade; the
	// member verbs themselves are left intact.
	// Returns ErrGroupNotFound if the group does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVerb adds a verb to the group's membership set. Adding a verb
	// that is already a member is a no-op, not an error.
	AddVerb(ctx context.Context, groupID, verbID uuid.UUID) error

	// RemoveVerb removes a verb from the group's membership set.
	// Removing a verb that is not a member is a no-op.
	RemoveVerb(ctx context.Context, groupID, verbID uuid.UUID) error

	// ListVerbs returns the member verbs of the group.
	ListVerbs(ctx context.Context, groupID uuid.UUID) ([]*domain.Verb, error)
}

// NounGroupStore defines the interface for noun group persistence,
// mirroring VerbGroupStore.
type NounGroupStore interface {
	Create(ctx context.Context, group *domain.NounGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NounGroup, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.NounGroup, error)
	ListAll(ctx context.Context) ([]*domain.NounGroup, error)
	Update(ctx context.Context, group *domain.NounGroup) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddNoun adds a noun to the group's membership set; idempotent.
	AddNoun(ctx context.Context, groupID, nounID uuid.UUID) error

	// RemoveNoun removes a noun from the membership set; no-op if absent.
	RemoveNoun(ctx context.Context, groupID, nounID uuid.UUID) error

	// ListNouns returns the member nouns of the group.
	ListNouns(ctx context.Context, groupID uuid.UUID) ([]*domain.Noun, error)
}
