package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Group validation errors.
var (
	ErrGroupIDEmpty      = errors.New("group ID cannot be empty")
	ErrGroupNameEmpty    = errors.New("group name cannot be empty")
	ErrGroupOwnerIDEmpty = errors.New("group owner ID cannot be empty")
)

// VerbGroup is a named collection of verbs owned by exactly one user.
// Membership is a set: the join table has a composite primary key, so a
// verb appears in a group at most once.
type VerbGroup struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Verbs holds the member verbs when the group is loaded with its
	// contents (single-group reads); nil on list responses.
	Verbs []*Verb `json:"verbs,omitempty"`
}

// NewVerbGroup creates a new VerbGroup owned by the given user.
// Returns an error if validation fails.
func NewVerbGroup(name string, ownerID uuid.UUID) (*VerbGroup, error) {
	now := time.Now().UTC()
	group := &VerbGroup{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the VerbGroup has valid data.
func (g *VerbGroup) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGroupIDEmpty
	}
	if g.Name == "" {
		return ErrGroupNameEmpty
	}
	if g.OwnerID == uuid.Nil {
		return ErrGroupOwnerIDEmpty
	}
	return nil
}

// NounGroup is a named collection of nouns owned by exactly one user.
type NounGroup struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Nouns []*Noun `json:"nouns,omitempty"`
}

// NewNounGroup creates a new NounGroup owned by the given user.
// Returns an error if validation fails.
func NewNounGroup(name string, ownerID uuid.UUID) (*NounGroup, error) {
	now := time.Now().UTC()
	group := &NounGroup{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the NounGroup has valid data.
func (g *NounGroup) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGroupIDEmpty
	}
	if g.Name == "" {
		return ErrGroupNameEmpty
	}
	if g.OwnerID == uuid.Nil {
		return ErrGroupOwnerIDEmpty
	}
	return nil
}
