package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/store"
)

// MockNounStore implements store.NounStore for testing.
type MockNounStore struct {
	CreateFn    func(ctx context.Context, noun *domain.Noun) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Noun, error)
	GetByNounFn func(ctx context.Context, base string) (*domain.Noun, error)
	ListFn      func(ctx context.Context, filter store.NounFilter) ([]*domain.Noun, int, error)
	UpdateFn    func(ctx context.Context, noun *domain.Noun) error
	DeleteFn    func(ctx context.Context, id uuid.UUID) error

	// Nouns backs the default implementations, keyed by noun ID.
	Nouns map[uuid.UUID]*domain.Noun
}

// NewMockNounStore creates a mock store with an empty noun map.
func NewMockNounStore() *MockNounStore {
	return &MockNounStore{Nouns: make(map[uuid.UUID]*domain.Noun)}
}

// Add stores a noun in the backing map and returns it for chaining.
func (m *MockNounStore) Add(noun *domain.Noun) *domain.Noun {
	m.Nouns[noun.ID] = noun
	return noun
}

var _ store.NounStore = (*MockNounStore)(nil)

func (m *MockNounStore) Create(ctx context.Context, noun *domain.Noun) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, noun)
	}
	for _, existing := range m.Nouns {
		if existing.Noun == noun.Noun {
			return store.ErrNounExists
		}
	}
	m.Nouns[noun.ID] = noun
	return nil
}

func (m *MockNounStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Noun, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if noun, ok := m.Nouns[id]; ok {
		return noun, nil
	}
	return nil, store.ErrNounNotFound
}

func (m *MockNounStore) GetByNoun(ctx context.Context, base string) (*domain.Noun, error) {
	if m.GetByNounFn != nil {
		return m.GetByNounFn(ctx, base)
	}
	for _, noun := range m.Nouns {
		if noun.Noun == base {
			return noun, nil
		}
	}
	return nil, store.ErrNounNotFound
}

func (m *MockNounStore) List(
	ctx context.Context,
	filter store.NounFilter,
) ([]*domain.Noun, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	nouns := []*domain.Noun{}
	for _, noun := range m.Nouns {
		nouns = append(nouns, noun)
	}
	return nouns, len(nouns), nil
}

func (m *MockNounStore) Update(ctx context.Context, noun *domain.Noun) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, noun)
	}
	if _, ok := m.Nouns[noun.ID]; !ok {
		return store.ErrNounNotFound
	}
	m.Nouns[noun.ID] = noun
	return nil
}

func (m *MockNounStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Nouns[id]; !ok {
		return store.ErrNounNotFound
	}
	delete(m.Nouns, id)
	return nil
}

func (m *MockNounStore) WithTx(tx *sql.Tx) store.NounStore {
	return m
}
