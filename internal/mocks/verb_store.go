package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/store"
)

// MockVerbStore implements store.VerbStore for testing.
type MockVerbStore struct {
	CreateFn      func(ctx context.Context, verb *domain.Verb) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Verb, error)
	GetByPairIDFn func(ctx context.Context, pairID string) (*domain.Verb, error)
	ListFn        func(ctx context.Context, filter store.VerbFilter) ([]*domain.Verb, int, error)
	UpdateFn      func(ctx context.Context, verb *domain.Verb) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	// Verbs backs the default implementations, keyed by verb ID.
	Verbs map[uuid.UUID]*domain.Verb
}

// NewMockVerbStore creates a mock store with an empty verb map.
func NewMockVerbStore() *MockVerbStore {
	return &MockVerbStore{Verbs: make(map[uuid.UUID]*domain.Verb)}
}

// Add stores a verb in the backing map and returns it for chaining.
func (m *MockVerbStore) Add(verb *domain.Verb) *domain.Verb {
	m.Verbs[verb.ID] = verb
	return verb
}

var _ store.VerbStore = (*MockVerbStore)(nil)

func (m *MockVerbStore) Create(ctx context.Context, verb *domain.Verb) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, verb)
	}
	for _, existing := range m.Verbs {
		if existing.VerbPairID == verb.VerbPairID {
			return store.ErrVerbPairExists
		}
	}
	m.Verbs[verb.ID] = verb
	return nil
}

func (m *MockVerbStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if verb, ok := m.Verbs[id]; ok {
		return verb, nil
	}
	return nil, store.ErrVerbNotFound
}

func (m *MockVerbStore) GetByPairID(ctx context.Context, pairID string) (*domain.Verb, error) {
	if m.GetByPairIDFn != nil {
		return m.GetByPairIDFn(ctx, pairID)
	}
	for _, verb := range m.Verbs {
		if verb.VerbPairID == pairID {
			return verb, nil
		}
	}
	return nil, store.ErrVerbNotFound
}

func (m *MockVerbStore) List(
	ctx context.Context,
	filter store.VerbFilter,
) ([]*domain.Verb, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	verbs := []*domain.Verb{}
	for _, verb := range m.Verbs {
		verbs = append(verbs, verb)
	}
	return verbs, len(verbs), nil
}

func (m *MockVerbStore) Update(ctx context.Context, verb *domain.Verb) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, verb)
	}
	if _, ok := m.Verbs[verb.ID]; !ok {
		return store.ErrVerbNotFound
	}
	m.Verbs[verb.ID] = verb
	return nil
}

func (m *MockVerbStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Verbs[id]; !ok {
		return store.ErrVerbNotFound
	}
	delete(m.Verbs, id)
	return nil
}

func (m *MockVerbStore) WithTx(tx *sql.Tx) store.VerbStore {
	return m
}
