package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/store"
)

// MockVerbGroupStore implements store.VerbGroupStore for testing.
type MockVerbGroupStore struct {
	CreateFn      func(ctx context.Context, group *domain.VerbGroup) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.VerbGroup, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.VerbGroup, error)
	ListAllFn     func(ctx context.Context) ([]*domain.VerbGroup, error)
	UpdateFn      func(ctx context.Context, group *domain.VerbGroup) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	AddVerbFn     func(ctx context.Context, groupID, verbID uuid.UUID) error
	RemoveVerbFn  func(ctx context.Context, groupID, verbID uuid.UUID) error
	ListVerbsFn   func(ctx context.Context, groupID uuid.UUID) ([]*domain.Verb, error)

	// Groups and Members back the default implementations. Members maps
	// a group ID to its member verbs.
	Groups  map[uuid.UUID]*domain.VerbGroup
	Members map[uuid.UUID][]*domain.Verb
}

// NewMockVerbGroupStore creates a mock store with empty backing maps.
func NewMockVerbGroupStore() *MockVerbGroupStore {
	return &MockVerbGroupStore{
		Groups:  make(map[uuid.UUID]*domain.VerbGroup),
		Members: make(map[uuid.UUID][]*domain.Verb),
	}
}

// Add stores a group in the backing map and returns it for chaining.
func (m *MockVerbGroupStore) Add(group *domain.VerbGroup) *domain.VerbGroup {
	m.Groups[group.ID] = group
	return group
}

var _ store.VerbGroupStore = (*MockVerbGroupStore)(nil)

func (m *MockVerbGroupStore) Create(ctx context.Context, group *domain.VerbGroup) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, group)
	}
	m.Groups[group.ID] = group
	return nil
}

func (m *MockVerbGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerbGroup, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if group, ok := m.Groups[id]; ok {
		return group, nil
	}
	return nil, store.ErrGroupNotFound
}

func (m *MockVerbGroupStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.VerbGroup, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	groups := []*domain.VerbGroup{}
	for _, group := range m.Groups {
		if group.OwnerID == ownerID {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func (m *MockVerbGroupStore) ListAll(ctx context.Context) ([]*domain.VerbGroup, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	groups := []*domain.VerbGroup{}
	for _, group := range m.Groups {
		groups = append(groups, group)
	}
	return groups, nil
}

func (m *MockVerbGroupStore) Update(ctx context.Context, group *domain.VerbGroup) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, group)
	}
	if _, ok := m.Groups[group.ID]; !ok {
		return store.ErrGroupNotFound
	}
	m.Groups[group.ID] = group
	return nil
}

func (m *MockVerbGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Groups[id]; !ok {
		return store.ErrGroupNotFound
	}
	delete(m.Groups, id)
	delete(m.Members, id)
	return nil
}

func (m *MockVerbGroupStore) AddVerb(ctx context.Context, groupID, verbID uuid.UUID) error {
	if m.AddVerbFn != nil {
		return m.AddVerbFn(ctx, groupID, verbID)
	}
	for _, member := range m.Members[groupID] {
		if member.ID == verbID {
			return nil
		}
	}
	m.Members[groupID] = append(m.Members[groupID], &domain.Verb{ID: verbID})
	return nil
}

func (m *MockVerbGroupStore) RemoveVerb(ctx context.Context, groupID, verbID uuid.UUID) error {
	if m.RemoveVerbFn != nil {
		return m.RemoveVerbFn(ctx, groupID, verbID)
	}
	members := m.Members[groupID]
	for i, member := range members {
		if member.ID == verbID {
			m.Members[groupID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockVerbGroupStore) ListVerbs(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Verb, error) {
	if m.ListVerbsFn != nil {
		return m.ListVerbsFn(ctx, groupID)
	}
	return m.Members[groupID], nil
}

// MockNounGroupStore implements store.NounGroupStore for testing.
type MockNounGroupStore struct {
	CreateFn      func(ctx context.Context, group *domain.NounGroup) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.NounGroup, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.NounGroup, error)
	ListAllFn     func(ctx context.Context) ([]*domain.NounGroup, error)
	UpdateFn      func(ctx context.Context, group *domain.NounGroup) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	AddNounFn     func(ctx context.Context, groupID, nounID uuid.UUID) error
	RemoveNounFn  func(ctx context.Context, groupID, nounID uuid.UUID) error
	ListNounsFn   func(ctx context.Context, groupID uuid.UUID) ([]*domain.Noun, error)

	Groups  map[uuid.UUID]*domain.NounGroup
	Members map[uuid.UUID][]*domain.Noun
}

// NewMockNounGroupStore creates a mock store with empty backing maps.
func NewMockNounGroupStore() *MockNounGroupStore {
	return &MockNounGroupStore{
		Groups:  make(map[uuid.UUID]*domain.NounGroup),
		Members: make(map[uuid.UUID][]*domain.Noun),
	}
}

// Add stores a group in the backing map and returns it for chaining.
func (m *MockNounGroupStore) Add(group *domain.NounGroup) *domain.NounGroup {
	m.Groups[group.ID] = group
	return group
}

var _ store.NounGroupStore = (*MockNounGroupStore)(nil)

func (m *MockNounGroupStore) Create(ctx context.Context, group *domain.NounGroup) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, group)
	}
	m.Groups[group.ID] = group
	return nil
}

func (m *MockNounGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.NounGroup, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if group, ok := m.Groups[id]; ok {
		return group, nil
	}
	return nil, store.ErrGroupNotFound
}

func (m *MockNounGroupStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.NounGroup, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	groups := []*domain.NounGroup{}
	for _, group := range m.Groups {
		if group.OwnerID == ownerID {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func (m *MockNounGroupStore) ListAll(ctx context.Context) ([]*domain.NounGroup, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	groups := []*domain.NounGroup{}
	for _, group := range m.Groups {
		groups = append(groups, group)
	}
	return groups, nil
}

func (m *MockNounGroupStore) Update(ctx context.Context, group *domain.NounGroup) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, group)
	}
	if _, ok := m.Groups[group.ID]; !ok {
		return store.ErrGroupNotFound
	}
	m.Groups[group.ID] = group
	return nil
}

func (m *MockNounGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Groups[id]; !ok {
		return store.ErrGroupNotFound
	}
	delete(m.Groups, id)
	delete(m.Members, id)
	return nil
}

func (m *MockNounGroupStore) AddNoun(ctx context.Context, groupID, nounID uuid.UUID) error {
	if m.AddNounFn != nil {
		return m.AddNounFn(ctx, groupID, nounID)
	}
	for _, member := range m.Members[groupID] {
		if member.ID == nounID {
			return nil
		}
	}
	m.Members[groupID] = append(m.Members[groupID], &domain.Noun{ID: nounID})
	return nil
}

func (m *MockNounGroupStore) RemoveNoun(ctx context.Context, groupID, nounID uuid.UUID) error {
	if m.RemoveNounFn != nil {
		return m.RemoveNounFn(ctx, groupID, nounID)
	}
	members := m.Members[groupID]
	for i, member := range members {
		if member.ID == nounID {
			m.Members[groupID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockNounGroupStore) ListNouns(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Noun, error) {
	if m.ListNounsFn != nil {
		return m.ListNounsFn(ctx, groupID)
	}
	return m.Members[groupID], nil
}
