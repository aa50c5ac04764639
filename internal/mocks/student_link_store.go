package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/store"
)

// MockStudentLinkStore implements store.StudentLinkStore for testing.
type MockStudentLinkStore struct {
	LinkFn         func(ctx context.Context, studentID, teacherID uuid.UUID) error
	UnlinkFn       func(ctx context.Context, studentID, teacherID uuid.UUID) error
	IsLinkedFn     func(ctx context.Context, studentID, teacherID uuid.UUID) (bool, error)
	TeacherForFn   func(ctx context.Context, studentID uuid.UUID) (uuid.UUID, error)
	ListStudentsFn func(ctx context.Context, teacherID uuid.UUID) ([]*domain.User, error)

	// Links backs the default implementations: student ID to teacher ID.
	// Students optionally carries the user records returned by
	// ListStudents, keyed by student ID.
	Links    map[uuid.UUID]uuid.UUID
	Students map[uuid.UUID]*domain.User
}

// NewMockStudentLinkStore creates a mock store with empty backing maps.
func NewMockStudentLinkStore() *MockStudentLinkStore {
	return &MockStudentLinkStore{
		Links:    make(map[uuid.UUID]uuid.UUID),
		Students: make(map[uuid.UUID]*domain.User),
	}
}

var _ store.StudentLinkStore = (*MockStudentLinkStore)(nil)

func (m *MockStudentLinkStore) Link(ctx context.Context, studentID, teacherID uuid.UUID) error {
	if m.LinkFn != nil {
		return m.LinkFn(ctx, studentID, teacherID)
	}
	if _, linked := m.Links[studentID]; linked {
		return store.ErrStudentAlreadyLinked
	}
	m.Links[studentID] = teacherID
	return nil
}

func (m *MockStudentLinkStore) Unlink(ctx context.Context, studentID, teacherID uuid.UUID) error {
	if m.UnlinkFn != nil {
		return m.UnlinkFn(ctx, studentID, teacherID)
	}
	if m.Links[studentID] != teacherID {
		return store.ErrLinkNotFound
	}
	delete(m.Links, studentID)
	return nil
}

func (m *MockStudentLinkStore) IsLinked(
	ctx context.Context,
	studentID, teacherID uuid.UUID,
) (bool, error) {
	if m.IsLinkedFn != nil {
		return m.IsLinkedFn(ctx, studentID, teacherID)
	}
	return m.Links[studentID] == teacherID, nil
}

func (m *MockStudentLinkStore) TeacherFor(
	ctx context.Context,
	studentID uuid.UUID,
) (uuid.UUID, error) {
	if m.TeacherForFn != nil {
		return m.TeacherForFn(ctx, studentID)
	}
	if teacherID, linked := m.Links[studentID]; linked {
		return teacherID, nil
	}
	return uuid.Nil, store.ErrLinkNotFound
}

func (m *MockStudentLinkStore) ListStudents(
	ctx context.Context,
	teacherID uuid.UUID,
) ([]*domain.User, error) {
	if m.ListStudentsFn != nil {
		return m.ListStudentsFn(ctx, teacherID)
	}
	students := []*domain.User{}
	for studentID, linkedTeacher := range m.Links {
		if linkedTeacher != teacherID {
			continue
		}
		if student, ok := m.Students[studentID]; ok {
			students = append(students, student)
		}
	}
	return students, nil
}
