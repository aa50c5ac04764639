package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
)

// StudentLinkStore defines the interface for the student-teacher link
// set. A student has at most one linked teacher; a teacher has many
// linked students.
type StudentLinkStore interface {
	// Link attaches a student to a teacher.
	// Returns ErrStudentAlreadyLinked if the student already has a
	// teacher.
	Link(ctx context.Context, studentID, teacherID uuid.UUID) error

	// Unlink detaches a student from the given teacher.
	// Returns ErrLinkNotFound if no such link exists.
	Unlink(ctx context.Context, studentID, teacherID uuid.UUID) error

	// IsLinked reports whether the student is linked to the teacher.
	IsLinked(ctx context.Context, studentID, teacherID uuid.UUID) (bool, error)

	// TeacherFor returns the ID of the student's linked teacher.
	// Returns ErrLinkNotFound if the student has no teacher.
	TeacherFor(ctx context.Context, studentID uuid.UUID) (uuid.UUID, error)

	// ListStudents returns the users linked to the given teacher.
	ListStudents(ctx context.Context, teacherID uuid.UUID) ([]*domain.User, error)
}
