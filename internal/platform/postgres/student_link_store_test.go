package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/store"
)

func TestStudentLinkStoreLink(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewStudentLinkStore(db, nil)
		studentID, teacherID := uuid.New(), uuid.New()

		mock.ExpectExec("INSERT INTO student_teacher_links").
			WithArgs(studentID, teacherID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Link(context.Background(), studentID, teacherID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already linked", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewStudentLinkStore(db, nil)

		// The primary key on student_id fires regardless of which teacher
		// holds the existing link.
		mock.ExpectExec("INSERT INTO student_teacher_links").
			WillReturnError(uniqueViolation("student_teacher_links_pkey"))

		err := s.Link(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrStudentAlreadyLinked)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewStudentLinkStore(db, nil)

		mock.ExpectExec("INSERT INTO student_teacher_links").
			WillReturnError(foreignKeyViolation("student_teacher_links_student_id_fkey"))

		err := s.Link(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestStudentLinkStoreUnlink(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewStudentLinkStore(db, nil)
	studentID, teacherID := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM student_teacher_links").
		WithArgs(studentID, teacherID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, s.Unlink(context.Background(), studentID, teacherID))

	mock.ExpectExec("DELETE FROM student_teacher_links").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.Unlink(context.Background(), studentID, teacherID)
	assert.ErrorIs(t, err, store.ErrLinkNotFound)
}

func TestStudentLinkStoreIsLinked(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewStudentLinkStore(db, nil)
	studentID, teacherID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(studentID, teacherID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	linked, err := s.IsLinked(context.Background(), studentID, teacherID)
	require.NoError(t, err)
	assert.True(t, linked)
}

func TestStudentLinkStoreTeacherFor(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewStudentLinkStore(db, nil)
	studentID, teacherID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT teacher_id FROM student_teacher_links").
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id"}).AddRow(teacherID.String()))

	got, err := s.TeacherFor(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, teacherID, got)

	mock.ExpectQuery("SELECT teacher_id FROM student_teacher_links").
		WillReturnError(sql.ErrNoRows)

	_, err = s.TeacherFor(context.Background(), studentID)
	assert.ErrorIs(t, err, store.ErrLinkNotFound)
}

func TestStudentLinkStoreListStudents(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewStudentLinkStore(db, nil)
	teacherID := uuid.New()
	student := testUser(t)

	mock.ExpectQuery("SELECT (.+) FROM users u").
		WithArgs(teacherID).
		WillReturnRows(userRows(student))

	students, err := s.ListStudents(context.Background(), teacherID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)
}
