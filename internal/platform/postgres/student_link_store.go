package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
	"github.com/ruslex/ruslex-api/internal/store"
)

// StudentLinkStore implements store.StudentLinkStore on PostgreSQL.
// The student_teacher_links table has its primary key on student_id,
// which is what enforces the one-teacher-per-student rule.
type StudentLinkStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStudentLinkStore creates a PostgreSQL implementation of
// store.StudentLinkStore. If logger is nil, the process default is used.
func NewStudentLinkStore(db store.DBTX, logger *slog.Logger) *StudentLinkStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentLinkStore{
		db:     db,
		logger: logger.With(slog.String("component", "student_link_store")),
	}
}

var _ store.StudentLinkStore = (*StudentLinkStore)(nil)

// Link implements store.StudentLinkStore.Link.
func (s *StudentLinkStore) Link(ctx context.Context, studentID, teacherID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO student_teacher_links (student_id, teacher_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, studentID, teacherID, time.Now().UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("student already linked to a teacher",
				slog.String("student_id", studentID.String()))
			return store.ErrStudentAlreadyLinked
		}
		if IsForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to link student",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()),
			slog.String("teacher_id", teacherID.String()))
		return MapError(err)
	}

	log.Info("student linked",
		slog.String("student_id", studentID.String()),
		slog.String("teacher_id", teacherID.String()))
	return nil
}

// Unlink implements store.StudentLinkStore.Unlink.
func (s *StudentLinkStore) Unlink(ctx context.Context, studentID, teacherID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM student_teacher_links WHERE student_id = $1 AND teacher_id = $2`
	result, err := s.db.ExecContext(ctx, query, studentID, teacherID)
	if err != nil {
		log.Error("failed to unlink student",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()),
			slog.String("teacher_id", teacherID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLinkNotFound); err != nil {
		return err
	}

	log.Info("student unlinked",
		slog.String("student_id", studentID.String()),
		slog.String("teacher_id", teacherID.String()))
	return nil
}

// IsLinked implements store.StudentLinkStore.IsLinked.
func (s *StudentLinkStore) IsLinked(ctx context.Context, studentID, teacherID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM student_teacher_links
			WHERE student_id = $1 AND teacher_id = $2
		)
	`
	var linked bool
	if err := s.db.QueryRowContext(ctx, query, studentID, teacherID).Scan(&linked); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to check student link", slog.String("error", err.Error()))
		return false, err
	}
	return linked, nil
}

// TeacherFor implements store.StudentLinkStore.TeacherFor.
func (s *StudentLinkStore) TeacherFor(ctx context.Context, studentID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT teacher_id FROM student_teacher_links WHERE student_id = $1`
	var teacherID uuid.UUID
	err := s.db.QueryRowContext(ctx, query, studentID).Scan(&teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, store.ErrLinkNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to get linked teacher", slog.String("error", err.Error()))
		return uuid.Nil, err
	}
	return teacherID, nil
}

// ListStudents implements store.StudentLinkStore.ListStudents.
func (s *StudentLinkStore) ListStudents(ctx context.Context, teacherID uuid.UUID) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.id, u.name, u.username, u.email, u.hashed_password, u.role,
		       u.language, u.country, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN student_teacher_links l ON l.student_id = u.id
		WHERE l.teacher_id = $1
		ORDER BY u.name
	`
	rows, err := s.db.QueryContext(ctx, query, teacherID)
	if err != nil {
		log.Error("failed to list linked students",
			slog.String("error", err.Error()),
			slog.String("teacher_id", teacherID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	students := []*domain.User{}
	for rows.Next() {
		student, err := scanUserRow(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
