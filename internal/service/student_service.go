package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
	"github.com/ruslex/ruslex-api/internal/service/authz"
	"github.com/ruslex/ruslex-api/internal/store"
)

// StudentProgress summarizes a linked student's study activity: how many
// groups they keep and how many lexicon items those groups track.
type StudentProgress struct {
	StudentID    uuid.UUID `json:"student_id"`
	VerbGroups   int       `json:"verb_groups"`
	NounGroups   int       `json:"noun_groups"`
	VerbsTracked int       `json:"verbs_tracked"`
	NounsTracked int       `json:"nouns_tracked"`
}

// StudentService provides teacher-side operations on the student roster.
type StudentService interface {
	// ListStudents returns the students linked to the principal.
	ListStudents(ctx context.Context, p authz.Principal) ([]*domain.User, error)

	// Link attaches a student to the principal. A student can be linked
	// to at most one teacher at a time.
	Link(ctx context.Context, p authz.Principal, studentID uuid.UUID) error

	// Unlink detaches a student from the principal.
	Unlink(ctx context.Context, p authz.Principal, studentID uuid.UUID) error

	// Progress reports study activity for a student linked to the
	// principal. Admins may inspect any student.
	Progress(ctx context.Context, p authz.Principal, studentID uuid.UUID) (*StudentProgress, error)
}

type studentServiceImpl struct {
	users      store.UserStore
	links      store.StudentLinkStore
	verbGroups store.VerbGroupStore
	nounGroups store.NounGroupStore
	logger     *slog.Logger
}

// NewStudentService creates a new StudentService.
// It returns an error if any of the required dependencies are nil.
func NewStudentService(
	users store.UserStore,
	links store.StudentLinkStore,
	verbGroups store.VerbGroupStore,
	nounGroups store.NounGroupStore,
	logger *slog.Logger,
) (StudentService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if links == nil {
		return nil, domain.NewValidationError("links", "cannot be nil", domain.ErrValidation)
	}
	if verbGroups == nil {
		return nil, domain.NewValidationError("verbGroups", "cannot be nil", domain.ErrValidation)
	}
	if nounGroups == nil {
		return nil, domain.NewValidationError("nounGroups", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &studentServiceImpl{
		users:      users,
		links:      links,
		verbGroups: verbGroups,
		nounGroups: nounGroups,
		logger:     logger.With(slog.String("component", "student_service")),
	}, nil
}

// ListStudents implements StudentService.ListStudents.
func (s *studentServiceImpl) ListStudents(ctx context.Context, p authz.Principal) ([]*domain.User, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceStudentLink) {
		return nil, domain.ErrForbidden
	}
	return s.links.ListStudents(ctx, p.ID)
}

// Link implements StudentService.Link.
func (s *studentServiceImpl) Link(ctx context.Context, p authz.Principal, studentID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !authz.Allowed(p.Role, authz.ActionCreate, authz.ResourceStudentLink) {
		return domain.ErrForbidden
	}

	target, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if target.Role != domain.RoleStudent {
		log.Warn("link target is not a student",
			slog.String("target_id", studentID.String()),
			slog.String("target_role", string(target.Role)))
		return ErrNotAStudent
	}

	if err := s.links.Link(ctx, studentID, p.ID); err != nil {
		return err
	}

	log.Info("student linked to teacher",
		slog.String("student_id", studentID.String()),
		slog.String("teacher_id", p.ID.String()))
	return nil
}

// Unlink implements StudentService.Unlink.
func (s *studentServiceImpl) Unlink(ctx context.Context, p authz.Principal, studentID uuid.UUID) error {
	if !authz.Allowed(p.Role, authz.ActionDelete, authz.ResourceStudentLink) {
		return domain.ErrForbidden
	}
	return s.links.Unlink(ctx, studentID, p.ID)
}

// Progress implements StudentService.Progress.
func (s *studentServiceImpl) Progress(
	ctx context.Context,
	p authz.Principal,
	studentID uuid.UUID,
) (*StudentProgress, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceStudentLink) {
		return nil, domain.ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	if p.Role != domain.RoleAdmin {
		linked, err := s.links.IsLinked(ctx, studentID, p.ID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, ErrNotLinked
		}
	}

	progress := &StudentProgress{StudentID: studentID}

	verbGroups, err := s.verbGroups.ListByOwner(ctx, studentID)
	if err != nil {
		return nil, err
	}
	progress.VerbGroups = len(verbGroups)
	for _, group := range verbGroups {
		verbs, err := s.verbGroups.ListVerbs(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		progress.VerbsTracked += len(verbs)
	}

	nounGroups, err := s.nounGroups.ListByOwner(ctx, studentID)
	if err != nil {
		return nil, err
	}
	progress.NounGroups = len(nounGroups)
	for _, group := range nounGroups {
		nouns, err := s.nounGroups.ListNouns(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		progress.NounsTracked += len(nouns)
	}

	return progress, nil
}
