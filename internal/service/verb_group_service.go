package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
	"github.com/ruslex/ruslex-api/internal/service/authz"
	"github.com/ruslex/ruslex-api/internal/store"
)

// VerbGroupService provides study group operations over verbs.
type VerbGroupService interface {
	// Create makes a new group owned by the principal.
	Create(ctx context.Context, p authz.Principal, name string) (*domain.VerbGroup, error)

	// Get retrieves a group with its member verbs. Owners and admins may
	// read any of their groups; a student may additionally read groups
	// owned by their linked teacher.
	Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.VerbGroup, error)

	// List returns the principal's groups, without members. Admins see
	// every group.
	List(ctx context.Context, p authz.Principal) ([]*domain.VerbGroup, error)

	// Rename changes a group's name. Owner or admin only.
	Rename(ctx context.Context, p authz.Principal, id uuid.UUID, name string) (*domain.VerbGroup, error)

	// Delete removes a group and its memberships; member verbs are left
	// intact. Owner or admin only.
	Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error

	// AddVerb adds a verb to the group; idempotent.
	AddVerb(ctx context.Context, p authz.Principal, groupID, verbID uuid.UUID) error

	// RemoveVerb removes a verb from the group; no-op if not a member.
	RemoveVerb(ctx context.Context, p authz.Principal, groupID, verbID uuid.UUID) error
}

type verbGroupServiceImpl struct {
	groups store.VerbGroupStore
	verbs  store.VerbStore
	links  store.StudentLinkStore
	logger *slog.Logger
}

// NewVerbGroupService creates a new VerbGroupService.
// It returns an error if any of the required dependencies are nil.
func NewVerbGroupService(
	groups store.VerbGroupStore,
	verbs store.VerbStore,
	links store.StudentLinkStore,
	logger *slog.Logger,
) (VerbGroupService, error) {
	if groups == nil {
		return nil, domain.NewValidationError("groups", "cannot be nil", domain.ErrValidation)
	}
	if verbs == nil {
		return nil, domain.NewValidationError("verbs", "cannot be nil", domain.ErrValidation)
	}
	if links == nil {
		return nil, domain.NewValidationError("links", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &verbGroupServiceImpl{
		groups: groups,
		verbs:  verbs,
		links:  links,
		logger: logger.With(slog.String("component", "verb_group_service")),
	}, nil
}

// Create implements VerbGroupService.Create.
func (s *verbGroupServiceImpl) Create(
	ctx context.Context,
	p authz.Principal,
	name string,
) (*domain.VerbGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !authz.Allowed(p.Role, authz.ActionCreate, authz.ResourceGroup) {
		return nil, domain.ErrForbidden
	}

	group, err := domain.NewVerbGroup(name, p.ID)
	if err != nil {
		return nil, err
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	log.Info("verb group created",
		slog.String("group_id", group.ID.String()),
		slog.String("owner_id", p.ID.String()))
	return group, nil
}

// Get implements VerbGroupService.Get.
func (s *verbGroupServiceImpl) Get(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (*domain.VerbGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, p, group.OwnerID); err != nil {
		return nil, err
	}

	verbs, err := s.groups.ListVerbs(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Verbs = verbs
	return group, nil
}

// List implements VerbGroupService.List.
func (s *verbGroupServiceImpl) List(ctx context.Context, p authz.Principal) ([]*domain.VerbGroup, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceGroup) {
		return nil, domain.ErrForbidden
	}
	if p.Role == domain.RoleAdmin {
		return s.groups.ListAll(ctx)
	}
	return s.groups.ListByOwner(ctx, p.ID)
}

// Rename implements VerbGroupService.Rename.
func (s *verbGroupServiceImpl) Rename(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	name string,
) (*domain.VerbGroup, error) {
	group, err := s.ownedGroup(ctx, p, id)
	if err != nil {
		return nil, err
	}

	group.Name = name
	if err := group.Validate(); err != nil {
		return nil, err
	}
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete implements VerbGroupService.Delete.
func (s *verbGroupServiceImpl) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if _, err := s.ownedGroup(ctx, p, id); err != nil {
		return err
	}
	return s.groups.Delete(ctx, id)
}

// AddVerb implements VerbGroupService.AddVerb.
func (s *verbGroupServiceImpl) AddVerb(
	ctx context.Context,
	p authz.Principal,
	groupID, verbID uuid.UUID,
) error {
	if _, err := s.ownedGroup(ctx, p, groupID); err != nil {
		return err
	}
	if _, err := s.verbs.GetByID(ctx, verbID); err != nil {
		return err
	}
	return s.groups.AddVerb(ctx, groupID, verbID)
}

// RemoveVerb implements VerbGroupService.RemoveVerb.
func (s *verbGroupServiceImpl) RemoveVerb(
	ctx context.Context,
	p authz.Principal,
	groupID, verbID uuid.UUID,
) error {
	if _, err := s.ownedGroup(ctx, p, groupID); err != nil {
		return err
	}
	return s.groups.RemoveVerb(ctx, groupID, verbID)
}

// ownedGroup loads the group and enforces write access: owner or admin.
func (s *verbGroupServiceImpl) ownedGroup(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (*domain.VerbGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessOwned(p, group.OwnerID) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("verb group access denied",
			slog.String("group_id", id.String()),
			slog.String("user_id", p.ID.String()))
		return nil, ErrNotOwned
	}
	return group, nil
}

// checkReadAccess allows owners and admins, plus students reading a
// group owned by their linked teacher.
func (s *verbGroupServiceImpl) checkReadAccess(
	ctx context.Context,
	p authz.Principal,
	ownerID uuid.UUID,
) error {
	if authz.CanAccessOwned(p, ownerID) {
		return nil
	}
	if p.Role == domain.RoleStudent {
		teacherID, err := s.links.TeacherFor(ctx, p.ID)
		if err != nil && !errors.Is(err, store.ErrLinkNotFound) {
			return err
		}
		if err == nil && teacherID == ownerID {
			return nil
		}
	}
	return ErrNotOwned
}
