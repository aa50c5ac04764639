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

// NounGroupService provides study group operations over nouns,
// mirroring VerbGroupService.
type NounGroupService interface {
	Create(ctx context.Context, p authz.Principal, name string) (*domain.NounGroup, error)
	Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.NounGroup, error)
	List(ctx context.Context, p authz.Principal) ([]*domain.NounGroup, error)
	Rename(ctx context.Context, p authz.Principal, id uuid.UUID, name string) (*domain.NounGroup, error)
	Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error

	// AddNoun adds a noun to the group; idempotent.
	AddNoun(ctx context.Context, p authz.Principal, groupID, nounID uuid.UUID) error

	// RemoveNoun removes a noun from the group; no-op if not a member.
	RemoveNoun(ctx context.Context, p authz.Principal, groupID, nounID uuid.UUID) error
}

type nounGroupServiceImpl struct {
	groups store.NounGroupStore
	nouns  store.NounStore
	links  store.StudentLinkStore
	logger *slog.Logger
}

// NewNounGroupService creates a new NounGroupService.
// It returns an error if any of the required dependencies are nil.
func NewNounGroupService(
	groups store.NounGroupStore,
	nouns store.NounStore,
	links store.StudentLinkStore,
	logger *slog.Logger,
) (NounGroupService, error) {
	if groups == nil {
		return nil, domain.NewValidationError("groups", "cannot be nil", domain.ErrValidation)
	}
	if nouns == nil {
		return nil, domain.NewValidationError("nouns", "cannot be nil", domain.ErrValidation)
	}
	if links == nil {
		return nil, domain.NewValidationError("links", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &nounGroupServiceImpl{
		groups: groups,
		nouns:  nouns,
		links:  links,
		logger: logger.With(slog.String("component", "noun_group_service")),
	}, nil
}

// Create implements NounGroupService.Create.
func (s *nounGroupServiceImpl) Create(
	ctx context.Context,
	p authz.Principal,
	name string,
) (*domain.NounGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !authz.Allowed(p.Role, authz.ActionCreate, authz.ResourceGroup) {
		return nil, domain.ErrForbidden
	}

	group, err := domain.NewNounGroup(name, p.ID)
	if err != nil {
		return nil, err
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	log.Info("noun group created",
		slog.String("group_id", group.ID.String()),
		slog.String("owner_id", p.ID.String()))
	return group, nil
}

// Get implements NounGroupService.Get.
func (s *nounGroupServiceImpl) Get(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (*domain.NounGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, p, group.OwnerID); err != nil {
		return nil, err
	}

	nouns, err := s.groups.ListNouns(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Nouns = nouns
	return group, nil
}

// List implements NounGroupService.List.
func (s *nounGroupServiceImpl) List(ctx context.Context, p authz.Principal) ([]*domain.NounGroup, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceGroup) {
		return nil, domain.ErrForbidden
	}
	if p.Role == domain.RoleAdmin {
		return s.groups.ListAll(ctx)
	}
	return s.groups.ListByOwner(ctx, p.ID)
}

// Rename implements NounGroupService.Rename.
func (s *nounGroupServiceImpl) Rename(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	name string,
) (*domain.NounGroup, error) {
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

// Delete implements NounGroupService.Delete.
func (s *nounGroupServiceImpl) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if _, err := s.ownedGroup(ctx, p, id); err != nil {
		return err
	}
	return s.groups.Delete(ctx, id)
}

// AddNoun implements NounGroupService.AddNoun.
func (s *nounGroupServiceImpl) AddNoun(
	ctx context.Context,
	p authz.Principal,
	groupID, nounID uuid.UUID,
) error {
	if _, err := s.ownedGroup(ctx, p, groupID); err != nil {
		return err
	}
	if _, err := s.nouns.GetByID(ctx, nounID); err != nil {
		return err
	}
	return s.groups.AddNoun(ctx, groupID, nounID)
}

// RemoveNoun implements NounGroupService.RemoveNoun.
func (s *nounGroupServiceImpl) RemoveNoun(
	ctx context.Context,
	p authz.Principal,
	groupID, nounID uuid.UUID,
) error {
	if _, err := s.ownedGroup(ctx, p, groupID); err != nil {
		return err
	}
	return s.groups.RemoveNoun(ctx, groupID, nounID)
}

func (s *nounGroupServiceImpl) ownedGroup(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (*domain.NounGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessOwned(p, group.OwnerID) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("noun group access denied",
			slog.String("group_id", id.String()),
			slog.String("user_id", p.ID.String()))
		return nil, ErrNotOwned
	}
	return group, nil
}

func (s *nounGroupServiceImpl) checkReadAccess(
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
