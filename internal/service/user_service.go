package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
	"github.com/ruslex/ruslex-api/internal/service/auth"
	"github.com/ruslex/ruslex-api/internal/service/authz"
	"github.com/ruslex/ruslex-api/internal/store"
)

// UpdateUserInput carries the self-service profile fields. Nil pointers
// leave the stored value unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Language *string
	Country  *string
}

// UserService provides account operations beyond registration and login.
type UserService interface {
	// Me returns the principal's own account.
	Me(ctx context.Context, p authz.Principal) (*domain.User, error)

	// UpdateMe applies the given profile changes to the principal's own
	// account. A new password is re-hashed before storage.
	UpdateMe(ctx context.Context, p authz.Principal, input UpdateUserInput) (*domain.User, error)

	// Get retrieves any account by ID. Admins and teachers only.
	Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.User, error)

	// List pages through all accounts. Admins only.
	List(ctx context.Context, p authz.Principal, limit, offset int) ([]*domain.User, error)

	// Delete removes an account. Groups and student links owned by the
	// account go with it. Admins only.
	Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error
}

type userServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// Me implements UserService.Me.
func (s *userServiceImpl) Me(ctx context.Context, p authz.Principal) (*domain.User, error) {
	return s.users.GetByID(ctx, p.ID)
}

// UpdateMe implements UserService.UpdateMe.
func (s *userServiceImpl) UpdateMe(
	ctx context.Context,
	p authz.Principal,
	input UpdateUserInput,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Language != nil {
		user.Language = *input.Language
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.Password != nil {
		user.Password = *input.Password
		if err := user.Validate(); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return nil, err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user profile updated", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Get implements UserService.Get.
func (s *userServiceImpl) Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.User, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceUser) {
		return nil, domain.ErrForbidden
	}
	return s.users.GetByID(ctx, id)
}

// List implements UserService.List. Listing the whole account table is
// admin-scoped even though teachers may read individual accounts.
func (s *userServiceImpl) List(
	ctx context.Context,
	p authz.Principal,
	limit, offset int,
) ([]*domain.User, error) {
	if p.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx, limit, offset)
}

// Delete implements UserService.Delete.
func (s *userServiceImpl) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !authz.Allowed(p.Role, authz.ActionDelete, authz.ResourceUser) {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("user deleted",
		slog.String("user_id", id.String()),
		slog.String("deleted_by", p.ID.String()))
	return nil
}
