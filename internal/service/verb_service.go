package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
	"github.com/ruslex/ruslex-api/internal/service/authz"
	"github.com/ruslex/ruslex-api/internal/store"
)

// VerbInput carries the writable fields of a verb, as decoded from a
// create or update request.
type VerbInput struct {
	PairID          string
	ConjugationType int
	Root            string
	StressPattern   string
	Translations    json.RawMessage
	Imperfective    json.RawMessage
	Perfective      json.RawMessage
}

// VerbService provides verb lexicon operations.
type VerbService interface {
	// List returns verbs matching the filter plus the total match count.
	List(ctx context.Context, p authz.Principal, filter store.VerbFilter) ([]*domain.Verb, int, error)

	// Get retrieves a verb by ID.
	Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.Verb, error)

	// GetByPairID retrieves a verb by its unique pair identifier.
	GetByPairID(ctx context.Context, p authz.Principal, pairID string) (*domain.Verb, error)

	// Conjugations returns the verb's stored forms regrouped by aspect
	// and tense.
	Conjugations(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.ConjugationSet, error)

	// Create adds a new verb to the lexicon.
	Create(ctx context.Context, p authz.Principal, input VerbInput) (*domain.Verb, error)

	// Update replaces the writable fields of an existing verb.
	Update(ctx context.Context, p authz.Principal, id uuid.UUID, input VerbInput) (*domain.Verb, error)

	// Delete removes a verb and its group memberships.
	Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error
}

type verbServiceImpl struct {
	verbs  store.VerbStore
	logger *slog.Logger
}

// NewVerbService creates a new VerbService.
// It returns an error if any of the required dependencies are nil.
func NewVerbService(verbs store.VerbStore, logger *slog.Logger) (VerbService, error) {
	if verbs == nil {
		return nil, domain.NewValidationError("verbs", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &verbServiceImpl{
		verbs:  verbs,
		logger: logger.With(slog.String("component", "verb_service")),
	}, nil
}

// List implements VerbService.List.
func (s *verbServiceImpl) List(
	ctx context.Context,
	p authz.Principal,
	filter store.VerbFilter,
) ([]*domain.Verb, int, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceLexicon) {
		return nil, 0, domain.ErrForbidden
	}

	verbs, total, err := s.verbs.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("listing verbs: %w", err)
	}
	return verbs, total, nil
}

// Get implements VerbService.Get.
func (s *verbServiceImpl) Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.Verb, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceLexicon) {
		return nil, domain.ErrForbidden
	}
	return s.verbs.GetByID(ctx, id)
}

// GetByPairID implements VerbService.GetByPairID.
func (s *verbServiceImpl) GetByPairID(
	ctx context.Context,
	p authz.Principal,
	pairID string,
) (*domain.Verb, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceLexicon) {
		return nil, domain.ErrForbidden
	}
	return s.verbs.GetByPairID(ctx, pairID)
}

// Conjugations implements VerbService.Conjugations.
func (s *verbServiceImpl) Conjugations(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (*domain.ConjugationSet, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceLexicon) {
		return nil, domain.ErrForbidden
	}

	verb, err := s.verbs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set, err := verb.Conjugations()
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("stored conjugation data is malformed",
			slog.String("error", err.Error()),
			slog.String("verb_id", id.String()))
		return nil, fmt.Errorf("reshaping conjugations for verb %s: %w", id, err)
	}
	return set, nil
}

// Create implements VerbService.Create.
func (s *verbServiceImpl) Create(
	ctx context.Context,
	p authz.Principal,
	input VerbInput,
) (*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !authz.Allowed(p.Role, authz.ActionCreate, authz.ResourceLexicon) {
		log.Warn("verb create denied",
			slog.String("user_id", p.ID.String()),
			slog.String("role", string(p.Role)))
		return nil, domain.ErrForbidden
	}

	verb, err := domain.NewVerb(
		input.PairID,
		input.ConjugationType,
		input.Root,
		input.Translations,
		input.Imperfective,
		input.Perfective,
	)
	if err != nil {
		return nil, err
	}
	verb.StressPattern = input.StressPattern

	if err := s.verbs.Create(ctx, verb); err != nil {
		return nil, err
	}

	log.Info("verb created",
		slog.String("verb_id", verb.ID.String()),
		slog.String("verb_pair_id", verb.VerbPairID),
		slog.String("user_id", p.ID.String()))
	return verb, nil
}

// Update implements VerbService.Update.
func (s *verbServiceImpl) Update(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	input VerbInput,
) (*domain.Verb, error) {
	if !authz.Allowed(p.Role, authz.ActionUpdate, authz.ResourceLexicon) {
		return nil, domain.ErrForbidden
	}

	verb, err := s.verbs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verb.VerbPairID = input.PairID
	verb.ConjugationType = input.ConjugationType
	verb.Root = input.Root
	verb.StressPattern = input.StressPattern
	verb.Translations = input.Translations
	verb.Imperfective = input.Imperfective
	verb.Perfective = input.Perfective

	if err := verb.Validate(); err != nil {
		return nil, err
	}
	if err := s.verbs.Update(ctx, verb); err != nil {
		return nil, err
	}
	return verb, nil
}

// Delete implements VerbService.Delete.
func (s *verbServiceImpl) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if !authz.Allowed(p.Role, authz.ActionDelete, authz.ResourceLexicon) {
		return domain.ErrForbidden
	}
	return s.verbs.Delete(ctx, id)
}
