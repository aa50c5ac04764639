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

// NounInput carries the writable fields of a noun, as decoded from a
// create or update request.
type NounInput struct {
	Noun         string
	Gender       domain.Gender
	Translations json.RawMessage
	Declension   json.RawMessage
}

// NounService provides noun lexicon operations.
type NounService interface {
	// List returns nouns matching the filter plus the total match count.
	List(ctx context.Context, p authz.Principal, filter store.NounFilter) ([]*domain.Noun, int, error)

	// Get retrieves a noun by ID.
	Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.Noun, error)

	// Declension returns the noun's stored declension table.
	Declension(ctx context.Context, p authz.Principal, id uuid.UUID) (json.RawMessage, error)

	// Create adds a new noun to the lexicon.
	Create(ctx context.Context, p authz.Principal, input NounInput) (*domain.Noun, error)

	// Update replaces the writable fields of an existing noun.
	Update(ctx context.Context, p authz.Principal, id uuid.UUID, input NounInput) (*domain.Noun, error)

	// Delete removes a noun and its group memberships.
	Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error
}

type nounServiceImpl struct {
	nouns  store.NounStore
	logger *slog.Logger
}

// NewNounService creates a new NounService.
// It returns an error if any of the required dependencies are nil.
func NewNounService(nouns store.NounStore, logger *slog.Logger) (NounService, error) {
	if nouns == nil {
		return nil, domain.NewValidationError("nouns", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &nounServiceImpl{
		nouns:  nouns,
		logger: logger.With(slog.String("component", "noun_service")),
	}, nil
}

// List implements NounService.List.
func (s *nounServiceImpl) List(
	ctx context.Context,
	p authz.Principal,
	filter store.NounFilter,
) ([]*domain.Noun, int, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceLexicon) {
		return nil, 0, domain.ErrForbidden
	}

	nouns, total, err := s.nouns.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("listing nouns: %w", err)
	}
	return nouns, total, nil
}

// Get implements NounService.Get.
func (s *nounServiceImpl) Get(ctx context.Context, p authz.Principal, id uuid.UUID) (*domain.Noun, error) {
	if !authz.Allowed(p.Role, authz.ActionRead, authz.ResourceLexicon) {
		return nil, domain.ErrForbidden
	}
	return s.nouns.GetByID(ctx, id)
}

// Declension implements NounService.Declension. An empty stored table
// surfaces as an empty JSON object rather than null.
func (s *nounServiceImpl) Declension(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
) (json.RawMessage, error) {
	noun, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if len(noun.Declension) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return noun.Declension, nil
}

// Create implements NounService.Create.
func (s *nounServiceImpl) Create(
	ctx context.Context,
	p authz.Principal,
	input NounInput,
) (*domain.Noun, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !authz.Allowed(p.Role, authz.ActionCreate, authz.ResourceLexicon) {
		log.Warn("noun create denied",
			slog.String("user_id", p.ID.String()),
			slog.String("role", string(p.Role)))
		return nil, domain.ErrForbidden
	}

	noun, err := domain.NewNoun(input.Noun, input.Gender, input.Translations, input.Declension)
	if err != nil {
		return nil, err
	}

	if err := s.nouns.Create(ctx, noun); err != nil {
		return nil, err
	}

	log.Info("noun created",
		slog.String("noun_id", noun.ID.String()),
		slog.String("noun", noun.Noun),
		slog.String("user_id", p.ID.String()))
	return noun, nil
}

// Update implements NounService.Update.
func (s *nounServiceImpl) Update(
	ctx context.Context,
	p authz.Principal,
	id uuid.UUID,
	input NounInput,
) (*domain.Noun, error) {
	if !authz.Allowed(p.Role, authz.ActionUpdate, authz.ResourceLexicon) {
		return nil, domain.ErrForbidden
	}

	noun, err := s.nouns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	noun.Noun = input.Noun
	noun.Gender = input.Gender
	noun.Translations = input.Translations
	noun.Declension = input.Declension

	if err := noun.Validate(); err != nil {
		return nil, err
	}
	if err := s.nouns.Update(ctx, noun); err != nil {
		return nil, err
	}
	return noun, nil
}

// Delete implements NounService.Delete.
func (s *nounServiceImpl) Delete(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if !authz.Allowed(p.Role, authz.ActionDelete, authz.ResourceLexicon) {
		return domain.ErrForbidden
	}
	return s.nouns.Delete(ctx, id)
}
