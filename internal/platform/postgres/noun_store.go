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

// NounStore implements store.NounStore on PostgreSQL.
type NounStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNounStore creates a PostgreSQL implementation of store.NounStore.
// If logger is nil, the process default is used.
func NewNounStore(db store.DBTX, logger *slog.Logger) *NounStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NounStore{
		db:     db,
		logger: logger.With(slog.String("component", "noun_store")),
	}
}

var _ store.NounStore = (*NounStore)(nil)

const nounColumns = `id, noun, gender, translations, declension, created_at, updated_at`

// Create implements store.NounStore.Create.
func (s *NounStore) Create(ctx context.Context, noun *domain.Noun) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := noun.Validate(); err != nil {
		log.Warn("noun validation failed during create",
			slog.String("error", err.Error()),
			slog.String("noun_id", noun.ID.String()))
		return err
	}

	query := `
		INSERT INTO nouns (` + nounColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		noun.ID,
		noun.Noun,
		noun.Gender,
		jsonOrNull(noun.Translations),
		jsonOrNull(noun.Declension),
		noun.CreatedAt,
		noun.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate noun during create", slog.String("noun", noun.Noun))
			return store.ErrNounExists
		}
		log.Error("failed to create noun",
			slog.String("error", err.Error()),
			slog.String("noun_id", noun.ID.String()))
		return MapError(err)
	}

	log.Info("noun created",
		slog.String("noun_id", noun.ID.String()),
		slog.String("noun", noun.Noun))
	return nil
}

// GetByID implements store.NounStore.GetByID.
func (s *NounStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Noun, error) {
	query := `SELECT ` + nounColumns + ` FROM nouns WHERE id = $1`
	noun, err := scanNounRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNounNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to get noun", slog.String("error", err.Error()))
		return nil, err
	}
	return noun, nil
}

// GetByNoun implements store.NounStore.GetByNoun.
func (s *NounStore) GetByNoun(ctx context.Context, base string) (*domain.Noun, error) {
	query := `SELECT ` + nounColumns + ` FROM nouns WHERE noun = $1`
	noun, err := scanNounRow(s.db.QueryRowContext(ctx, query, base))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNounNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to get noun", slog.String("error", err.Error()))
		return nil, err
	}
	return noun, nil
}

// List implements store.NounStore.List.
func (s *NounStore) List(ctx context.Context, filter store.NounFilter) ([]*domain.Noun, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	where := `($1 = '' OR noun ILIKE '%' || $1 || '%')
		AND ($2 = '' OR gender = $2)`

	var total int
	countQuery := `SELECT count(*) FROM nouns WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, filter.Noun, string(filter.Gender)).
		Scan(&total); err != nil {
		log.Error("failed to count nouns", slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := `
		SELECT ` + nounColumns + `
		FROM nouns
		WHERE ` + where + `
		ORDER BY noun
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query,
		filter.Noun, string(filter.Gender), perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to list nouns", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer closeRows(rows, log)

	nouns := []*domain.Noun{}
	for rows.Next() {
		noun, err := scanNounRow(rows)
		if err != nil {
			log.Error("failed to scan noun row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		nouns = append(nouns, noun)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return nouns, total, nil
}

// Update implements store.NounStore.Update.
func (s *NounStore) Update(ctx context.Context, noun *domain.Noun) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := noun.Validate(); err != nil {
		log.Warn("noun validation failed during update",
			slog.String("error", err.Error()),
			slog.String("noun_id", noun.ID.String()))
		return err
	}

	noun.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE nouns
		SET noun = $1, gender = $2, translations = $3, declension = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		noun.Noun,
		noun.Gender,
		jsonOrNull(noun.Translations),
		jsonOrNull(noun.Declension),
		noun.UpdatedAt,
		noun.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrNounExists
		}
		log.Error("failed to update noun",
			slog.String("error", err.Error()),
			slog.String("noun_id", noun.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrNounNotFound)
}

// Delete implements store.NounStore.Delete.
func (s *NounStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM nouns WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete noun",
			slog.String("error", err.Error()),
			slog.String("noun_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNounNotFound); err != nil {
		return err
	}

	log.Info("noun deleted", slog.String("noun_id", id.String()))
	return nil
}

// WithTx implements store.NounStore.WithTx.
func (s *NounStore) WithTx(tx *sql.Tx) store.NounStore {
	return &NounStore{db: tx, logger: s.logger}
}

func scanNounRow(row rowScanner) (*domain.Noun, error) {
	var noun domain.Noun
	var gender string
	var translations, declension []byte

	err := row.Scan(
		&noun.ID,
		&noun.Noun,
		&gender,
		&translations,
		&declension,
		&noun.CreatedAt,
		&noun.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	noun.Gender = domain.Gender(gender)
	noun.Translations = translations
	noun.Declension = declension
	return &noun, nil
}
