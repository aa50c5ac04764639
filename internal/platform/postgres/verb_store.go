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

// VerbStore implements store.VerbStore on PostgreSQL.
type VerbStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewVerbStore creates a PostgreSQL implementation of store.VerbStore.
// If logger is nil, the process default is used.
func NewVerbStore(db store.DBTX, logger *slog.Logger) *VerbStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VerbStore{
		db:     db,
		logger: logger.With(slog.String("component", "verb_store")),
	}
}

var _ store.VerbStore = (*VerbStore)(nil)

const verbColumns = `id, verb_pair_id, translations, conjugation_type, root, stress_pattern, imperfective, perfective, created_at, updated_at`

// Create implements store.VerbStore.Create.
func (s *VerbStore) Create(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := verb.Validate(); err != nil {
		log.Warn("verb validation failed during create",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return err
	}

	query := `
		INSERT INTO verbs (` + verbColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		verb.ID,
		verb.VerbPairID,
		jsonOrNull(verb.Translations),
		verb.ConjugationType,
		verb.Root,
		nullString(verb.StressPattern),
		jsonOrNull(verb.Imperfective),
		jsonOrNull(verb.Perfective),
		verb.CreatedAt,
		verb.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate verb pair during create",
				slog.String("verb_pair_id", verb.VerbPairID))
			return store.ErrVerbPairExists
		}
		log.Error("failed to create verb",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return MapError(err)
	}

	log.Info("verb created",
		slog.String("verb_id", verb.ID.String()),
		slog.String("verb_pair_id", verb.VerbPairID))
	return nil
}

// GetByID implements store.VerbStore.GetByID.
func (s *VerbStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Verb, error) {
	query := `SELECT ` + verbColumns + ` FROM verbs WHERE id = $1`
	return s.scanVerb(ctx, s.db.QueryRowContext(ctx, query, id))
}

// GetByPairID implements store.VerbStore.GetByPairID.
func (s *VerbStore) GetByPairID(ctx context.Context, pairID string) (*domain.Verb, error) {
	query := `SELECT ` + verbColumns + ` FROM verbs WHERE verb_pair_id = $1`
	return s.scanVerb(ctx, s.db.QueryRowContext(ctx, query, pairID))
}

// List implements store.VerbStore.List. Filters are applied in SQL; the
// returned total counts all matches before pagination.
func (s *VerbStore) List(ctx context.Context, filter store.VerbFilter) ([]*domain.Verb, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	where := `($1 = '' OR verb_pair_id ILIKE '%' || $1 || '%')
		AND ($2 = 0 OR conjugation_type = $2)`

	var total int
	countQuery := `SELECT count(*) FROM verbs WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, filter.PairID, filter.ConjugationType).
		Scan(&total); err != nil {
		log.Error("failed to count verbs", slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := `
		SELECT ` + verbColumns + `
		FROM verbs
		WHERE ` + where + `
		ORDER BY verb_pair_id
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query,
		filter.PairID, filter.ConjugationType, perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to list verbs", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer closeRows(rows, log)

	verbs := []*domain.Verb{}
	for rows.Next() {
		verb, err := scanVerbRow(rows)
		if err != nil {
			log.Error("failed to scan verb row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		verbs = append(verbs, verb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return verbs, total, nil
}

// Update implements store.VerbStore.Update.
func (s *VerbStore) Update(ctx context.Context, verb *domain.Verb) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := verb.Validate(); err != nil {
		log.Warn("verb validation failed during update",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return err
	}

	verb.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE verbs
		SET verb_pair_id = $1, translations = $2, conjugation_type = $3,
		    root = $4, stress_pattern = $5, imperfective = $6, perfective = $7,
		    updated_at = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(ctx, query,
		verb.VerbPairID,
		jsonOrNull(verb.Translations),
		verb.ConjugationType,
		verb.Root,
		nullString(verb.StressPattern),
		jsonOrNull(verb.Imperfective),
		jsonOrNull(verb.Perfective),
		verb.UpdatedAt,
		verb.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrVerbPairExists
		}
		log.Error("failed to update verb",
			slog.String("error", err.Error()),
			slog.String("verb_id", verb.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrVerbNotFound)
}

// Delete implements store.VerbStore.Delete.
func (s *VerbStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM verbs WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete verb",
			slog.String("error", err.Error()),
			slog.String("verb_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrVerbNotFound); err != nil {
		return err
	}

	log.Info("verb deleted", slog.String("verb_id", id.String()))
	return nil
}

// WithTx implements store.VerbStore.WithTx.
func (s *VerbStore) WithTx(tx *sql.Tx) store.VerbStore {
	return &VerbStore{db: tx, logger: s.logger}
}

func (s *VerbStore) scanVerb(ctx context.Context, row *sql.Row) (*domain.Verb, error) {
	verb, err := scanVerbRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVerbNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to get verb", slog.String("error", err.Error()))
		return nil, err
	}
	return verb, nil
}

func scanVerbRow(row rowScanner) (*domain.Verb, error) {
	var verb domain.Verb
	var translations, imperfective, perfective []byte
	var stressPattern sql.NullString

	err := row.Scan(
		&verb.ID,
		&verb.VerbPairID,
		&translations,
		&verb.ConjugationType,
		&verb.Root,
		&stressPattern,
		&imperfective,
		&perfective,
		&verb.CreatedAt,
		&verb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	verb.Translations = translations
	verb.Imperfective = imperfective
	verb.Perfective = perfective
	if stressPattern.Valid {
		verb.StressPattern = stressPattern.String
	}
	return &verb, nil
}

// jsonOrNull stores empty JSON payloads as SQL NULL rather than empty
// strings, which JSONB columns reject.
func jsonOrNull(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
