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

// NounGroupStore implements store.NounGroupStore on PostgreSQL. It
// mirrors VerbGroupStore over the noun tables.
type NounGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNounGroupStore creates a PostgreSQL implementation of
// store.NounGroupStore. If logger is nil, the process default is used.
func NewNounGroupStore(db store.DBTX, logger *slog.Logger) *NounGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NounGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "noun_group_store")),
	}
}

var _ store.NounGroupStore = (*NounGroupStore)(nil)

// Create implements store.NounGroupStore.Create.
func (s *NounGroupStore) Create(ctx context.Context, group *domain.NounGroup) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		INSERT INTO noun_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		group.ID, group.Name, group.OwnerID, group.CreatedAt, group.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create noun group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return MapError(err)
	}

	log.Info("noun group created",
		slog.String("group_id", group.ID.String()),
		slog.String("owner_id", group.OwnerID.String()))
	return nil
}

// GetByID implements store.NounGroupStore.GetByID.
func (s *NounGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.NounGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM noun_groups WHERE id = $1`
	group, err := scanNounGroupRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGroupNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to get noun group", slog.String("error", err.Error()))
		return nil, err
	}
	return group, nil
}

// ListByOwner implements store.NounGroupStore.ListByOwner.
func (s *NounGroupStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.NounGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM noun_groups
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	return s.listGroups(ctx, query, ownerID)
}

// ListAll implements store.NounGroupStore.ListAll.
func (s *NounGroupStore) ListAll(ctx context.Context) ([]*domain.NounGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM noun_groups ORDER BY created_at DESC`
	return s.listGroups(ctx, query)
}

// Update implements store.NounGroupStore.Update.
func (s *NounGroupStore) Update(ctx context.Context, group *domain.NounGroup) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during update",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	group.UpdatedAt = time.Now().UTC()

	query := `UPDATE noun_groups SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, group.Name, group.UpdatedAt, group.ID)
	if err != nil {
		log.Error("failed to update noun group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrGroupNotFound)
}

// Delete implements store.NounGroupStore.Delete.
func (s *NounGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM noun_groups WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete noun group",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrGroupNotFound); err != nil {
		return err
	}

	log.Info("noun group deleted", slog.String("group_id", id.String()))
	return nil
}

// AddNoun implements store.NounGroupStore.AddNoun; idempotent via
// ON CONFLICT DO NOTHING.
func (s *NounGroupStore) AddNoun(ctx context.Context, groupID, nounID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO noun_group_nouns (group_id, noun_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, groupID, nounID, time.Now().UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrNotFound
		}
		log.Error("failed to add noun to group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()),
			slog.String("noun_id", nounID.String()))
		return MapError(err)
	}
	return nil
}

// RemoveNoun implements store.NounGroupStore.RemoveNoun; no-op if the
// noun is not a member.
func (s *NounGroupStore) RemoveNoun(ctx context.Context, groupID, nounID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM noun_group_nouns WHERE group_id = $1 AND noun_id = $2`
	if _, err := s.db.ExecContext(ctx, query, groupID, nounID); err != nil {
		log.Error("failed to remove noun from group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()),
			slog.String("noun_id", nounID.String()))
		return MapError(err)
	}
	return nil
}

// ListNouns implements store.NounGroupStore.ListNouns.
func (s *NounGroupStore) ListNouns(ctx context.Context, groupID uuid.UUID) ([]*domain.Noun, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT n.id, n.noun, n.gender, n.translations, n.declension, n.created_at, n.updated_at
		FROM nouns n
		JOIN noun_group_nouns m ON m.noun_id = n.id
		WHERE m.group_id = $1
		ORDER BY n.noun
	`
	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		log.Error("failed to list group nouns",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	nouns := []*domain.Noun{}
	for rows.Next() {
		noun, err := scanNounRow(rows)
		if err != nil {
			log.Error("failed to scan noun row", slog.String("error", err.Error()))
			return nil, err
		}
		nouns = append(nouns, noun)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nouns, nil
}

func (s *NounGroupStore) listGroups(ctx context.Context, query string, args ...any) ([]*domain.NounGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list noun groups", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	groups := []*domain.NounGroup{}
	for rows.Next() {
		group, err := scanNounGroupRow(rows)
		if err != nil {
			log.Error("failed to scan group row", slog.String("error", err.Error()))
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func scanNounGroupRow(row rowScanner) (*domain.NounGroup, error) {
	var group domain.NounGroup
	err := row.Scan(&group.ID, &group.Name, &group.OwnerID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &group, nil
}
