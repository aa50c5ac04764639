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

// VerbGroupStore implements store.VerbGroupStore on PostgreSQL.
type VerbGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewVerbGroupStore creates a PostgreSQL implementation of
// store.VerbGroupStore. If logger is nil, the process default is used.
func NewVerbGroupStore(db store.DBTX, logger *slog.Logger) *VerbGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VerbGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "verb_group_store")),
	}
}

var _ store.VerbGroupStore = (*VerbGroupStore)(nil)

const groupColumns = `id, name, owner_id, created_at, updated_at`

// Create implements store.VerbGroupStore.Create.
func (s *VerbGroupStore) Create(ctx context.Context, group *domain.VerbGroup) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		INSERT INTO verb_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		group.ID, group.Name, group.OwnerID, group.CreatedAt, group.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create verb group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return MapError(err)
	}

	log.Info("verb group created",
		slog.String("group_id", group.ID.String()),
		slog.String("owner_id", group.OwnerID.String()))
	return nil
}

// GetByID implements store.VerbGroupStore.GetByID.
func (s *VerbGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerbGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM verb_groups WHERE id = $1`
	group, err := scanVerbGroupRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGroupNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to get verb group", slog.String("error", err.Error()))
		return nil, err
	}
	return group, nil
}

// ListByOwner implements store.VerbGroupStore.ListByOwner.
func (s *VerbGroupStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.VerbGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM verb_groups
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	return s.listGroups(ctx, query, ownerID)
}

// ListAll implements store.VerbGroupStore.ListAll.
func (s *VerbGroupStore) ListAll(ctx context.Context) ([]*domain.VerbGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM verb_groups ORDER BY created_at DESC`
	return s.listGroups(ctx, query)
}

// Update implements store.VerbGroupStore.Update.
func (s *VerbGroupStore) Update(ctx context.Context, group *domain.VerbGroup) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during update",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	group.UpdatedAt = time.Now().UTC()

	query := `UPDATE verb_groups SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, group.Name, group.UpdatedAt, group.ID)
	if err != nil {
		log.Error("failed to update verb group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrGroupNotFound)
}

// Delete implements store.VerbGroupStore.Delete. Memberships go with the
// group through the FK cascade; member verbs stay.
func (s *VerbGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM verb_groups WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete verb group",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrGroupNotFound); err != nil {
		return err
	}

	log.Info("verb group deleted", slog.String("group_id", id.String()))
	return nil
}

// AddVerb implements store.VerbGroupStore.AddVerb. Membership is a set:
// re-adding a member is swallowed by ON CONFLICT DO NOTHING.
func (s *VerbGroupStore) AddVerb(ctx context.Context, groupID, verbID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO verb_group_verbs (group_id, verb_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, groupID, verbID, time.Now().UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrNotFound
		}
		log.Error("failed to add verb to group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()),
			slog.String("verb_id", verbID.String()))
		return MapError(err)
	}
	return nil
}

// RemoveVerb implements store.VerbGroupStore.RemoveVerb. Removing a
// non-member is a no-op.
func (s *VerbGroupStore) RemoveVerb(ctx context.Context, groupID, verbID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM verb_group_verbs WHERE group_id = $1 AND verb_id = $2`
	if _, err := s.db.ExecContext(ctx, query, groupID, verbID); err != nil {
		log.Error("failed to remove verb from group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()),
			slog.String("verb_id", verbID.String()))
		return MapError(err)
	}
	return nil
}

// ListVerbs implements store.VerbGroupStore.ListVerbs.
func (s *VerbGroupStore) ListVerbs(ctx context.Context, groupID uuid.UUID) ([]*domain.Verb, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT v.id, v.verb_pair_id, v.translations, v.conjugation_type, v.root,
		       v.stress_pattern, v.imperfective, v.perfective, v.created_at, v.updated_at
		FROM verbs v
		JOIN verb_group_verbs m ON m.verb_id = v.id
		WHERE m.group_id = $1
		ORDER BY v.verb_pair_id
	`
	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		log.Error("failed to list group verbs",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	verbs := []*domain.Verb{}
	for rows.Next() {
		verb, err := scanVerbRow(rows)
		if err != nil {
			log.Error("failed to scan verb row", slog.String("error", err.Error()))
			return nil, err
		}
		verbs = append(verbs, verb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return verbs, nil
}

func (s *VerbGroupStore) listGroups(ctx context.Context, query string, args ...any) ([]*domain.VerbGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list verb groups", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	groups := []*domain.VerbGroup{}
	for rows.Next() {
		group, err := scanVerbGroupRow(rows)
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

func scanVerbGroupRow(row rowScanner) (*domain.VerbGroup, error) {
	var group domain.VerbGroup
	err := row.Scan(&group.ID, &group.Name, &group.OwnerID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &group, nil
}
