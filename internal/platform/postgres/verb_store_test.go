package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/store"
)

func testVerb(t *testing.T) *domain.Verb {
	t.Helper()
	verb, err := domain.NewVerb(
		"читать/прочитать",
		1,
		"чита",
		json.RawMessage(`{"en": ["to read"]}`),
		json.RawMessage(`{"infinitive": "читать"}`),
		json.RawMessage(`{"infinitive": "прочитать"}`),
	)
	require.NoError(t, err)
	return verb
}

func verbRows(verb *domain.Verb) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "verb_pair_id", "translations", "conjugation_type", "root",
		"stress_pattern", "imperfective", "perfective", "created_at", "updated_at",
	}).AddRow(
		verb.ID.String(), verb.VerbPairID, []byte(verb.Translations),
		verb.ConjugationType, verb.Root, nil,
		[]byte(verb.Imperfective), []byte(verb.Perfective),
		verb.CreatedAt, verb.UpdatedAt,
	)
}

func TestVerbStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewVerbStore(db, nil)
		verb := testVerb(t)

		mock.ExpectExec("INSERT INTO verbs").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Create(context.Background(), verb))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewVerbStore(db, nil)
		verb := testVerb(t)

		mock.ExpectExec("INSERT INTO verbs").
			WillReturnError(uniqueViolation("verbs_verb_pair_id_key"))

		err := s.Create(context.Background(), verb)
		assert.ErrorIs(t, err, store.ErrVerbPairExists)
	})

	t.Run("invalid verb", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		s := NewVerbStore(db, nil)
		verb := testVerb(t)
		verb.ConjugationType = 7

		err := s.Create(context.Background(), verb)
		assert.ErrorIs(t, err, domain.ErrInvalidConjugationType)
	})
}

func TestVerbStoreWithTx(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewVerbStore(db, nil)
	verb := testVerb(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO verbs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	// The bound store issues its statements through the transaction.
	require.NoError(t, s.WithTx(tx).Create(context.Background(), verb))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerbStoreGetByPairID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewVerbStore(db, nil)
	verb := testVerb(t)

	mock.ExpectQuery("SELECT (.+) FROM verbs WHERE verb_pair_id").
		WithArgs(verb.VerbPairID).
		WillReturnRows(verbRows(verb))

	got, err := s.GetByPairID(context.Background(), verb.VerbPairID)
	require.NoError(t, err)
	assert.Equal(t, verb.ID, got.ID)
	assert.Equal(t, verb.VerbPairID, got.VerbPairID)
	assert.JSONEq(t, string(verb.Imperfective), string(got.Imperfective))

	mock.ExpectQuery("SELECT (.+) FROM verbs WHERE verb_pair_id").
		WillReturnError(sql.ErrNoRows)

	_, err = s.GetByPairID(context.Background(), "нет/такого")
	assert.ErrorIs(t, err, store.ErrVerbNotFound)
}

func TestVerbStoreList(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewVerbStore(db, nil)
		verb := testVerb(t)

		mock.ExpectQuery("SELECT count(.+) FROM verbs").
			WithArgs("", 0).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM verbs").
			WithArgs("", 0, 20, 0).
			WillReturnRows(verbRows(verb))

		verbs, total, err := s.List(context.Background(), store.VerbFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, verbs, 1)
		assert.Equal(t, verb.VerbPairID, verbs[0].VerbPairID)
	})

	t.Run("filter and pagination", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewVerbStore(db, nil)

		mock.ExpectQuery("SELECT count(.+) FROM verbs").
			WithArgs("читать", 1).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
		mock.ExpectQuery("SELECT (.+) FROM verbs").
			WithArgs("читать", 1, 10, 20).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "verb_pair_id", "translations", "conjugation_type", "root",
				"stress_pattern", "imperfective", "perfective", "created_at", "updated_at",
			}))

		verbs, total, err := s.List(context.Background(), store.VerbFilter{
			PairID:          "читать",
			ConjugationType: 1,
			Page:            3,
			PerPage:         10,
		})
		require.NoError(t, err)
		assert.Equal(t, 42, total)
		assert.Empty(t, verbs)
	})
}

func TestVerbStoreUpdate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewVerbStore(db, nil)
	verb := testVerb(t)

	mock.ExpectExec("UPDATE verbs SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, s.Update(context.Background(), verb))

	mock.ExpectExec("UPDATE verbs SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.Update(context.Background(), verb)
	assert.ErrorIs(t, err, store.ErrVerbNotFound)
}

func TestVerbStoreDelete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewVerbStore(db, nil)

	mock.ExpectExec("DELETE FROM verbs WHERE id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, s.Delete(context.Background(), uuid.New()))

	mock.ExpectExec("DELETE FROM verbs WHERE id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrVerbNotFound)
}
