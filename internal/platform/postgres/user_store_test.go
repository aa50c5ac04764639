package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/store"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraint}
}

func foreignKeyViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: constraint}
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Anna Petrova", "anna", "anna@example.com", "secretpassword", domain.RoleTeacher)
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$notarealhashbutlookslikeone"
	user.Password = ""
	return user
}

func userRows(user *domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "username", "email", "hashed_password", "role",
		"language", "country", "is_active", "created_at", "updated_at",
	}).AddRow(
		user.ID.String(), user.Name, user.Username, user.Email,
		user.HashedPassword, string(user.Role), user.Language, nil,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
}

func TestUserStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Username, user.Email,
				user.HashedPassword, user.Role, user.Language,
				sql.NullString{}, user.IsActive, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Create(context.Background(), user)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(uniqueViolation("users_email_key"))

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(uniqueViolation("users_username_key"))

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("missing password hash", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)
		user.HashedPassword = ""
		user.Password = "secretpassword"

		// No SQL is expected; the store rejects the user before writing.
		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrEmptyHashedPassword)
	})
}

func TestUserStoreGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(user.ID).
			WillReturnRows(userRows(user))

		got, err := s.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.Equal(t, user.Role, got.Role)
		assert.Empty(t, got.Country)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStoreGetByUsername(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewUserStore(db, nil)
	user := testUser(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs(user.Username).
		WillReturnRows(userRows(user))

	got, err := s.GetByUsername(context.Background(), user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WillReturnError(sql.ErrNoRows)

	_, err = s.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreList(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewUserStore(db, nil)
	first := testUser(t)
	second := testUser(t)

	rows := userRows(first).AddRow(
		second.ID.String(), second.Name, second.Username, second.Email,
		second.HashedPassword, string(second.Role), second.Language, "RU",
		second.IsActive, second.CreatedAt, second.UpdatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at DESC").
		WithArgs(50, 0).
		WillReturnRows(rows)

	users, err := s.List(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "RU", users[1].Country)
}

func TestUserStoreUpdate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)

		mock.ExpectExec("UPDATE users SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Update(context.Background(), user)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		user := testUser(t)

		mock.ExpectExec("UPDATE users SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM users WHERE id").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), id))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewUserStore(db, nil)

		mock.ExpectExec("DELETE FROM users WHERE id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
