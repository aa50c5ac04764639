package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/mocks"
	"github.com/ruslex/ruslex-api/internal/service/authz"
	"github.com/ruslex/ruslex-api/internal/store"
)

func newUserServiceForTest(t *testing.T) (UserService, *mocks.MockUserStore) {
	t.Helper()
	users := mocks.NewMockUserStore()
	svc, err := NewUserService(users, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)
	return svc, users
}

func addUser(t *testing.T, users *mocks.MockUserStore, role domain.Role) *domain.User {
	t.Helper()
	username := "user-" + uuid.NewString()[:8]
	user, err := domain.NewUser("Test User", username, username+"@example.com",
		"secretpassword", role)
	require.NoError(t, err)
	user.HashedPassword = "hashed:secretpassword"
	user.Password = ""
	return users.Add(user)
}

func TestUserServiceMe(t *testing.T) {
	t.Parallel()

	svc, users := newUserServiceForTest(t)
	user := addUser(t, users, domain.RoleStudent)

	got, err := svc.Me(context.Background(), authz.Principal{ID: user.ID, Role: user.Role})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Me(context.Background(), studentPrincipal())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserServiceUpdateMe(t *testing.T) {
	t.Parallel()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()
		svc, users := newUserServiceForTest(t)
		user := addUser(t, users, domain.RoleStudent)
		p := authz.Principal{ID: user.ID, Role: user.Role}

		name := "New Name"
		country := "AR"
		got, err := svc.UpdateMe(context.Background(), p, UpdateUserInput{
			Name:    &name,
			Country: &country,
		})
		require.NoError(t, err)

		assert.Equal(t, "New Name", got.Name)
		assert.Equal(t, "AR", got.Country)
		// Untouched fields survive.
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("password change is re-hashed", func(t *testing.T) {
		t.Parallel()
		svc, users := newUserServiceForTest(t)
		user := addUser(t, users, domain.RoleStudent)
		p := authz.Principal{ID: user.ID, Role: user.Role}

		password := "newsecretpassword"
		got, err := svc.UpdateMe(context.Background(), p, UpdateUserInput{Password: &password})
		require.NoError(t, err)

		assert.Empty(t, got.Password, "plaintext must not survive the update")
		assert.Equal(t, "hashed:newsecretpassword", got.HashedPassword)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		t.Parallel()
		svc, users := newUserServiceForTest(t)
		user := addUser(t, users, domain.RoleStudent)
		p := authz.Principal{ID: user.ID, Role: user.Role}

		email := "not-an-email"
		_, err := svc.UpdateMe(context.Background(), p, UpdateUserInput{Email: &email})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestUserServiceGet(t *testing.T) {
	t.Parallel()

	svc, users := newUserServiceForTest(t)
	user := addUser(t, users, domain.RoleStudent)

	// Teachers may read individual accounts; students may not.
	_, err := svc.Get(context.Background(), teacherPrincipal(), user.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), studentPrincipal(), user.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserServiceList(t *testing.T) {
	t.Parallel()

	svc, users := newUserServiceForTest(t)
	addUser(t, users, domain.RoleStudent)
	addUser(t, users, domain.RoleTeacher)

	listed, err := svc.List(context.Background(), adminPrincipal(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// Listing the whole account table is admin-only.
	_, err = svc.List(context.Background(), teacherPrincipal(), 100, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserServiceDelete(t *testing.T) {
	t.Parallel()

	svc, users := newUserServiceForTest(t)
	user := addUser(t, users, domain.RoleStudent)

	assert.ErrorIs(t, svc.Delete(context.Background(), teacherPrincipal(), user.ID), domain.ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), adminPrincipal(), user.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), adminPrincipal(), user.ID), store.ErrUserNotFound)
}
