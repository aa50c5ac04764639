package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/mocks"
	"github.com/ruslex/ruslex-api/internal/service/auth"
)

type authFixture struct {
	handler *AuthHandler
	users   *mocks.MockUserStore
	jwt     *mocks.MockJWTService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	users := mocks.NewMockUserStore()
	jwt := &mocks.MockJWTService{
		Token:        "test-access-token",
		RefreshToken: "test-refresh-token",
	}
	handler := NewAuthHandler(users, jwt, &mocks.MockPasswordHasher{})
	return authFixture{handler: handler, users: users, jwt: jwt}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// registeredUser stores an active user with the mock hasher's hash
// format and returns it.
func (f authFixture) registeredUser(t *testing.T, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Anna Petrova", "anna", "anna@example.com",
		"secretpassword", role)
	require.NoError(t, err)
	user.HashedPassword = "hashed:secretpassword"
	user.Password = ""
	return f.users.Add(user)
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("success defaults to student role", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		w := postJSON(t, f.handler.Register, "/api/auth/register", RegisterRequest{
			Name:     "Anna Petrova",
			Username: "anna",
			Email:    "anna@example.com",
			Password: "secretpassword",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "test-access-token", resp.AccessToken)
		assert.Equal(t, "test-refresh-token", resp.RefreshToken)
		assert.NotEqual(t, uuid.Nil, resp.UserID)

		created := f.users.Users[resp.UserID]
		require.NotNil(t, created)
		assert.Equal(t, domain.RoleStudent, created.Role)
		assert.Equal(t, "hashed:secretpassword", created.HashedPassword)
		assert.Empty(t, created.Password, "plaintext must not be stored")
		assert.Equal(t, domain.DefaultLanguage, created.Language)
	})

	t.Run("explicit role and language", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		w := postJSON(t, f.handler.Register, "/api/auth/register", RegisterRequest{
			Name:     "Boris Ivanov",
			Username: "boris",
			Email:    "boris@example.com",
			Password: "secretpassword",
			Role:     "teacher",
			Language: "en",
			Country:  "GB",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		created := f.users.Users[resp.UserID]
		require.NotNil(t, created)
		assert.Equal(t, domain.RoleTeacher, created.Role)
		assert.Equal(t, "en", created.Language)
		assert.Equal(t, "GB", created.Country)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.registeredUser(t, domain.RoleStudent)

		w := postJSON(t, f.handler.Register, "/api/auth/register", RegisterRequest{
			Name:     "Another Anna",
			Username: "anna",
			Email:    "anna2@example.com",
			Password: "secretpassword",
		})

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Username already exists", decodeError(t, w).Error)
	})

	t.Run("invalid payload", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		w := postJSON(t, f.handler.Register, "/api/auth/register", RegisterRequest{
			Name:     "Anna Petrova",
			Username: "anna",
			Email:    "not-an-email",
			Password: "secretpassword",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Error, "Email")
	})

	t.Run("password below minimum length", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		w := postJSON(t, f.handler.Register, "/api/auth/register", RegisterRequest{
			Name:     "Anna Petrova",
			Username: "anna",
			Email:    "anna@example.com",
			Password: "short",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Error, "Password")
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		w := postJSON(t, f.handler.Register, "/api/auth/register", RegisterRequest{
			Name:     "Anna Petrova",
			Username: "anna",
			Email:    "anna@example.com",
			Password: "secretpassword",
			Role:     "superuser",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		user := f.registeredUser(t, domain.RoleTeacher)

		w := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{
			Username: "anna",
			Password: "secretpassword",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "test-access-token", resp.AccessToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.registeredUser(t, domain.RoleTeacher)

		w := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{
			Username: "anna",
			Password: "wrongpassword",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, w).Error)
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		w := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{
			Username: "nobody",
			Password: "secretpassword",
		})

		// Same status and message as a wrong password, so usernames
		// cannot be enumerated.
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, w).Error)
	})

	t.Run("inactive account", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		user := f.registeredUser(t, domain.RoleStudent)
		user.IsActive = false

		w := postJSON(t, f.handler.Login, "/api/auth/login", LoginRequest{
			Username: "anna",
			Password: "secretpassword",
		})

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Account is inactive", decodeError(t, w).Error)
	})
}

func TestAuthHandlerRefresh(t *testing.T) {
	t.Parallel()

	t.Run("success re-reads role from the store", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		user := f.registeredUser(t, domain.RoleStudent)

		// The token was issued while the user was a teacher; the store
		// now says student. The new pair must carry the current role.
		f.jwt.Claims = &auth.Claims{
			UserID:    user.ID,
			Role:      domain.RoleTeacher,
			TokenType: "refresh",
		}

		var issuedRole domain.Role
		f.jwt.GenerateTokenFn = func(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error) {
			issuedRole = role
			return "new-access-token", nil
		}

		w := postJSON(t, f.handler.Refresh, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "test-refresh-token",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.RoleStudent, issuedRole)

		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "new-access-token", resp.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.jwt.ValidateErr = auth.ErrInvalidToken

		w := postJSON(t, f.handler.Refresh, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "garbage",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.jwt.Claims = &auth.Claims{UserID: uuid.New(), Role: domain.RoleStudent, TokenType: "refresh"}

		w := postJSON(t, f.handler.Refresh, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "test-refresh-token",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated user", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		user := f.registeredUser(t, domain.RoleStudent)
		user.IsActive = false
		f.jwt.Claims = &auth.Claims{UserID: user.ID, Role: user.Role, TokenType: "refresh"}

		w := postJSON(t, f.handler.Refresh, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "test-refresh-token",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
