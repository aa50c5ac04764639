package middleware

import (
	"encoding/json"
	"errors"
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
	"github.com/ruslex/ruslex-api/internal/service/authz"
)

func serveAuthenticated(t *testing.T, jwt *mocks.MockJWTService, header string) (*httptest.ResponseRecorder, authz.Principal, bool) {
	t.Helper()

	var (
		principal authz.Principal
		reached   bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		principal, _ = GetPrincipal(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/verbs", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(w, req)
	return w, principal, reached
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid token reaches the handler with a principal", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		jwt := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: userID, Role: domain.RoleTeacher, TokenType: "access"},
		}

		w, principal, reached := serveAuthenticated(t, jwt, "Bearer some-valid-token")

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, reached)
		assert.Equal(t, userID, principal.ID)
		assert.Equal(t, domain.RoleTeacher, principal.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		w, _, reached := serveAuthenticated(t, &mocks.MockJWTService{}, "")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Authorization header required", errorMessage(t, w))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()
		w, _, reached := serveAuthenticated(t, &mocks.MockJWTService{}, "Basic dXNlcjpwYXNz")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Invalid authorization format", errorMessage(t, w))
	})

	t.Run("bare token without scheme", func(t *testing.T) {
		t.Parallel()
		w, _, reached := serveAuthenticated(t, &mocks.MockJWTService{}, "just-a-token")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Invalid authorization format", errorMessage(t, w))
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}

		w, _, reached := serveAuthenticated(t, jwt, "Bearer expired-token")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Token expired", errorMessage(t, w))
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken}

		w, _, reached := serveAuthenticated(t, jwt, "Bearer garbage")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Invalid token", errorMessage(t, w))
	})

	t.Run("refresh token on an access endpoint", func(t *testing.T) {
		t.Parallel()
		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrWrongTokenType}

		w, _, reached := serveAuthenticated(t, jwt, "Bearer refresh-token")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Invalid token", errorMessage(t, w))
	})

	t.Run("unexpected validation failure", func(t *testing.T) {
		t.Parallel()
		jwt := &mocks.MockJWTService{ValidateErr: errors.New("key store unreachable")}

		w, _, reached := serveAuthenticated(t, jwt, "Bearer some-token")

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, reached)
		assert.Equal(t, "Authentication error", errorMessage(t, w))
	})
}
