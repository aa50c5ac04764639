package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/mocks"
	"github.com/ruslex/ruslex-api/internal/service"
	"github.com/ruslex/ruslex-api/internal/service/authz"
)

type studentHandlerFixture struct {
	router *chi.Mux
	users  *mocks.MockUserStore
	links  *mocks.MockStudentLinkStore
}

func newStudentHandlerFixture(t *testing.T, p authz.Principal) studentHandlerFixture {
	t.Helper()
	users := mocks.NewMockUserStore()
	links := mocks.NewMockStudentLinkStore()
	svc, err := service.NewStudentService(users, links,
		mocks.NewMockVerbGroupStore(), mocks.NewMockNounGroupStore(), nil)
	require.NoError(t, err)
	handler := NewStudentHandler(svc)

	r := chi.NewRouter()
	r.Use(withPrincipal(p))
	r.Get("/students", handler.List)
	r.Post("/students/{id}/link", handler.Link)
	r.Delete("/students/{id}/unlink", handler.Unlink)
	r.Get("/students/{id}/progress", handler.Progress)
	return studentHandlerFixture{router: r, users: users, links: links}
}

func (f studentHandlerFixture) addStudent(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Student "+username, username, username+"@example.com",
		"secretpassword", domain.RoleStudent)
	require.NoError(t, err)
	user.HashedPassword = "hashed"
	user.Password = ""
	f.links.Students[user.ID] = user
	return f.users.Add(user)
}

func (f studentHandlerFixture) request(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestStudentHandlerLinkUnlink(t *testing.T) {
	t.Parallel()

	t.Run("link then unlink", func(t *testing.T) {
		t.Parallel()
		teacher := teacherPrincipal()
		f := newStudentHandlerFixture(t, teacher)
		student := f.addStudent(t, "anna")

		w := f.request(t, http.MethodPost, "/students/"+student.ID.String()+"/link")
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, teacher.ID, f.links.Links[student.ID])

		w = f.request(t, http.MethodDelete, "/students/"+student.ID.String()+"/unlink")
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, f.links.Links)
	})

	t.Run("second link conflicts", func(t *testing.T) {
		t.Parallel()
		f := newStudentHandlerFixture(t, teacherPrincipal())
		student := f.addStudent(t, "anna")

		w := f.request(t, http.MethodPost, "/students/"+student.ID.String()+"/link")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = f.request(t, http.MethodPost, "/students/"+student.ID.String()+"/link")
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Student is already linked to a teacher", decodeError(t, w).Error)
	})

	t.Run("unknown student", func(t *testing.T) {
		t.Parallel()
		f := newStudentHandlerFixture(t, teacherPrincipal())

		w := f.request(t, http.MethodPost, "/students/"+uuid.NewString()+"/link")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("student principal is forbidden", func(t *testing.T) {
		t.Parallel()
		f := newStudentHandlerFixture(t, studentPrincipal())
		student := f.addStudent(t, "anna")

		w := f.request(t, http.MethodPost, "/students/"+student.ID.String()+"/link")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestStudentHandlerList(t *testing.T) {
	t.Parallel()

	teacher := teacherPrincipal()
	f := newStudentHandlerFixture(t, teacher)
	student := f.addStudent(t, "anna")

	w := f.request(t, http.MethodPost, "/students/"+student.ID.String()+"/link")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.request(t, http.MethodGet, "/students")
	require.Equal(t, http.StatusOK, w.Code)

	var roster []*domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster, 1)
	assert.Equal(t, student.ID, roster[0].ID)
}

func TestStudentHandlerProgress(t *testing.T) {
	t.Parallel()

	t.Run("linked teacher", func(t *testing.T) {
		t.Parallel()
		f := newStudentHandlerFixture(t, teacherPrincipal())
		student := f.addStudent(t, "anna")

		w := f.request(t, http.MethodPost, "/students/"+student.ID.String()+"/link")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = f.request(t, http.MethodGet, "/students/"+student.ID.String()+"/progress")
		require.Equal(t, http.StatusOK, w.Code)

		var progress service.StudentProgress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
		assert.Equal(t, student.ID, progress.StudentID)
		assert.Zero(t, progress.VerbGroups)
	})

	t.Run("unlinked teacher", func(t *testing.T) {
		t.Parallel()
		f := newStudentHandlerFixture(t, teacherPrincipal())
		student := f.addStudent(t, "anna")

		w := f.request(t, http.MethodGet, "/students/"+student.ID.String()+"/progress")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
