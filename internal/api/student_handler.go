package api

import (
	"net/http"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/service"
)

// StudentHandler handles the teacher-side student roster API requests.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new StudentHandler with the given
// dependencies.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List handles GET /students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	students, err := h.studentService.ListStudents(r.Context(), principal)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list students")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, students)
}

// Link handles POST /students/{id}/link.
func (h *StudentHandler) Link(w http.ResponseWriter, r *http.Request) {
	principal, studentID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.studentService.Link(r.Context(), principal, studentID); err != nil {
		HandleAPIError(w, r, err, "Failed to link student")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unlink handles DELETE /students/{id}/unlink.
func (h *StudentHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	principal, studentID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.studentService.Unlink(r.Context(), principal, studentID); err != nil {
		HandleAPIError(w, r, err, "Failed to unlink student")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Progress handles GET /students/{id}/progress.
func (h *StudentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	principal, studentID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	progress, err := h.studentService.Progress(r.Context(), principal, studentID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get student progress")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
