package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/service"
)

// VerbGroupHandler handles verb study group API requests.
type VerbGroupHandler struct {
	groupService service.VerbGroupService
	validator    *validator.Validate
}

// NewVerbGroupHandler creates a new VerbGroupHandler with the given
// dependencies.
func NewVerbGroupHandler(groupService service.VerbGroupService) *VerbGroupHandler {
	return &VerbGroupHandler{
		groupService: groupService,
		validator:    validator.New(),
	}
}

// List handles GET /verb-groups.
func (h *VerbGroupHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	groups, err := h.groupService.List(r.Context(), principal)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list groups")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groups)
}

// Create handles POST /verb-groups.
func (h *VerbGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	var req GroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	group, err := h.groupService.Create(r.Context(), principal, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create group")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, group)
}

// Get handles GET /verb-groups/{id}.
func (h *VerbGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	group, err := h.groupService.Get(r.Context(), principal, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get group")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, group)
}

// Update handles PUT /verb-groups/{id}.
func (h *VerbGroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req GroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	group, err := h.groupService.Rename(r.Context(), principal, id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update group")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, group)
}

// Delete handles DELETE /verb-groups/{id}.
func (h *VerbGroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.groupService.Delete(r.Context(), principal, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVerb handles POST /verb-groups/{id}/verbs/{verbID}.
func (h *VerbGroupHandler) AddVerb(w http.ResponseWriter, r *http.Request) {
	principal, groupID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}
	verbID, err := getPathUUID(r, "verbID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.groupService.AddVerb(r.Context(), principal, groupID, verbID); err != nil {
		HandleAPIError(w, r, err, "Failed to add verb to group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveVerb handles DELETE /verb-groups/{id}/verbs/{verbID}.
func (h *VerbGroupHandler) RemoveVerb(w http.ResponseWriter, r *http.Request) {
	principal, groupID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}
	verbID, err := getPathUUID(r, "verbID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.groupService.RemoveVerb(r.Context(), principal, groupID, verbID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove verb from group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
