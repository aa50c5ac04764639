package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/service"
)

// NounGroupHandler handles noun study group API requests, mirroring
// VerbGroupHandler.
type NounGroupHandler struct {
	groupService service.NounGroupService
	validator    *validator.Validate
}

// NewNounGroupHandler creates a new NounGroupHandler with the given
// dependencies.
func NewNounGroupHandler(groupService service.NounGroupService) *NounGroupHandler {
	return &NounGroupHandler{
		groupService: groupService,
		validator:    validator.New(),
	}
}

// List handles GET /noun-groups.
func (h *NounGroupHandler) List(w http.ResponseWriter, r *http.Request) {
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

// Create handles POST /noun-groups.
func (h *NounGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /noun-groups/{id}.
func (h *NounGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Update handles PUT /noun-groups/{id}.
func (h *NounGroupHandler) Update(w http.ResponseWriter, r *http.Request) {
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

// Delete handles DELETE /noun-groups/{id}.
func (h *NounGroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddNoun handles POST /noun-groups/{id}/nouns/{nounID}.
func (h *NounGroupHandler) AddNoun(w http.ResponseWriter, r *http.Request) {
	principal, groupID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}
	nounID, err := getPathUUID(r, "nounID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.groupService.AddNoun(r.Context(), principal, groupID, nounID); err != nil {
		HandleAPIError(w, r, err, "Failed to add noun to group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveNoun handles DELETE /noun-groups/{id}/nouns/{nounID}.
func (h *NounGroupHandler) RemoveNoun(w http.ResponseWriter, r *http.Request) {
	principal, groupID, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}
	nounID, err := getPathUUID(r, "nounID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.groupService.RemoveNoun(r.Context(), principal, groupID, nounID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove noun from group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
