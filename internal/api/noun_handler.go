package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/service"
	"github.com/ruslex/ruslex-api/internal/store"
)

// NounHandler handles noun lexicon API requests.
type NounHandler struct {
	nounService service.NounService
	validator   *validator.Validate
}

// NewNounHandler creates a new NounHandler with the given dependencies.
func NewNounHandler(nounService service.NounService) *NounHandler {
	return &NounHandler{
		nounService: nounService,
		validator:   validator.New(),
	}
}

// List handles GET /nouns.
func (h *NounHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	filter := store.NounFilter{
		Noun:    r.URL.Query().Get("noun"),
		Gender:  domain.Gender(r.URL.Query().Get("gender")),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}

	nouns, total, err := h.nounService.List(r.Context(), principal, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list nouns")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NounListResponse{
		Items:   nouns,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
}

// Get handles GET /nouns/{id}.
func (h *NounHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	noun, err := h.nounService.Get(r.Context(), principal, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get noun")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, noun)
}

// Declension handles GET /nouns/{id}/declension.
func (h *NounHandler) Declension(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	declension, err := h.nounService.Declension(r.Context(), principal, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get declension")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, declension)
}

// Create handles POST /nouns.
func (h *NounHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	var req NounRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	noun, err := h.nounService.Create(r.Context(), principal, nounInputFromRequest(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create noun")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, noun)
}

// Update handles PUT /nouns/{id}.
func (h *NounHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req NounRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	noun, err := h.nounService.Update(r.Context(), principal, id, nounInputFromRequest(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update noun")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, noun)
}

// Delete handles DELETE /nouns/{id}.
func (h *NounHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.nounService.Delete(r.Context(), principal, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete noun")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func nounInputFromRequest(req NounRequest) service.NounInput {
	return service.NounInput{
		Noun:         req.Noun,
		Gender:       domain.Gender(req.Gender),
		Translations: req.Translations,
		Declension:   req.Declension,
	}
}
