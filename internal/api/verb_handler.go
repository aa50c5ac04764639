package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/service"
	"github.com/ruslex/ruslex-api/internal/store"
)

// VerbHandler handles verb lexicon API requests.
type VerbHandler struct {
	verbService service.VerbService
	validator   *validator.Validate
}

// NewVerbHandler creates a new VerbHandler with the given dependencies.
func NewVerbHandler(verbService service.VerbService) *VerbHandler {
	return &VerbHandler{
		verbService: verbService,
		validator:   validator.New(),
	}
}

// List handles GET /verbs.
func (h *VerbHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	filter := store.VerbFilter{
		PairID:          r.URL.Query().Get("verb_pair_id"),
		ConjugationType: queryInt(r, "conjugation_type", 0),
		Page:            queryInt(r, "page", 1),
		PerPage:         queryInt(r, "per_page", 20),
	}

	verbs, total, err := h.verbService.List(r.Context(), principal, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list verbs")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VerbListResponse{
		Items:   verbs,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
}

// Get handles GET /verbs/{id}.
func (h *VerbHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	verb, err := h.verbService.Get(r.Context(), principal, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, verb)
}

// GetByPair handles GET /verbs/pair/{pairID}.
func (h *VerbHandler) GetByPair(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	// Pair IDs contain a slash ("читать/прочитать"), so clients send
	// them percent-encoded and chi leaves the segment escaped.
	pairID, err := url.PathUnescape(chi.URLParam(r, "pairID"))
	if err != nil || pairID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Verb pair ID is required")
		return
	}

	verb, err := h.verbService.GetByPairID(r.Context(), principal, pairID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, verb)
}

// Conjugations handles GET /verbs/{id}/conjugations.
func (h *VerbHandler) Conjugations(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	set, err := h.verbService.Conjugations(r.Context(), principal, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get conjugations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, set)
}

// Create handles POST /verbs.
func (h *VerbHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	var req VerbRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	verb, err := h.verbService.Create(r.Context(), principal, verbInputFromRequest(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, verb)
}

// Update handles PUT /verbs/{id}.
func (h *VerbHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req VerbRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	verb, err := h.verbService.Update(r.Context(), principal, id, verbInputFromRequest(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, verb)
}

// Delete handles DELETE /verbs/{id}.
func (h *VerbHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := handlePrincipalAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.verbService.Delete(r.Context(), principal, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete verb")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func verbInputFromRequest(req VerbRequest) service.VerbInput {
	return service.VerbInput{
		PairID:          req.VerbPairID,
		ConjugationType: req.ConjugationType,
		Root:            req.Root,
		StressPattern:   req.StressPattern,
		Translations:    req.Translations,
		Imperfective:    req.Imperfective,
		Perfective:      req.Perfective,
	}
}
