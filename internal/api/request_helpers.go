package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/service/authz"
)

// getPrincipalFromContext extracts the authenticated principal from the
// request context. The principal is placed there by the authentication
// middleware.
func getPrincipalFromContext(r *http.Request) (authz.Principal, bool) {
	principal, ok := r.Context().Value(shared.PrincipalContextKey).(authz.Principal)
	if !ok || principal.ID == uuid.Nil {
		return authz.Principal{}, false
	}
	return principal, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handlePrincipalAndPathUUID is a composite helper that extracts both the
// principal from context and a UUID from the path parameters. It writes
// an error response if either extraction fails.
func handlePrincipalAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (authz.Principal, uuid.UUID, bool) {
	if log == nil {
		log = slog.Default()
	}

	principal, ok := getPrincipalFromContext(r)
	if !ok {
		log.Warn("principal not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return authz.Principal{}, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return authz.Principal{}, uuid.Nil, false
	}

	return principal, pathID, true
}

// handlePrincipal extracts the principal from context, writing a 401 if
// it is absent.
func handlePrincipal(w http.ResponseWriter, r *http.Request) (authz.Principal, bool) {
	principal, ok := getPrincipalFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return authz.Principal{}, false
	}
	return principal, true
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
