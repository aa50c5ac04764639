package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/service"
	"github.com/ruslex/ruslex-api/internal/service/auth"
	"github.com/ruslex/ruslex-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, service.ErrNotOwned),
		errors.Is(err, service.ErrUserInactive):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err),
		errors.Is(err, service.ErrNotLinked):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrNotAStudent),
		domain.IsValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	// Authorization errors
	case errors.Is(err, service.ErrUserInactive):
		return "Account is inactive"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	case errors.Is(err, domain.ErrForbidden):
		return "You are not allowed to perform this operation"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrVerbNotFound):
		return "Verb not found"

	case errors.Is(err, store.ErrNounNotFound):
		return "Noun not found"

	case errors.Is(err, store.ErrGroupNotFound):
		return "Group not found"

	case errors.Is(err, store.ErrLinkNotFound),
		errors.Is(err, service.ErrNotLinked):
		return "Student link not found"

	case store.IsNotFoundError(err):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrVerbPairExists):
		return "Verb pair already exists"

	case errors.Is(err, store.ErrNounExists):
		return "Noun already exists"

	case errors.Is(err, store.ErrStudentAlreadyLinked):
		return "Student is already linked to a teacher"

	case store.IsDuplicateError(err):
		return "Resource already exists"

	// Bad request errors
	case errors.Is(err, service.ErrNotAStudent):
		return "Target user is not a student"

	case domain.IsValidationError(err), errors.Is(err, store.ErrInvalidEntity):
		// Validation sentinels carry no user data, so their text is safe
		// to return.
		return "Invalid data: " + err.Error()

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps a service-layer error to a status code and
// sanitized message and writes the response. Shared by every handler.
// When the error maps to a 500 and defaultMessage is non-empty, the
// default message is returned instead of the generic one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMessage != "" {
		message = defaultMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// go-playground/validator message format:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
