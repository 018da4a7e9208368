package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lexi-api/internal/api/shared"
	"github.com/phrazzld/lexi-api/internal/domain"
	"github.com/phrazzld/lexi-api/internal/service/achievement"
	"github.com/phrazzld/lexi-api/internal/service/auth"
	"github.com/phrazzld/lexi-api/internal/service/practice"
	"github.com/phrazzld/lexi-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Bad request errors
	case domain.IsValidationError(err),
		errors.As(err, &validationErrs),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, practice.ErrSessionCompleted):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, practice.ErrSessionNotFound),
		errors.Is(err, practice.ErrWordNotOwned),
		errors.Is(err, achievement.ErrAchievementNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Retries exhausted on a contended row
	case store.IsConcurrencyError(err):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var ve *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, domain.ErrUnauthorized):
		return "User ID not found or invalid"

	case errors.As(err, &ve):
		if ve.Field == "" {
			return "Invalid request: " + ve.Message
		}
		return fmt.Sprintf("Invalid %s: %s", ve.Field, ve.Message)
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case domain.IsValidationError(err), errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	case errors.Is(err, practice.ErrSessionCompleted):
		return "Practice session already completed"
	case errors.Is(err, practice.ErrSessionNotFound):
		return "Practice session not found"
	case errors.Is(err, practice.ErrWordNotOwned):
		return "Word not found in vocabulary"
	case errors.Is(err, achievement.ErrAchievementNotFound):
		return "Achievement not found"
	case store.IsNotFoundError(err):
		return "Resource not found"

	case store.IsConcurrencyError(err):
		return "The request conflicted with a concurrent update, please retry"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns struct validation failures into a message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid element"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err: the status comes from
// MapErrorToStatusCode, the body carries a sanitized message and the trace ID,
// and the redacted error is logged. defaultMsg replaces the generic message
// for server errors when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
