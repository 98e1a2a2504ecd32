package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/mom-agent/internal/api/shared"
	"github.com/phrazzld/mom-agent/internal/domain"
	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/service"
	"github.com/phrazzld/mom-agent/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrMeetingNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrProjectExists),
		errors.Is(err, service.ErrMeetingExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrEmptyTranscript),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

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

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, service.ErrProjectNotFound), errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"
	case errors.Is(err, service.ErrMeetingNotFound), errors.Is(err, store.ErrMeetingNotFound):
		return "Meeting not found"
	case errors.Is(err, service.ErrProjectExists), errors.Is(err, store.ErrProjectExists):
		return "Project already exists"
	case errors.Is(err, service.ErrMeetingExists), errors.Is(err, store.ErrMeetingExists):
		return "Meeting already exists"
	case errors.Is(err, generation.ErrEmptyTranscript):
		return "Transcript cannot be empty"
	case errors.As(err, &verr):
		return capitalize(verr.Error())
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, service.ErrInvalidInput):
		if msg, ok := strings.CutPrefix(err.Error(), service.ErrInvalidInput.Error()+": "); ok {
			return capitalize(msg)
		}
		return "Invalid input"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message that
// names the offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
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

// HandleAPIError maps err to a status code and safe message, logs the
// redacted detail and writes the error response.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
