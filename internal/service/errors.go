package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/mom-agent/internal/domain"
	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/store"
)

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrProjectNotFound maps to 404.
	ErrProjectNotFound = errors.New("project not found")

	// ErrMeetingNotFound maps to 404.
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrProjectExists maps to 409.
	ErrProjectExists = errors.New("project already exists")

	// ErrMeetingExists maps to 409.
	ErrMeetingExists = errors.New("meeting already exists")

	// ErrInvalidInput maps to 400. The wrapped error carries the detail.
	ErrInvalidInput = errors.New("invalid input")
)

// MeetingServiceError wraps errors from the meeting service with context.
type MeetingServiceError struct {
	// Operation is the operation that failed (e.g., "create_meeting", "generate_draft")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for MeetingServiceError.
func (e *MeetingServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("meeting service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("meeting service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MeetingServiceError) Unwrap() error {
	return e.Err
}

// NewMeetingServiceError creates a MeetingServiceError. Store sentinels are
// translated into the service sentinels and returned unwrapped; validation
// failures become ErrInvalidInput with their detail preserved.
func NewMeetingServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrProjectNotFound), errors.Is(err, store.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, ErrMeetingNotFound), errors.Is(err, store.ErrMeetingNotFound):
		return ErrMeetingNotFound
	case errors.Is(err, ErrProjectExists), errors.Is(err, store.ErrProjectExists):
		return ErrProjectExists
	case errors.Is(err, ErrMeetingExists), errors.Is(err, store.ErrMeetingExists):
		return ErrMeetingExists
	case errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrEmptyTranscript):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return &MeetingServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
