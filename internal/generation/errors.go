package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when a service or adapter is constructed
	// with missing or invalid settings.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyTranscript is returned when there is nothing to summarize. No
	// request is issued.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrNoModels is returned when the model sequence is empty.
	ErrNoModels = errors.New("no models to try")

	// ErrEmptyReply is returned when a provider answers without usable text.
	ErrEmptyReply = errors.New("empty reply from language model")

	// ErrContentBlocked is returned when the provider refuses the content on
	// safety grounds.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)

// ProviderError carries the HTTP status reported by a provider SDK, when
// there is one, so failures can be classified without parsing text.
type ProviderError struct {
	Provider   string
	Model      string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s model %s: status %d: %v", e.Provider, e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s model %s: %v", e.Provider, e.Model, e.Err)
}

// Unwrap returns the underlying SDK error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err for provider and model. A nil err yields nil.
func NewProviderError(provider, model string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Model: model, StatusCode: statusCode, Err: err}
}
