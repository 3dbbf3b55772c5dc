package summary

import (
	"errors"
	"fmt"
)

// Input validation errors: always the caller's fault, never retried.
var (
	ErrEmptyPatientID    = errors.New("patient id cannot be empty")
	ErrEmptyVitals       = errors.New("vitals window cannot be empty")
	ErrMissingAssessment = errors.New("risk assessment cannot be empty")
)

// ErrMissingAPIKey is a configuration error raised when the transport is
// constructed, before any network attempt.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable not set")

// APIError wraps a fatal summarization transport failure: either an
// authentication failure or the last error after retry exhaustion.
type APIError struct {
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("summarization api error: %v", e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationError reports a generated summary that failed the output
// checks. The pipeline does not regenerate on validation failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated summary failed validation: %s", e.Reason)
}
