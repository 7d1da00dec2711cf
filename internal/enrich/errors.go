package enrich

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNoGenerator is reported when no insight generator is configured.
var ErrNoGenerator = eris.New("no insight generator configured")

// RequestError is the only fatal error class: the top-level input is
// unusable (e.g. empty company name). Everything else degrades.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "invalid request: " + e.Reason
}

// NewRequestError creates a RequestError with the given reason.
func NewRequestError(reason string) *RequestError {
	return &RequestError{Reason: reason}
}

// AdapterError records a single provider failure. It is isolated to the
// adapter's PartialRecord and never aborts the request.
type AdapterError struct {
	SourceID string
	Err      error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter %s: %v", e.SourceID, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// ValidationError marks a field value rejected during cleaning. The field
// becomes null; the request continues.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s rejected: %s", e.Field, e.Reason)
}

// GenerationError marks an insight-generator boundary failure. Sections
// degrade to unavailable; the report is still produced.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("insight generation: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
