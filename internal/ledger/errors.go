// Package ledger implements the provenance core: content fingerprinting,
// scan-token decoding, timeline assembly, and the typed error taxonomy shared
// by the service and handler layers.
package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a lookup by id or transaction id misses.
	ErrNotFound = errors.New("record not found")

	// ErrStorageTimeout is returned when the backing store did not answer
	// within the operation deadline. Callers may retry with backoff.
	ErrStorageTimeout = errors.New("storage timeout")
)

// ValidationError reports malformed or missing input fields. It is surfaced
// to the caller verbatim, one message per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// OrderingError rejects an event appended out of temporal sequence.
// The caller must resubmit with a corrected timestamp.
type OrderingError struct {
	Attempted time.Time
	Latest    time.Time
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("event timestamp %s precedes latest event %s",
		e.Attempted.Format(time.RFC3339), e.Latest.Format(time.RFC3339))
}

// MalformedTokenError reports a scan payload that parsed as structured data
// but carried no field usable for lookup, or could not be decoded at all.
type MalformedTokenError struct {
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return "malformed token: " + e.Reason
}
