// ABOUTME: Error taxonomy returned by the ingestion service
// ABOUTME: Validation, not-found and conflict errors are caller-facing; StoreError wraps persistence failures
package ingest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/leads"
)

// ValidationError reports a missing or malformed input field. No writes happen before it
// is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced workspace, contact, pipeline item or inbox item
// that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness collision the service could not resolve.
type ConflictError struct {
	Entity string
	Key    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Entity, e.Key)
}

// StoreError wraps an underlying persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func fromFieldError(err error) error {
	var fe *leads.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Reason: fe.Reason}
	}
	return &ValidationError{Field: "payload", Reason: err.Error()}
}

// ParseID parses a UUID supplied for field, reporting a ValidationError when malformed.
func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		if value == "" {
			return uuid.Nil, invalid(field, "is required")
		}
		return uuid.Nil, invalid(field, "must be a UUID")
	}
	return id, nil
}

func isCallerError(err error) bool {
	var ve *ValidationError
	var nf *NotFoundError
	var ce *ConflictError
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ce)
}
