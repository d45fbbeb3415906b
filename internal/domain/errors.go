package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the lineage and analytics services. Handlers
// map these to HTTP failure codes; no error is swallowed below the API.

// ValidationError signals a malformed or unresolvable reference in a
// request, e.g. a product ID that does not exist.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotAuthenticatedError signals a request that requires an acting user
// but carries none.
type NotAuthenticatedError struct{}

func (e *NotAuthenticatedError) Error() string {
	return "not authenticated"
}

// StoreError wraps a failed repository operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ComputationError signals that an aggregation received input it cannot
// produce a meaningful statistic from, e.g. an empty collection.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation: %s", e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotAuthenticated reports whether err is a NotAuthenticatedError.
func IsNotAuthenticated(err error) bool {
	var ne *NotAuthenticatedError
	return errors.As(err, &ne)
}

// IsComputation reports whether err is a ComputationError.
func IsComputation(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}
