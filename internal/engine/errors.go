package engine

import (
	"errors"
	"fmt"
)

// OrderError represents a failure detected by an engine operation.
//
// Three categories exist:
//   - Validation rejected: the requested move/edit/deletion would violate
//     a dependency invariant; carries the blocking positions and a
//     human-readable message for the caller's UI.
//   - Not found: a referenced position or recipe does not exist.
//   - Store failure: the transaction failed mid-sequence and was rolled
//     back in full; opaque to the caller beyond the wrapped cause.
type OrderError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description. For validation errors this
	// is the exact sentence the UI presents.
	Message string

	// RecipeID identifies the affected recipe.
	RecipeID string

	// Position is the step position the operation targeted.
	Position int

	// Blocking lists the positions that prevent the operation, sorted
	// ascending. Only set for validation errors.
	Blocking []int

	// Err is the underlying cause, if any (store failures).
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeValidationRejected indicates the operation would violate a
	// dependency or position invariant.
	ErrCodeValidationRejected ErrorCode = "VALIDATION_REJECTED"

	// ErrCodeNotFound indicates a referenced recipe or position does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeStoreFailure indicates the store rejected a write; the whole
	// operation was rolled back.
	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"
)

// Error implements the error interface.
func (e *OrderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *OrderError) Unwrap() error {
	return e.Err
}

// IsValidationRejected returns true if the error is a validation rejection.
// Uses errors.As to handle wrapped errors.
func IsValidationRejected(err error) bool {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeValidationRejected
	}
	return false
}

// IsNotFound returns true if the error is a not-found rejection.
func IsNotFound(err error) bool {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeNotFound
	}
	return false
}

// IsStoreFailure returns true if the error wraps a store-level failure.
func IsStoreFailure(err error) bool {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeStoreFailure
	}
	return false
}

// newValidationError builds a validation rejection from an invalid Result.
func newValidationError(recipeID string, pos int, res Result) *OrderError {
	return &OrderError{
		Code:     ErrCodeValidationRejected,
		Message:  res.Message,
		RecipeID: recipeID,
		Position: pos,
		Blocking: res.Blocking,
	}
}

// newNotFoundError builds a not-found rejection for a missing position.
func newNotFoundError(recipeID string, pos int) *OrderError {
	return &OrderError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("Step %d does not exist", pos),
		RecipeID: recipeID,
		Position: pos,
	}
}

// newStoreFailure wraps a store error; op names the failed engine operation.
func newStoreFailure(recipeID, op string, err error) *OrderError {
	return &OrderError{
		Code:     ErrCodeStoreFailure,
		Message:  fmt.Sprintf("%s failed", op),
		RecipeID: recipeID,
		Err:      err,
	}
}
