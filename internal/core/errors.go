package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotFound covers missing entities and cross-tenant references:
	// a category owned by another user is reported exactly like one that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers uniqueness violations (duplicate category name
	// per user) and delete-time referential checks.
	ErrConflict = errors.New("conflict")
)

// FieldError reports a single structural validation failure with the
// machine-readable field name and the offending value.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationErrors collects every violation of one input; validation never
// stops at the first failure.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// OrNil returns the collection as an error, or nil when empty.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// CategoryInUseError rejects deleting a category that transactions still
// reference. It unwraps to ErrConflict.
type CategoryInUseError struct {
	CategoryID       string
	TransactionCount int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %s has %d linked transactions", e.CategoryID, e.TransactionCount)
}

func (e *CategoryInUseError) Unwrap() error {
	return ErrConflict
}
