package admin

import (
	"errors"
	"fmt"
)

// Classified failure kinds. Store implementations wrap one of these so
// callers can branch with errors.Is without parsing messages.
var (
	// ErrConnectivity marks store-unreachable failures. They surface per
	// affected dashboard section and never abort sibling sections.
	ErrConnectivity = errors.New("admin: store unreachable")
	// ErrNotFound marks a missing delete/lookup target.
	ErrNotFound = errors.New("admin: not found")
	// ErrValidation marks input rejected before any store call was issued,
	// or a write the store itself refused.
	ErrValidation = errors.New("admin: validation failed")
	// ErrConfiguration marks missing connection parameters. It is fatal at
	// startup, before any view is served.
	ErrConfiguration = errors.New("admin: configuration invalid")
)

// ValidationError rejects a create input, naming the offending field.
// No partial write occurs: validation runs before the store is called.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("admin: invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match typed validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
