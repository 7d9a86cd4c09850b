package service

import (
	"fmt"

	"github.com/mmynk/forkful/internal/storage"
)

var (
	// ErrNotFound marks a referenced user, group or vote that does not exist.
	ErrNotFound = storage.ErrNotFound
	// ErrNotMember marks a vote from a user outside the group.
	ErrNotMember = storage.ErrNotMember
)

// ValidationError reports client-supplied data that violates a field contract.
// Field names the offending request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
