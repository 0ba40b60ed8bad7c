package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy shared by the store, the orchestrators and the HTTP layer.
// All of these are recoverable: handlers translate them into a status code
// and a user-facing message, they never crash the process.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrConflict          = errors.New("concurrent write conflict")
	ErrAuthFailed        = errors.New("invalid credentials")
	ErrForbidden         = errors.New("insufficient role")
	ErrDuplicateUsername = errors.New("username already exists")
)

// ValidationError reports every violated field, not just the first, so a
// caller can fix a form in one round trip.
type ValidationError struct {
	Fields map[string]string // field name -> violation message
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, f := range names {
		parts[i] = f + ": " + e.Fields[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError, or returns nil when no field
// was violated.
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// OwnedEntityError blocks deletion of a Vehicle while a Person still claims
// its registration number. It names the owner so the message can tell the
// user who to deal with first.
type OwnedEntityError struct {
	RegNum    string // the vehicle's registration number
	OwnerName string // the claiming person's name
}

func (e *OwnedEntityError) Error() string {
	return fmt.Sprintf("cannot delete vehicle %s because it is owned by %s", e.RegNum, e.OwnerName)
}
