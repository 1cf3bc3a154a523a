package suggestion

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an identifier resolved to no record.
	ErrNotFound = errors.New("suggestion not found")

	// ErrAlreadyDeleted guards double tombstoning and any write to an
	// already-deleted record.
	ErrAlreadyDeleted = errors.New("suggestion already deleted")

	// ErrExtensionRange blocks creation or display of more than 25
	// extensions per base record.
	ErrExtensionRange = errors.New("extension letters exhausted for this suggestion")

	// ErrInvalidIdentifier means the identifier cannot name any record:
	// no number, or a letter outside b-z (the base record is addressed by
	// its bare number, never as "a").
	ErrInvalidIdentifier = errors.New("invalid suggestion identifier")

	// ErrInvalidTransition rejects transitions the state machine forbids.
	// Currently that is only clearing a status back to unset.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict is raised when concurrent allocation for the same
	// namespace is detected. The caller should retry the whole submission
	// once, not just the numbering step.
	ErrConflict = errors.New("concurrent suggestion allocation")
)

// ValidationError rejects malformed input on a named field. It is never
// fatal; handlers surface the reason to the submitter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
