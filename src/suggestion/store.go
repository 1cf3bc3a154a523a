package suggestion

import "context"

// Store is the persistence contract. Implementations must keep soft-deleted
// records visible to every method: a tombstoned row still occupies its
// sequence number and its slot in extension ordering.
type Store interface {
	// Insert persists a new record, assigning ID and CreatedAt. A
	// duplicate (namespace, number) pair surfaces as ErrConflict.
	Insert(ctx context.Context, rec *Suggestion) error

	// Get returns the unique top-level record with the given number, or
	// ErrNotFound.
	Get(ctx context.Context, ns Namespace, number int64) (*Suggestion, error)

	// CountTopLevel counts every top-level record ever created in the
	// namespace, soft-deleted included, extensions excluded.
	CountTopLevel(ctx context.Context, ns Namespace) (int64, error)

	// ListExtensions returns the extension records of a base number,
	// ascending by creation time with insertion order as the tiebreak.
	ListExtensions(ctx context.Context, ns Namespace, extends int64) ([]*Suggestion, error)

	// ListByAuthor returns a user's records in the namespace, newest
	// first.
	ListByAuthor(ctx context.Context, ns Namespace, author string) ([]*Suggestion, error)

	// Update writes the given columns on a single record.
	Update(ctx context.Context, id uint64, fields map[string]interface{}) error
}
