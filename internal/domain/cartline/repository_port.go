// internal/domain/cartline/repository_port.go
package cartline

import "context"

// Repository is a persistence port for cart lines.
//
// Storage (Firestore):
// - collection: cartLines
// - docId: generated UUID
// - customer scoping via a customerEmail equality query
//
// Iteration order of ListByCustomer is whatever the store returns; callers
// must not rely on insertion order.
type Repository interface {
	// Insert adds a new line.
	Insert(ctx context.Context, l *Line) error

	// Update replaces the line conditioned on l.Version.
	// common.ErrConflict on a lost race, common.ErrNotFound if deleted.
	Update(ctx context.Context, l *Line) error

	// Delete removes the line; deleting an absent line is not an error.
	Delete(ctx context.Context, id string) error

	// ListByCustomer returns every line for the customer (with Versions).
	ListByCustomer(ctx context.Context, customerEmail string) ([]*Line, error)
}
