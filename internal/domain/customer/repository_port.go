// internal/domain/customer/repository_port.go
package customer

import "context"

// Repository is a persistence port for Customer.
//
// Storage (Firestore):
// - collection: customers
// - docId: generated UUID
type Repository interface {
	// Insert adds a new customer. Fails with common.ErrConflict if the
	// docId already exists (practically never; ids are random).
	Insert(ctx context.Context, c *Customer) error

	// Get returns the customer or common.ErrNotFound.
	Get(ctx context.Context, id string) (*Customer, error)

	// GetByEmail returns (nil, nil) if no customer has the email (nil policy).
	GetByEmail(ctx context.Context, email string) (*Customer, error)
}
