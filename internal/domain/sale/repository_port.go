// internal/domain/sale/repository_port.go
package sale

import (
	"context"
	"time"
)

// Repository is a persistence port for sale records.
//
// Storage (Firestore):
// - collection: sales
// - docId: generated UUID
//
// Records are append-only; there is intentionally no Update or Delete.
type Repository interface {
	// Insert appends a sale record.
	Insert(ctx context.Context, r *Record) error

	// ListBetween returns sales with from <= SaleDate <= to, newest first.
	// Zero times drop the corresponding bound.
	ListBetween(ctx context.Context, from, to time.Time) ([]*Record, error)

	// ListByItem returns sales for one item, newest first.
	ListByItem(ctx context.Context, itemID string) ([]*Record, error)

	// ListByCustomer returns sales for one customer email, newest first.
	ListByCustomer(ctx context.Context, customerEmail string) ([]*Record, error)
}
