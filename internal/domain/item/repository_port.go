// internal/domain/item/repository_port.go
package item

import "context"

// Repository is a persistence port for Item.
//
// Storage (Firestore):
// - collection: items
// - docId: generated UUID
//
// Concurrency:
// - Get/List populate Item.Version with an opaque token.
// - Update requires that token; a lost race returns common.ErrConflict.
type Repository interface {
	// Insert adds a new item. common.ErrConflict if the docId exists.
	Insert(ctx context.Context, it *Item) error

	// Get returns the item (with Version) or common.ErrNotFound.
	Get(ctx context.Context, id string) (*Item, error)

	// List returns all items. Search/category/price filtering and sorting
	// happen in the caller over the full result set.
	List(ctx context.Context) ([]*Item, error)

	// Update replaces the stored record conditioned on it.Version matching
	// the stored state. common.ErrConflict on a lost race,
	// common.ErrNotFound if the record was deleted.
	Update(ctx context.Context, it *Item) error

	// Delete removes the item; deleting an absent item is not an error.
	Delete(ctx context.Context, id string) error
}
