// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/common"
	itemdom "storefront/internal/domain/item"
	mediadom "storefront/internal/domain/media"
)

// CatalogUsecase coordinates item CRUD and the stock-quantity invariant.
type CatalogUsecase struct {
	items itemdom.Repository

	// blobs is optional; when set, DeleteItem also removes the item image.
	blobs mediadom.BlobStore

	newID func() string
}

func NewCatalogUsecase(items itemdom.Repository, blobs mediadom.BlobStore) *CatalogUsecase {
	return &CatalogUsecase{
		items: items,
		blobs: blobs,
		newID: uuid.NewString,
	}
}

// CreateItemInput is the app-level input for item creation.
type CreateItemInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Image       string
}

// CreateItem inserts a new item with a freshly generated id.
func (uc *CatalogUsecase) CreateItem(ctx context.Context, in CreateItemInput) (*itemdom.Item, error) {
	it, err := itemdom.New(uc.newID(), in.Name, in.Description, in.Category, in.Price, in.Quantity, in.Image)
	if err != nil {
		return nil, err
	}
	if err := uc.items.Insert(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetItem returns the item or common.ErrNotFound.
func (uc *CatalogUsecase) GetItem(ctx context.Context, id string) (*itemdom.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: item id is empty", common.ErrValidation)
	}
	return uc.items.Get(ctx, id)
}

// ListItems returns all items. Search/sort/filter happen in the caller.
func (uc *CatalogUsecase) ListItems(ctx context.Context) ([]*itemdom.Item, error) {
	return uc.items.List(ctx)
}

// UpdateItem replaces the stored record conditioned on it.Version.
// common.ErrConflict when the record changed since read.
func (uc *CatalogUsecase) UpdateItem(ctx context.Context, it *itemdom.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	return uc.items.Update(ctx, it)
}

// DeleteItem removes the item and (best-effort) its image blob.
func (uc *CatalogUsecase) DeleteItem(ctx context.Context, id string) error {
	it, err := uc.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if uc.blobs != nil && strings.TrimSpace(it.Image) != "" {
		if derr := uc.blobs.Delete(ctx, it.Image); derr != nil {
			// image cleanup failure must not block the item delete
			log.Printf("[catalog_uc] WARN: image delete failed itemId=%s url=%s err=%v", id, it.Image, derr)
		}
	}

	return uc.items.Delete(ctx, id)
}

// SetStock sets an absolute quantity (admin stock correction).
func (uc *CatalogUsecase) SetStock(ctx context.Context, id string, quantity int) (*itemdom.Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", common.ErrValidation)
	}

	it, err := uc.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	it.Quantity = quantity
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// DecrementStock reduces quantity on hand by amount.
// common.ErrInsufficientStock when amount exceeds the current quantity
// (quantity is left unchanged); common.ErrConflict when a concurrent writer
// won the race.
func (uc *CatalogUsecase) DecrementStock(ctx context.Context, id string, amount int) (*itemdom.Item, error) {
	it, err := uc.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := it.DecrementStock(amount); err != nil {
		return nil, err
	}
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}
