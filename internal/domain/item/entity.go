// internal/domain/item/entity.go
package item

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/common"
	"storefront/internal/domain/money"
)

// AvailableCategories is the fixed catalog category set.
var AvailableCategories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Accessories",
	"Home & Kitchen",
}

// LowStockThreshold marks items surfaced on the admin dashboard.
const LowStockThreshold = 5

// Item is a catalog row in the items collection.
// Item is the source of truth for name/price; cart lines and sale records
// take denormalized snapshots and are never back-filled.
type Item struct {
	ID          string          `json:"id" firestore:"id"`
	Name        string          `json:"name" firestore:"name"`
	Description string          `json:"description" firestore:"description"`
	Category    string          `json:"category" firestore:"category"`
	Price       decimal.Decimal `json:"price" firestore:"-"`
	Quantity    int             `json:"quantity" firestore:"quantity"`
	Image       string          `json:"image" firestore:"image"`

	// Version is the opaque concurrency token from the last read;
	// required by Repository.Update.
	Version string `json:"-" firestore:"-"`
}

// New validates and builds an item.
func New(id, name, description, category string, price decimal.Decimal, quantity int, image string) (*Item, error) {
	it := &Item{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Price:       price.Round(money.MinorUnits),
		Quantity:    quantity,
		Image:       strings.TrimSpace(image),
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

func (it *Item) Validate() error {
	if it == nil {
		return fmt.Errorf("%w: item is nil", common.ErrValidation)
	}
	if it.ID == "" {
		return fmt.Errorf("%w: item id is empty", common.ErrValidation)
	}
	if it.Name == "" {
		return fmt.Errorf("%w: item name is empty", common.ErrValidation)
	}
	if it.Price.IsNegative() {
		return fmt.Errorf("%w: item price is negative", common.ErrValidation)
	}
	if it.Quantity < 0 {
		return fmt.Errorf("%w: item quantity is negative", common.ErrValidation)
	}
	return nil
}

// DecrementStock reduces quantity on hand.
// Fails with common.ErrInsufficientStock when amount exceeds the current
// quantity; the item is left unchanged on failure.
func (it *Item) DecrementStock(amount int) error {
	if it == nil {
		return fmt.Errorf("%w: item is nil", common.ErrValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: decrement amount must be >= 1", common.ErrValidation)
	}
	if it.Quantity < amount {
		return fmt.Errorf("%w: %s has %d, requested %d", common.ErrInsufficientStock, it.Name, it.Quantity, amount)
	}
	it.Quantity -= amount
	return nil
}

// LowStock reports whether the item should appear in low-stock views.
func (it *Item) LowStock() bool {
	return it != nil && it.Quantity <= LowStockThreshold
}
