// internal/domain/cartline/entity.go
package cartline

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/common"
	"storefront/internal/domain/item"
	"storefront/internal/domain/money"
)

// Line is one cart row in the cartLines collection.
// At most one line exists per (customerEmail, itemId); adding the same item
// again increments Quantity instead.
//
// ItemName/ItemPrice/ItemImage are denormalized snapshots taken when the
// line was created. They deliberately do NOT follow later item edits.
type Line struct {
	ID            string          `json:"id" firestore:"id"`
	CustomerEmail string          `json:"customerEmail" firestore:"customerEmail"`
	ItemID        string          `json:"itemId" firestore:"itemId"`
	ItemName      string          `json:"itemName" firestore:"itemName"`
	ItemPrice     decimal.Decimal `json:"itemPrice" firestore:"-"`
	Quantity      int             `json:"quantity" firestore:"quantity"`
	ItemImage     string          `json:"itemImage" firestore:"itemImage"`

	// CheckoutID is empty until the line has been converted to a sale.
	// A retried checkout skips stamped lines instead of selling them twice.
	CheckoutID string `json:"-" firestore:"checkoutId"`

	AddedAt time.Time `json:"addedAt" firestore:"addedAt"`

	// Version is the opaque concurrency token from the last read.
	Version string `json:"-" firestore:"-"`
}

// NewFromItem snapshots the item's current name/price/image into a new line.
func NewFromItem(id, customerEmail string, it *item.Item, qty int, now time.Time) (*Line, error) {
	if it == nil {
		return nil, fmt.Errorf("%w: item is nil", common.ErrValidation)
	}
	l := &Line{
		ID:            strings.TrimSpace(id),
		CustomerEmail: strings.TrimSpace(strings.ToLower(customerEmail)),
		ItemID:        it.ID,
		ItemName:      it.Name,
		ItemPrice:     it.Price.Round(money.MinorUnits),
		Quantity:      qty,
		ItemImage:     it.Image,
		AddedAt:       now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: cart line is nil", common.ErrValidation)
	}
	if l.ID == "" {
		return fmt.Errorf("%w: cart line id is empty", common.ErrValidation)
	}
	if l.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is empty", common.ErrValidation)
	}
	if l.ItemID == "" {
		return fmt.Errorf("%w: itemId is empty", common.ErrValidation)
	}
	if l.Quantity < 1 {
		return fmt.Errorf("%w: cart line quantity must be >= 1", common.ErrValidation)
	}
	return nil
}

// Processed reports whether the line was already converted by a checkout.
func (l *Line) Processed() bool {
	return l != nil && strings.TrimSpace(l.CheckoutID) != ""
}
