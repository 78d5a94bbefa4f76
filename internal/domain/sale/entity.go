// internal/domain/sale/entity.go
package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/common"
	"storefront/internal/domain/money"
)

// CategoryUnknown is recorded when the item was deleted between
// add-to-cart and checkout.
const CategoryUnknown = "Unknown"

// Record is one committed sale in the sales collection.
// Records are immutable once written: there is no Update on the port.
//
// ItemName/UnitPrice are the cart line's denormalized snapshot, not a live
// join against the item.
type Record struct {
	ID            string          `json:"id" firestore:"id"`
	CheckoutID    string          `json:"checkoutId" firestore:"checkoutId"`
	CustomerEmail string          `json:"customerEmail" firestore:"customerEmail"`
	CustomerName  string          `json:"customerName" firestore:"customerName"`
	ItemID        string          `json:"itemId" firestore:"itemId"`
	ItemName      string          `json:"itemName" firestore:"itemName"`
	ItemCategory  string          `json:"itemCategory" firestore:"itemCategory"`
	UnitPrice     decimal.Decimal `json:"unitPrice" firestore:"-"`
	QuantitySold  int             `json:"quantitySold" firestore:"quantitySold"`
	TotalAmount   decimal.Decimal `json:"totalAmount" firestore:"-"`
	SaleDate      time.Time       `json:"saleDate" firestore:"saleDate"`
}

// New builds a record; TotalAmount is computed here (unit price × qty at
// 2 decimal places) and never recomputed afterwards.
func New(id, checkoutID, customerEmail, customerName, itemID, itemName, itemCategory string, unitPrice decimal.Decimal, qty int, saleDate time.Time) (*Record, error) {
	cat := strings.TrimSpace(itemCategory)
	if cat == "" {
		cat = CategoryUnknown
	}

	r := &Record{
		ID:            strings.TrimSpace(id),
		CheckoutID:    strings.TrimSpace(checkoutID),
		CustomerEmail: strings.TrimSpace(strings.ToLower(customerEmail)),
		CustomerName:  strings.TrimSpace(customerName),
		ItemID:        strings.TrimSpace(itemID),
		ItemName:      strings.TrimSpace(itemName),
		ItemCategory:  cat,
		UnitPrice:     unitPrice.Round(money.MinorUnits),
		QuantitySold:  qty,
		SaleDate:      saleDate,
	}
	r.TotalAmount = money.Total(r.UnitPrice, qty)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: sale record is nil", common.ErrValidation)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: sale id is empty", common.ErrValidation)
	}
	if r.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is empty", common.ErrValidation)
	}
	if r.ItemID == "" {
		return fmt.Errorf("%w: itemId is empty", common.ErrValidation)
	}
	if r.QuantitySold < 1 {
		return fmt.Errorf("%w: quantitySold must be >= 1", common.ErrValidation)
	}
	if r.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price is negative", common.ErrValidation)
	}
	return nil
}
