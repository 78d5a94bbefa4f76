// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	cartdom "storefront/internal/domain/cartline"
	"storefront/internal/domain/common"
	itemdom "storefront/internal/domain/item"
)

// CartUsecase manages the per-customer cart.
// 不変条件: 1 顧客 × 1 商品 につき cart line は最大 1 本。
type CartUsecase struct {
	lines cartdom.Repository
	items itemdom.Repository

	clock Clock
	newID func() string
}

func NewCartUsecase(lines cartdom.Repository, items itemdom.Repository) *CartUsecase {
	return &CartUsecase{
		lines: lines,
		items: items,
		clock: systemClock{},
		newID: uuid.NewString,
	}
}

// WithClock swaps the time source (tests).
func (uc *CartUsecase) WithClock(c Clock) *CartUsecase {
	uc.clock = c
	return uc
}

// AddItem puts one unit of the item into the customer's cart.
// An existing line for the same item is incremented instead of duplicated.
func (uc *CartUsecase) AddItem(ctx context.Context, customerEmail, itemID string) (*cartdom.Line, error) {
	email, err := normalizeEmail(customerEmail)
	if err != nil {
		return nil, err
	}

	it, err := uc.items.Get(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return nil, err
	}

	existing, err := uc.findLine(ctx, email, it.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// 決済途中で止まった line は売却済み。数量を混ぜると再実行時に
		// 追加分ごとスキップされてしまうため、編集は拒否する。
		if existing.Processed() {
			return nil, fmt.Errorf("%w: checkout pending for this item, retry checkout or clear the cart first", common.ErrConflict)
		}
		existing.Quantity++
		if err := uc.lines.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	line, err := cartdom.NewFromItem(uc.newID(), email, it, 1, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.lines.Insert(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// SetQuantity sets the line quantity for the item.
// qty <= 0 removes the line. A missing line is a no-op.
func (uc *CartUsecase) SetQuantity(ctx context.Context, customerEmail, itemID string, qty int) error {
	email, err := normalizeEmail(customerEmail)
	if err != nil {
		return err
	}

	line, err := uc.findLine(ctx, email, strings.TrimSpace(itemID))
	if err != nil {
		return err
	}
	if line == nil {
		return nil
	}
	if line.Processed() {
		return fmt.Errorf("%w: checkout pending for this item, retry checkout or clear the cart first", common.ErrConflict)
	}

	if qty <= 0 {
		return uc.lines.Delete(ctx, line.ID)
	}

	line.Quantity = qty
	return uc.lines.Update(ctx, line)
}

// RemoveItem deletes the item's line from the cart; absent line is a no-op.
func (uc *CartUsecase) RemoveItem(ctx context.Context, customerEmail, itemID string) error {
	email, err := normalizeEmail(customerEmail)
	if err != nil {
		return err
	}

	line, err := uc.findLine(ctx, email, strings.TrimSpace(itemID))
	if err != nil {
		return err
	}
	if line == nil {
		return nil
	}
	return uc.lines.Delete(ctx, line.ID)
}

// ListLines returns all of the customer's cart lines.
func (uc *CartUsecase) ListLines(ctx context.Context, customerEmail string) ([]*cartdom.Line, error) {
	email, err := normalizeEmail(customerEmail)
	if err != nil {
		return nil, err
	}
	return uc.lines.ListByCustomer(ctx, email)
}

// Clear deletes every line in the customer's cart.
func (uc *CartUsecase) Clear(ctx context.Context, customerEmail string) error {
	lines, err := uc.ListLines(ctx, customerEmail)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if err := uc.lines.Delete(ctx, l.ID); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CartUsecase) findLine(ctx context.Context, email, itemID string) (*cartdom.Line, error) {
	lines, err := uc.lines.ListByCustomer(ctx, email)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.ItemID == itemID {
			return l, nil
		}
	}
	return nil, nil
}

func normalizeEmail(email string) (string, error) {
	e := strings.TrimSpace(strings.ToLower(email))
	if e == "" {
		return "", fmt.Errorf("%w: customer email is empty", common.ErrValidation)
	}
	return e, nil
}
