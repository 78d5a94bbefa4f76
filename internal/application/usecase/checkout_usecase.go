// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	cartdom "storefront/internal/domain/cartline"
	"storefront/internal/domain/common"
	saledom "storefront/internal/domain/sale"
)

// ReceiptSender はチェックアウト成功後のレシート送信ポート。
// 送信失敗は checkout を失敗させない。
type ReceiptSender interface {
	SendReceipt(ctx context.Context, toEmail, customerName, checkoutID string, records []*saledom.Record) error
}

// CheckoutUsecase converts a customer's cart into sale records and stock
// decrements.
//
// The conversion is NOT atomic. Each line commits independently, so an abort
// midway leaves earlier lines sold and later lines untouched. Every write of
// one run carries the same checkout id, and already-stamped lines are skipped
// on retry so a re-run never sells a line twice.
type CheckoutUsecase struct {
	cart    *CartUsecase
	catalog *CatalogUsecase
	lines   cartdom.Repository
	sales   saledom.Repository

	// mailer is optional; nil disables receipt mail.
	mailer ReceiptSender

	clock Clock
	newID func() string
}

func NewCheckoutUsecase(
	cart *CartUsecase,
	catalog *CatalogUsecase,
	lines cartdom.Repository,
	sales saledom.Repository,
	mailer ReceiptSender,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cart:    cart,
		catalog: catalog,
		lines:   lines,
		sales:   sales,
		mailer:  mailer,
		clock:   systemClock{},
		newID:   uuid.NewString,
	}
}

// WithClock swaps the time source (tests).
func (uc *CheckoutUsecase) WithClock(c Clock) *CheckoutUsecase {
	uc.clock = c
	return uc
}

// Checkout processes every line in the customer's cart and returns the number
// of distinct items purchased.
//
// Per line:
//   - already stamped with a checkout id: counted, skipped (retry path)
//   - item deleted since add-to-cart: sale recorded from the line's snapshot
//     with category "Unknown", no stock decrement
//   - stock short or a concurrent decrement won: abort; lines committed so
//     far stay committed
//
// The cart is cleared only after every line succeeded.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, customerEmail, customerName string) (int, error) {
	lines, err := uc.cart.ListLines(ctx, customerEmail)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: nothing to check out for %s", common.ErrEmptyCart, customerEmail)
	}

	checkoutID := uc.newID()
	now := uc.clock.Now()

	purchased := 0
	var records []*saledom.Record

	for _, line := range lines {
		if line.Processed() {
			// 前回 run で売約済み。二重販売しない。
			log.Printf("[checkout_uc] skip processed line id=%s checkoutId=%s", line.ID, line.CheckoutID)
			purchased++
			continue
		}

		category, err := uc.sellLine(ctx, line)
		if err != nil {
			return purchased, err
		}

		rec, err := saledom.New(
			uc.newID(),
			checkoutID,
			line.CustomerEmail,
			customerName,
			line.ItemID,
			line.ItemName,
			category,
			line.ItemPrice,
			line.Quantity,
			now,
		)
		if err != nil {
			return purchased, err
		}
		if err := uc.sales.Insert(ctx, rec); err != nil {
			return purchased, err
		}

		line.CheckoutID = checkoutID
		if err := uc.lines.Update(ctx, line); err != nil {
			// 売上は書けたがスタンプできていない。再実行で二重販売の恐れが
			// あるため中断し、呼び出し側に同じ run の再試行を促す。
			log.Printf("[checkout_uc] ERROR: line stamp failed id=%s checkoutId=%s err=%v", line.ID, checkoutID, err)
			return purchased, err
		}

		purchased++
		records = append(records, rec)
	}

	if err := uc.cart.Clear(ctx, customerEmail); err != nil {
		return purchased, err
	}

	if uc.mailer != nil && len(records) > 0 {
		if merr := uc.mailer.SendReceipt(ctx, customerEmail, customerName, checkoutID, records); merr != nil {
			log.Printf("[checkout_uc] WARN: receipt mail failed checkoutId=%s err=%v", checkoutID, merr)
		}
	}

	log.Printf("[checkout_uc] checkout complete email=%s checkoutId=%s items=%d", customerEmail, checkoutID, purchased)
	return purchased, nil
}

// sellLine decrements stock for the line's item and returns the category to
// record. A deleted item yields "Unknown" with no decrement.
func (uc *CheckoutUsecase) sellLine(ctx context.Context, line *cartdom.Line) (string, error) {
	it, err := uc.catalog.GetItem(ctx, line.ItemID)
	if errors.Is(err, common.ErrNotFound) {
		log.Printf("[checkout_uc] WARN: item %s gone, selling from snapshot %q", line.ItemID, line.ItemName)
		return saledom.CategoryUnknown, nil
	}
	if err != nil {
		return "", err
	}

	if _, err := uc.catalog.DecrementStock(ctx, it.ID, line.Quantity); err != nil {
		return "", err
	}
	return it.Category, nil
}
