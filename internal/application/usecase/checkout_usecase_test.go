// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cartline"
	"storefront/internal/domain/common"
	itemdom "storefront/internal/domain/item"
	saledom "storefront/internal/domain/sale"
)

type checkoutFixture struct {
	items  *fakeItemRepo
	lines  *fakeLineRepo
	sales  *fakeSaleRepo
	mailer *fakeMailer

	catalog *CatalogUsecase
	cart    *CartUsecase
	uc      *CheckoutUsecase

	now time.Time
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		items:  newFakeItemRepo(),
		lines:  newFakeLineRepo(),
		sales:  newFakeSaleRepo(),
		mailer: &fakeMailer{},
		now:    time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	clock := fixedClock{f.now}

	f.catalog = NewCatalogUsecase(f.items, nil)
	f.cart = NewCartUsecase(f.lines, f.items).WithClock(clock)
	f.cart.newID = sequentialIDs("line")

	f.uc = NewCheckoutUsecase(f.cart, f.catalog, f.lines, f.sales, f.mailer).WithClock(clock)
	f.uc.newID = sequentialIDs("co")

	return f
}

func (f *checkoutFixture) addItem(t *testing.T, id, name, category, price string, stock int) *itemdom.Item {
	t.Helper()
	it, err := itemdom.New(id, name, "", category, decimal.RequireFromString(price), stock, "")
	require.NoError(t, err)
	require.NoError(t, f.items.Insert(context.Background(), it))
	return it
}

func (f *checkoutFixture) addLine(t *testing.T, lineID, email string, it *itemdom.Item, qty int) {
	t.Helper()
	got, err := f.items.Get(context.Background(), it.ID)
	require.NoError(t, err)
	l, err := cartdom.NewFromItem(lineID, email, got, qty, f.now)
	require.NoError(t, err)
	require.NoError(t, f.lines.Insert(context.Background(), l))
}

func TestCheckout_HappyPath(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	b := f.addItem(t, "item-b", "Novel", "Books", "5.00", 3)
	f.addLine(t, "l1", "jo@example.com", a, 2)
	f.addLine(t, "l2", "jo@example.com", b, 1)

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, 2, purchased)

	// stock decremented
	gotA, err := f.items.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, gotA.Quantity)
	gotB, err := f.items.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotB.Quantity)

	// one record per line, totals from the line snapshot
	recs, err := f.sales.ListByCustomer(ctx, "jo@example.com")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	byItem := map[string]*saledom.Record{}
	for _, r := range recs {
		byItem[r.ItemID] = r
	}
	assert.Equal(t, "20", byItem[a.ID].TotalAmount.String())
	assert.Equal(t, "Electronics", byItem[a.ID].ItemCategory)
	assert.Equal(t, "5", byItem[b.ID].TotalAmount.String())
	assert.Equal(t, byItem[a.ID].CheckoutID, byItem[b.ID].CheckoutID, "both records belong to one run")

	// cart cleared, receipt sent once
	left, err := f.cart.ListLines(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Len(t, f.mailer.last, 2)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	purchased, err := f.uc.Checkout(context.Background(), "jo@example.com", "Jo")
	assert.Equal(t, 0, purchased)
	assert.ErrorIs(t, err, common.ErrEmptyCart)
	assert.Equal(t, 0, f.mailer.sent)
}

func TestCheckout_InsufficientStockAbortsMidRun(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	b := f.addItem(t, "item-b", "Novel", "Books", "5.00", 3)
	f.addLine(t, "l1", "jo@example.com", a, 1)
	f.addLine(t, "l2", "jo@example.com", b, 10) // more than stock

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	assert.ErrorIs(t, err, common.ErrInsufficientStock)
	assert.Equal(t, 1, purchased, "first line committed before the abort")

	// committed line stays committed; failed line untouched
	recs, _ := f.sales.ListByCustomer(ctx, "jo@example.com")
	require.Len(t, recs, 1)
	assert.Equal(t, a.ID, recs[0].ItemID)

	gotB, err := f.items.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, gotB.Quantity, "failed decrement leaves stock unchanged")

	// cart NOT cleared, no receipt
	left, _ := f.cart.ListLines(ctx, "jo@example.com")
	assert.Len(t, left, 2)
	assert.Equal(t, 0, f.mailer.sent)
}

func TestCheckout_RetrySkipsProcessedLines(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	b := f.addItem(t, "item-b", "Novel", "Books", "5.00", 3)
	f.addLine(t, "l1", "jo@example.com", a, 1)
	f.addLine(t, "l2", "jo@example.com", b, 10)

	_, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.ErrorIs(t, err, common.ErrInsufficientStock)

	// restock and retry the same cart
	_, err = f.catalog.SetStock(ctx, b.ID, 10)
	require.NoError(t, err)

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, 2, purchased)

	// the stamped line was not sold twice
	recs, _ := f.sales.ListByCustomer(ctx, "jo@example.com")
	require.Len(t, recs, 2)
	gotA, _ := f.items.Get(ctx, a.ID)
	assert.Equal(t, 4, gotA.Quantity, "item A decremented exactly once across both runs")

	left, _ := f.cart.ListLines(ctx, "jo@example.com")
	assert.Empty(t, left)
}

func TestCheckout_CartEditBlockedBetweenAbortAndRetry(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	b := f.addItem(t, "item-b", "Novel", "Books", "5.00", 3)
	f.addLine(t, "l1", "jo@example.com", a, 1)
	f.addLine(t, "l2", "jo@example.com", b, 10)

	_, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.ErrorIs(t, err, common.ErrInsufficientStock)

	// line A is already sold; merging more units into the stamped line
	// would make the retry skip them unsold
	_, err = f.cart.AddItem(ctx, "jo@example.com", a.ID)
	assert.ErrorIs(t, err, common.ErrConflict)
	err = f.cart.SetQuantity(ctx, "jo@example.com", a.ID, 3)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = f.catalog.SetStock(ctx, b.ID, 10)
	require.NoError(t, err)

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, 2, purchased)

	gotA, _ := f.items.Get(ctx, a.ID)
	assert.Equal(t, 4, gotA.Quantity, "exactly one unit of A sold across both runs")

	recs, _ := f.sales.ListByCustomer(ctx, "jo@example.com")
	assert.Len(t, recs, 2)

	left, _ := f.cart.ListLines(ctx, "jo@example.com")
	assert.Empty(t, left)
}

func TestCheckout_DeletedItemSellsFromSnapshot(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	f.addLine(t, "l1", "jo@example.com", a, 2)

	// item vanishes between add-to-cart and checkout
	require.NoError(t, f.items.Delete(ctx, a.ID))

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, 1, purchased)

	recs, _ := f.sales.ListByCustomer(ctx, "jo@example.com")
	require.Len(t, recs, 1)
	assert.Equal(t, saledom.CategoryUnknown, recs[0].ItemCategory)
	assert.Equal(t, "Laptop", recs[0].ItemName, "name comes from the line snapshot")
	assert.Equal(t, "20", recs[0].TotalAmount.String())

	left, _ := f.cart.ListLines(ctx, "jo@example.com")
	assert.Empty(t, left)
}

func TestCheckout_ConcurrentDecrementConflictAborts(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	f.addLine(t, "l1", "jo@example.com", a, 1)

	f.items.failUpdate[a.ID] = fmt.Errorf("%w: lost the race", common.ErrConflict)

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, 0, purchased)

	recs, _ := f.sales.ListByCustomer(ctx, "jo@example.com")
	assert.Empty(t, recs, "no sale recorded for the conflicted line")
	assert.Equal(t, 0, f.mailer.sent)
}

func TestCheckout_StampFailureAbortsAfterSale(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	f.addLine(t, "l1", "jo@example.com", a, 1)

	f.lines.failUpdate["l1"] = fmt.Errorf("%w: store flaked", common.ErrStorageUnavailable)

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, 0, purchased)

	// the sale write is observable even though the run failed
	recs, _ := f.sales.ListByCustomer(ctx, "jo@example.com")
	assert.Len(t, recs, 1)

	left, _ := f.cart.ListLines(ctx, "jo@example.com")
	assert.Len(t, left, 1, "cart survives a failed run")
}

func TestCheckout_MailFailureDoesNotFailCheckout(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	a := f.addItem(t, "item-a", "Laptop", "Electronics", "10.00", 5)
	f.addLine(t, "l1", "jo@example.com", a, 1)

	f.mailer.err = fmt.Errorf("sendgrid send failed: status=500")

	purchased, err := f.uc.Checkout(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, 1, purchased)

	left, _ := f.cart.ListLines(ctx, "jo@example.com")
	assert.Empty(t, left)
}
