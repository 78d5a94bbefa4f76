// internal/application/usecase/sales_usecase.go
package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	itemdom "storefront/internal/domain/item"
	saledom "storefront/internal/domain/sale"
)

// dashboardWindow is the revenue lookback on the admin dashboard.
const dashboardWindow = 30 * 24 * time.Hour

// SalesReport is the filtered admin sales view.
type SalesReport struct {
	Sales               []*saledom.Record `json:"sales"`
	TotalRevenue        decimal.Decimal   `json:"totalRevenue"`
	TotalItemsSold      int               `json:"totalItemsSold"`
	BestSellingCategory string            `json:"bestSellingCategory"`
	TopCustomer         string            `json:"topCustomer"`
	Categories          []string          `json:"categories"`
}

// Dashboard is the admin landing summary.
type Dashboard struct {
	TotalItems       int               `json:"totalItems"`
	LowStockItems    []*itemdom.Item   `json:"lowStockItems"`
	RecentRevenue    decimal.Decimal   `json:"recentRevenue"`
	RecentSalesCount int               `json:"recentSalesCount"`
	RecentSales      []*saledom.Record `json:"recentSales"`
}

// SalesUsecase reads the append-only sales ledger.
type SalesUsecase struct {
	sales saledom.Repository
	items itemdom.Repository

	clock Clock
}

func NewSalesUsecase(sales saledom.Repository, items itemdom.Repository) *SalesUsecase {
	return &SalesUsecase{
		sales: sales,
		items: items,
		clock: systemClock{},
	}
}

// WithClock swaps the time source (tests).
func (uc *SalesUsecase) WithClock(c Clock) *SalesUsecase {
	uc.clock = c
	return uc
}

// ListSales returns sales inside the window, newest first.
// Zero times drop the corresponding bound.
func (uc *SalesUsecase) ListSales(ctx context.Context, from, to time.Time) ([]*saledom.Record, error) {
	return uc.sales.ListBetween(ctx, from, to)
}

// ListByItem returns the item's sales, newest first.
func (uc *SalesUsecase) ListByItem(ctx context.Context, itemID string) ([]*saledom.Record, error) {
	return uc.sales.ListByItem(ctx, strings.TrimSpace(itemID))
}

// ListByCustomer returns the customer's purchase history, newest first.
func (uc *SalesUsecase) ListByCustomer(ctx context.Context, email string) ([]*saledom.Record, error) {
	return uc.sales.ListByCustomer(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// Report builds the sales report for the window, optionally narrowed by
// category (exact, case-insensitive) and customer name (substring,
// case-insensitive). Aggregates are computed over the narrowed set.
func (uc *SalesUsecase) Report(ctx context.Context, from, to time.Time, category, customer string) (*SalesReport, error) {
	all, err := uc.sales.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	customer = strings.TrimSpace(customer)

	categorySet := map[string]bool{}
	filtered := make([]*saledom.Record, 0, len(all))
	for _, r := range all {
		categorySet[r.ItemCategory] = true
		if category != "" && !strings.EqualFold(r.ItemCategory, category) {
			continue
		}
		if customer != "" && !strings.Contains(strings.ToLower(r.CustomerName), strings.ToLower(customer)) {
			continue
		}
		filtered = append(filtered, r)
	}

	report := &SalesReport{
		Sales:        filtered,
		TotalRevenue: decimal.Zero,
		Categories:   sortedKeys(categorySet),
	}

	byCategory := map[string]int{}
	byCustomer := map[string]int{}
	for _, r := range filtered {
		report.TotalRevenue = report.TotalRevenue.Add(r.TotalAmount)
		report.TotalItemsSold += r.QuantitySold
		byCategory[r.ItemCategory] += r.QuantitySold
		byCustomer[r.CustomerName] += r.QuantitySold
	}
	report.BestSellingCategory = maxKey(byCategory)
	report.TopCustomer = maxKey(byCustomer)

	return report, nil
}

// Dashboard fetches items and recent sales concurrently and summarizes them.
func (uc *SalesUsecase) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := uc.clock.Now()

	var (
		items  []*itemdom.Item
		recent []*saledom.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = uc.items.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = uc.sales.ListBetween(gctx, now.Add(-dashboardWindow), now.Add(24*time.Hour))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalItems:       len(items),
		RecentRevenue:    decimal.Zero,
		RecentSalesCount: len(recent),
	}

	for _, it := range items {
		if it.LowStock() {
			d.LowStockItems = append(d.LowStockItems, it)
		}
	}
	if len(d.LowStockItems) > 10 {
		d.LowStockItems = d.LowStockItems[:10]
	}

	for _, r := range recent {
		d.RecentRevenue = d.RecentRevenue.Add(r.TotalAmount)
	}
	// recent is already newest first
	if len(recent) > 10 {
		recent = recent[:10]
	}
	d.RecentSales = recent

	return d, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func maxKey(counts map[string]int) string {
	best, bestN := "", -1
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}
