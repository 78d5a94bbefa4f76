// internal/adapters/out/firestore/sale_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/common"
	saledom "storefront/internal/domain/sale"
)

// SaleRepositoryFS implements sale.Repository using Firestore.
//
// Collection design:
// - collection: sales
// - docId: generated UUID
// - append-only（Update/Delete は出さない）
//
// 並べ替えは取得後にメモリ内で行う（複合インデックス不要にするため）。
type SaleRepositoryFS struct {
	Client *firestore.Client
}

func NewSaleRepositoryFS(client *firestore.Client) *SaleRepositoryFS {
	return &SaleRepositoryFS{Client: client}
}

func (r *SaleRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("sales")
}

func (r *SaleRepositoryFS) Insert(ctx context.Context, rec *saledom.Record) error {
	if r == nil || r.Client == nil {
		return errors.New("sale_repository_fs: firestore client is nil")
	}
	if rec == nil {
		return errors.New("sale_repository_fs: record is nil")
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return fmt.Errorf("%w: sale id is empty", common.ErrValidation)
	}

	_, err := r.col().Doc(id).Create(ctx, saleDocFromDomain(rec))
	return mapStorageErr(err)
}

func (r *SaleRepositoryFS) ListBetween(ctx context.Context, from, to time.Time) ([]*saledom.Record, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("sale_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if !from.IsZero() {
		q = q.Where("saleDate", ">=", from.UTC())
	}
	if !to.IsZero() {
		q = q.Where("saleDate", "<=", to.UTC())
	}

	return r.collect(ctx, q)
}

func (r *SaleRepositoryFS) ListByItem(ctx context.Context, itemID string) ([]*saledom.Record, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("sale_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(itemID)
	if id == "" {
		return nil, fmt.Errorf("%w: itemId is empty", common.ErrValidation)
	}

	return r.collect(ctx, r.col().Where("itemId", "==", id))
}

func (r *SaleRepositoryFS) ListByCustomer(ctx context.Context, customerEmail string) ([]*saledom.Record, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("sale_repository_fs: firestore client is nil")
	}

	e := strings.TrimSpace(strings.ToLower(customerEmail))
	if e == "" {
		return nil, fmt.Errorf("%w: customerEmail is empty", common.ErrValidation)
	}

	return r.collect(ctx, r.col().Where("customerEmail", "==", e))
}

// collect runs the query and returns records newest first.
func (r *SaleRepositoryFS) collect(ctx context.Context, q firestore.Query) ([]*saledom.Record, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []*saledom.Record
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStorageErr(err)
		}

		var doc saleDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		rec, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		rec.ID = snap.Ref.ID
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SaleDate.After(out[j].SaleDate)
	})
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type saleDoc struct {
	CheckoutID    string    `firestore:"checkoutId"`
	CustomerEmail string    `firestore:"customerEmail"`
	CustomerName  string    `firestore:"customerName"`
	ItemID        string    `firestore:"itemId"`
	ItemName      string    `firestore:"itemName"`
	ItemCategory  string    `firestore:"itemCategory"`
	UnitPrice     string    `firestore:"unitPrice"`
	QuantitySold  int       `firestore:"quantitySold"`
	TotalAmount   string    `firestore:"totalAmount"`
	SaleDate      time.Time `firestore:"saleDate"`
}

func saleDocFromDomain(rec *saledom.Record) saleDoc {
	return saleDoc{
		CheckoutID:    rec.CheckoutID,
		CustomerEmail: rec.CustomerEmail,
		CustomerName:  rec.CustomerName,
		ItemID:        rec.ItemID,
		ItemName:      rec.ItemName,
		ItemCategory:  rec.ItemCategory,
		UnitPrice:     rec.UnitPrice.StringFixed(2),
		QuantitySold:  rec.QuantitySold,
		TotalAmount:   rec.TotalAmount.StringFixed(2),
		SaleDate:      rec.SaleDate,
	}
}

func (d saleDoc) toDomain() (*saledom.Record, error) {
	unit, err := parsePriceField(d.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("sale_repository_fs: %w", err)
	}
	total, err := parsePriceField(d.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("sale_repository_fs: %w", err)
	}
	return &saledom.Record{
		CheckoutID:    d.CheckoutID,
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
		ItemID:        d.ItemID,
		ItemName:      d.ItemName,
		ItemCategory:  d.ItemCategory,
		UnitPrice:     unit,
		QuantitySold:  d.QuantitySold,
		TotalAmount:   total,
		SaleDate:      d.SaleDate,
	}, nil
}
