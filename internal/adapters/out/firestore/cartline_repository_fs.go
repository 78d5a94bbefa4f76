// internal/adapters/out/firestore/cartline_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "storefront/internal/domain/cartline"
	"storefront/internal/domain/common"
)

// CartLineRepositoryFS implements cartline.Repository using Firestore.
//
// Collection design:
// - collection: cartLines
// - docId: generated UUID
// - customer scoping: customerEmail の等価クエリ（順序は保証しない）
type CartLineRepositoryFS struct {
	Client *firestore.Client
}

func NewCartLineRepositoryFS(client *firestore.Client) *CartLineRepositoryFS {
	return &CartLineRepositoryFS{Client: client}
}

func (r *CartLineRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("cartLines")
}

func (r *CartLineRepositoryFS) Insert(ctx context.Context, l *cartdom.Line) error {
	if r == nil || r.Client == nil {
		return errors.New("cartline_repository_fs: firestore client is nil")
	}
	if l == nil {
		return errors.New("cartline_repository_fs: line is nil")
	}

	id := strings.TrimSpace(l.ID)
	if id == "" {
		return fmt.Errorf("%w: cart line id is empty", common.ErrValidation)
	}

	_, err := r.col().Doc(id).Create(ctx, lineDocFromDomain(l))
	return mapStorageErr(err)
}

func (r *CartLineRepositoryFS) Update(ctx context.Context, l *cartdom.Line) error {
	if r == nil || r.Client == nil {
		return errors.New("cartline_repository_fs: firestore client is nil")
	}
	if l == nil {
		return errors.New("cartline_repository_fs: line is nil")
	}

	id := strings.TrimSpace(l.ID)
	if id == "" {
		return fmt.Errorf("%w: cart line id is empty", common.ErrValidation)
	}

	at, err := parseVersionToken(l.Version)
	if err != nil {
		return err
	}

	doc := lineDocFromDomain(l)
	_, err = r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "customerEmail", Value: doc.CustomerEmail},
		{Path: "itemId", Value: doc.ItemID},
		{Path: "itemName", Value: doc.ItemName},
		{Path: "itemPrice", Value: doc.ItemPrice},
		{Path: "quantity", Value: doc.Quantity},
		{Path: "itemImage", Value: doc.ItemImage},
		{Path: "checkoutId", Value: doc.CheckoutID},
	}, firestore.LastUpdateTime(at))
	return mapStorageErr(err)
}

func (r *CartLineRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("cartline_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: cart line id is empty", common.ErrValidation)
	}

	_, err := r.col().Doc(id).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return mapStorageErr(err)
}

func (r *CartLineRepositoryFS) ListByCustomer(ctx context.Context, customerEmail string) ([]*cartdom.Line, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cartline_repository_fs: firestore client is nil")
	}

	email := strings.TrimSpace(strings.ToLower(customerEmail))
	if email == "" {
		return nil, fmt.Errorf("%w: customerEmail is empty", common.ErrValidation)
	}

	it := r.col().Where("customerEmail", "==", email).Documents(ctx)
	defer it.Stop()

	var out []*cartdom.Line
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStorageErr(err)
		}

		var doc lineDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		l, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		l.ID = snap.Ref.ID
		l.Version = versionToken(snap.UpdateTime)
		out = append(out, l)
	}
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type lineDoc struct {
	CustomerEmail string    `firestore:"customerEmail"`
	ItemID        string    `firestore:"itemId"`
	ItemName      string    `firestore:"itemName"`
	ItemPrice     string    `firestore:"itemPrice"`
	Quantity      int       `firestore:"quantity"`
	ItemImage     string    `firestore:"itemImage"`
	CheckoutID    string    `firestore:"checkoutId"`
	AddedAt       time.Time `firestore:"addedAt"`
}

func lineDocFromDomain(l *cartdom.Line) lineDoc {
	return lineDoc{
		CustomerEmail: l.CustomerEmail,
		ItemID:        l.ItemID,
		ItemName:      l.ItemName,
		ItemPrice:     l.ItemPrice.StringFixed(2),
		Quantity:      l.Quantity,
		ItemImage:     l.ItemImage,
		CheckoutID:    l.CheckoutID,
		AddedAt:       l.AddedAt,
	}
}

func (d lineDoc) toDomain() (*cartdom.Line, error) {
	price, err := parsePriceField(d.ItemPrice)
	if err != nil {
		return nil, fmt.Errorf("cartline_repository_fs: %w", err)
	}
	return &cartdom.Line{
		CustomerEmail: d.CustomerEmail,
		ItemID:        d.ItemID,
		ItemName:      d.ItemName,
		ItemPrice:     price,
		Quantity:      d.Quantity,
		ItemImage:     d.ItemImage,
		CheckoutID:    d.CheckoutID,
		AddedAt:       d.AddedAt,
	}, nil
}
