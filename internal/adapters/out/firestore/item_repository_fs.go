// internal/adapters/out/firestore/item_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront/internal/domain/common"
	itemdom "storefront/internal/domain/item"
)

// ItemRepositoryFS implements item.Repository using Firestore.
//
// Collection design:
// - collection: items
// - docId: generated UUID ✅ (docId is the source of truth)
// - price は string ("10.00") で保存し、decimal の精度を落とさない
type ItemRepositoryFS struct {
	Client *firestore.Client
}

func NewItemRepositoryFS(client *firestore.Client) *ItemRepositoryFS {
	return &ItemRepositoryFS{Client: client}
}

func (r *ItemRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("items")
}

func (r *ItemRepositoryFS) Insert(ctx context.Context, it *itemdom.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("item_repository_fs: firestore client is nil")
	}
	if it == nil {
		return errors.New("item_repository_fs: item is nil")
	}

	id := strings.TrimSpace(it.ID)
	if id == "" {
		return fmt.Errorf("%w: item id is empty", common.ErrValidation)
	}

	// Create (not Set): colliding docIds must surface, never overwrite.
	_, err := r.col().Doc(id).Create(ctx, itemDocFromDomain(it))
	return mapStorageErr(err)
}

func (r *ItemRepositoryFS) Get(ctx context.Context, id string) (*itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: item id is empty", common.ErrValidation)
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	var doc itemDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	it, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	// docId が source of truth
	it.ID = id
	it.Version = versionToken(snap.UpdateTime)
	return it, nil
}

func (r *ItemRepositoryFS) List(ctx context.Context) ([]*itemdom.Item, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("item_repository_fs: firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	var out []*itemdom.Item
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStorageErr(err)
		}

		var doc itemDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		d, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		d.ID = snap.Ref.ID
		d.Version = versionToken(snap.UpdateTime)
		out = append(out, d)
	}
	return out, nil
}

// Update replaces the stored record conditioned on it.Version matching the
// document's current UpdateTime.
func (r *ItemRepositoryFS) Update(ctx context.Context, it *itemdom.Item) error {
	if r == nil || r.Client == nil {
		return errors.New("item_repository_fs: firestore client is nil")
	}
	if it == nil {
		return errors.New("item_repository_fs: item is nil")
	}

	id := strings.TrimSpace(it.ID)
	if id == "" {
		return fmt.Errorf("%w: item id is empty", common.ErrValidation)
	}

	at, err := parseVersionToken(it.Version)
	if err != nil {
		return err
	}

	doc := itemDocFromDomain(it)
	_, err = r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "name", Value: doc.Name},
		{Path: "description", Value: doc.Description},
		{Path: "category", Value: doc.Category},
		{Path: "price", Value: doc.Price},
		{Path: "quantity", Value: doc.Quantity},
		{Path: "image", Value: doc.Image},
	}, firestore.LastUpdateTime(at))
	return mapStorageErr(err)
}

func (r *ItemRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("item_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: item id is empty", common.ErrValidation)
	}

	_, err := r.col().Doc(id).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		// deleting an absent item is a no-op
		return nil
	}
	return mapStorageErr(err)
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type itemDoc struct {
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
	Category    string `firestore:"category"`
	Price       string `firestore:"price"`
	Quantity    int    `firestore:"quantity"`
	Image       string `firestore:"image"`
}

func itemDocFromDomain(it *itemdom.Item) itemDoc {
	return itemDoc{
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Price:       it.Price.StringFixed(2),
		Quantity:    it.Quantity,
		Image:       it.Image,
	}
}

func (d itemDoc) toDomain() (*itemdom.Item, error) {
	price, err := parsePriceField(d.Price)
	if err != nil {
		return nil, fmt.Errorf("item_repository_fs: %w", err)
	}
	return &itemdom.Item{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       price,
		Quantity:    d.Quantity,
		Image:       d.Image,
	}, nil
}

func parsePriceField(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}
