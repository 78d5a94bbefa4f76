// internal/adapters/out/firestore/customer_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/common"
	customerdom "storefront/internal/domain/customer"
)

// CustomerRepositoryFS implements customer.Repository using Firestore.
//
// Collection design:
// - collection: customers
// - docId: generated UUID
// - email uniqueness is enforced by the register flow (check-then-insert),
//   not by the store itself
type CustomerRepositoryFS struct {
	Client *firestore.Client
}

func NewCustomerRepositoryFS(client *firestore.Client) *CustomerRepositoryFS {
	return &CustomerRepositoryFS{Client: client}
}

func (r *CustomerRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("customers")
}

func (r *CustomerRepositoryFS) Insert(ctx context.Context, c *customerdom.Customer) error {
	if r == nil || r.Client == nil {
		return errors.New("customer_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("customer_repository_fs: customer is nil")
	}

	id := strings.TrimSpace(c.ID)
	if id == "" {
		return fmt.Errorf("%w: customer id is empty", common.ErrValidation)
	}

	_, err := r.col().Doc(id).Create(ctx, customerDocFromDomain(c))
	return mapStorageErr(err)
}

func (r *CustomerRepositoryFS) Get(ctx context.Context, id string) (*customerdom.Customer, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("customer_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: customer id is empty", common.ErrValidation)
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	var doc customerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	c := doc.toDomain()
	c.ID = id
	c.Version = versionToken(snap.UpdateTime)
	return c, nil
}

// GetByEmail returns (nil, nil) if not found (nil policy).
func (r *CustomerRepositoryFS) GetByEmail(ctx context.Context, email string) (*customerdom.Customer, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("customer_repository_fs: firestore client is nil")
	}

	e := strings.TrimSpace(strings.ToLower(email))
	if e == "" {
		return nil, fmt.Errorf("%w: email is empty", common.ErrValidation)
	}

	it := r.col().Where("email", "==", e).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, mapStorageErr(err)
	}

	var doc customerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	c := doc.toDomain()
	c.ID = snap.Ref.ID
	c.Version = versionToken(snap.UpdateTime)
	return c, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type customerDoc struct {
	Name         string    `firestore:"name"`
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	IsAdmin      bool      `firestore:"isAdmin"`
	CreatedAt    time.Time `firestore:"createdAt"`
}

func customerDocFromDomain(c *customerdom.Customer) customerDoc {
	return customerDoc{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		IsAdmin:      c.IsAdmin,
		CreatedAt:    c.CreatedAt,
	}
}

func (d customerDoc) toDomain() *customerdom.Customer {
	return &customerdom.Customer{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
		CreatedAt:    d.CreatedAt,
	}
}
