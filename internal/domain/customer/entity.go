// internal/domain/customer/entity.go
package customer

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/common"
)

// Customer is an account row in the customers collection.
// - docId is a generated UUID
// - Email is unique (enforced by the register flow, not the store)
// - PasswordHash is empty for federated accounts
type Customer struct {
	ID           string    `json:"id" firestore:"id"`
	Name         string    `json:"name" firestore:"name"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	IsAdmin      bool      `json:"isAdmin" firestore:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`

	// Version is the opaque concurrency token from the last read.
	// Not persisted as a field; the store derives it.
	Version string `json:"-" firestore:"-"`
}

// New validates and builds a customer. passwordHash may be empty
// (federated sign-in accounts carry no local credential).
func New(id, name, email, passwordHash string, isAdmin bool, now time.Time) (*Customer, error) {
	c := &Customer{
		ID:           strings.TrimSpace(id),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(strings.ToLower(email)),
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: customer is nil", common.ErrValidation)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: customer id is empty", common.ErrValidation)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: customer name is empty", common.ErrValidation)
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: customer email %q", common.ErrValidation, c.Email)
	}
	return nil
}
