// internal/application/usecase/account_usecase.go
package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain/common"
	custdom "storefront/internal/domain/customer"
)

// ErrAuthFailed is returned on bad email/password combinations. Callers must
// not reveal which of the two was wrong.
var ErrAuthFailed = errors.New("account_usecase: invalid email or password")

// AccountUsecase handles registration and both sign-in paths.
type AccountUsecase struct {
	customers custdom.Repository

	clock Clock
	newID func() string
}

func NewAccountUsecase(customers custdom.Repository) *AccountUsecase {
	return &AccountUsecase{
		customers: customers,
		clock:     systemClock{},
		newID:     uuid.NewString,
	}
}

// WithClock swaps the time source (tests).
func (uc *AccountUsecase) WithClock(c Clock) *AccountUsecase {
	uc.clock = c
	return uc
}

// HashPassword digests a password for storage and comparison.
// 既存レコードとの互換のため方式は固定（SHA-256 + base64、ソルトなし）。
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Register creates a local-credential account.
// common.ErrDuplicateEmail when the email is already taken.
func (uc *AccountUsecase) Register(ctx context.Context, name, email, password string) (*custdom.Customer, error) {
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is empty", common.ErrValidation)
	}

	existing, err := uc.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrDuplicateEmail, strings.ToLower(strings.TrimSpace(email)))
	}

	c, err := custdom.New(uc.newID(), name, email, HashPassword(password), false, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.customers.Insert(ctx, c); err != nil {
		return nil, err
	}

	log.Printf("[account_uc] registered email=%s id=%s", c.Email, c.ID)
	return c, nil
}

// Authenticate checks a local credential and returns the customer.
// Federated accounts carry no PasswordHash and always fail here.
func (uc *AccountUsecase) Authenticate(ctx context.Context, email, password string) (*custdom.Customer, error) {
	c, err := uc.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil || c.PasswordHash == "" {
		return nil, ErrAuthFailed
	}
	if c.PasswordHash != HashPassword(password) {
		return nil, ErrAuthFailed
	}
	return c, nil
}

// FederatedSignIn finds or creates the account for an identity asserted by
// an external provider. Created accounts have an empty PasswordHash.
func (uc *AccountUsecase) FederatedSignIn(ctx context.Context, email, name string) (*custdom.Customer, error) {
	c, err := uc.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	if strings.TrimSpace(name) == "" {
		name = email
	}
	c, err = custdom.New(uc.newID(), name, email, "", false, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.customers.Insert(ctx, c); err != nil {
		return nil, err
	}

	log.Printf("[account_uc] federated account created email=%s id=%s", c.Email, c.ID)
	return c, nil
}

// GetByEmail returns the account or common.ErrNotFound.
func (uc *AccountUsecase) GetByEmail(ctx context.Context, email string) (*custdom.Customer, error) {
	c, err := uc.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer %s", common.ErrNotFound, strings.ToLower(strings.TrimSpace(email)))
	}
	return c, nil
}
