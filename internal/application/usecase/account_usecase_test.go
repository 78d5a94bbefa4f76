// internal/application/usecase/account_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/common"
)

func newAccountFixture(t *testing.T) (*AccountUsecase, *fakeCustomerRepo) {
	t.Helper()
	repo := newFakeCustomerRepo()
	uc := NewAccountUsecase(repo).WithClock(fixedClock{time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)})
	uc.newID = sequentialIDs("cust")
	return uc, repo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	uc, _ := newAccountFixture(t)
	ctx := context.Background()

	c, err := uc.Register(ctx, "Jo", "Jo@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", c.Email, "email normalized to lowercase")
	assert.False(t, c.IsAdmin)
	assert.NotEmpty(t, c.PasswordHash)
	assert.NotEqual(t, "hunter22", c.PasswordHash)

	got, err := uc.Authenticate(ctx, "jo@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = uc.Authenticate(ctx, "jo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)

	_, err = uc.Authenticate(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAccountFixture(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, "Jo", "jo@example.com", "hunter22")
	require.NoError(t, err)

	_, err = uc.Register(ctx, "Other Jo", "JO@example.com", "different")
	assert.ErrorIs(t, err, common.ErrDuplicateEmail, "email uniqueness is case-insensitive")
}

func TestRegisterRequiresPassword(t *testing.T) {
	uc, _ := newAccountFixture(t)

	_, err := uc.Register(context.Background(), "Jo", "jo@example.com", "   ")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestFederatedSignIn_FindOrCreate(t *testing.T) {
	uc, _ := newAccountFixture(t)
	ctx := context.Background()

	c1, err := uc.FederatedSignIn(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Empty(t, c1.PasswordHash, "federated accounts carry no local credential")

	// second sign-in returns the same account
	c2, err := uc.FederatedSignIn(ctx, "jo@example.com", "Jo Renamed")
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
	assert.Equal(t, "Jo", c2.Name, "existing profile is not overwritten")
}

func TestFederatedAccountCannotAuthenticateLocally(t *testing.T) {
	uc, _ := newAccountFixture(t)
	ctx := context.Background()

	_, err := uc.FederatedSignIn(ctx, "jo@example.com", "Jo")
	require.NoError(t, err)

	// empty password must not match the empty stored hash
	_, err = uc.Authenticate(ctx, "jo@example.com", "")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestHashPasswordIsDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("abc"), HashPassword("abc"))
	assert.NotEqual(t, HashPassword("abc"), HashPassword("abd"))
}
