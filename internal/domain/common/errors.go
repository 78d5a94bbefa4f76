// internal/domain/common/errors.go
package common

import "errors"

// Shared failure taxonomy. Storage adapters map backend errors onto these;
// usecases add context with fmt.Errorf("...: %w", err); handlers translate
// with errors.Is.
var (
	// ErrNotFound: record or blob does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict: conditional update lost a concurrent-modification race
	// (stored version token no longer matches).
	ErrConflict = errors.New("record was modified concurrently")

	// ErrInsufficientStock: requested quantity exceeds quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateEmail: registration against an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrEmptyCart: checkout attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrValidation: malformed input, rejected before any storage call.
	ErrValidation = errors.New("invalid input")

	// ErrStorageUnavailable: transport/auth failure talking to the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
