package services

import (
	"fmt"

	"github.com/google/uuid"
)

// Expected, user-facing failures. Handlers translate these into HTTP
// statuses; anything else surfaces as a generic service failure.
var (
	ErrDuplicateEmail     = fmt.Errorf("email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrUnregisteredPhone  = fmt.Errorf("phone number not registered")
	ErrInvalidOTP         = fmt.Errorf("invalid verification code")
	ErrOTPExpired         = fmt.Errorf("verification code expired")
	ErrEmptyCart          = fmt.Errorf("cart is empty, nothing to checkout")
)

// ProductNotFoundError names the missing product that failed a checkout.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError carries the offending product and the
// requested vs. available quantities.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}

// InvalidTransitionError reports a rejected order status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}
