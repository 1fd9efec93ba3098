package errors

import (
	"errors"
	"fmt"

	"github.com/marketcore/ordersvc/internal/domain/model"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)

	ErrEmptyOrder       = errors.New("order has no lines")
	ErrInvalidLineItem  = errors.New("invalid line item")
	ErrInvalidDiscount  = errors.New("discount out of range")
	ErrInvalidTaxRate   = errors.New("tax rate must not be negative")
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrAlreadyCancelled = errors.New("order already cancelled")

	// ErrBusy signals a lock timeout or serialization conflict. It is the only
	// error class callers may retry automatically.
	ErrBusy = errors.New("operation busy, retry later")
)

// InsufficientStockError reports a reservation that would overdraw a product.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidStateTransitionError reports a lifecycle move the state machine forbids.
type InvalidStateTransitionError struct {
	From model.OrderStatus
	To   model.OrderStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid order state transition %s -> %s", e.From, e.To)
}
