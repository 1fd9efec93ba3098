package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// validNext encodes the permitted lifecycle transitions. Cancellation is
// reachable from every non-terminal state; delivered and cancelled are terminal.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusNew:       {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed: {OrderStatusPaid: true, OrderStatusCancelled: true},
	OrderStatusPaid:      {OrderStatusShipped: true, OrderStatusCancelled: true},
	OrderStatusShipped:   {OrderStatusDelivered: true, OrderStatusCancelled: true},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(raw)
	switch status {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusPaid,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return status, true
	}
	return "", false
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// LineRequest is a caller-supplied order position. DiscountPercent defaults to
// zero when left unset.
type LineRequest struct {
	ProductID       int64
	Quantity        int
	DiscountPercent decimal.Decimal
}

// OrderLine is a single position of an order. UnitPrice is a snapshot taken
// at order creation time and never changes afterwards.
type OrderLine struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Order is a priced, stock-consistent customer order with its lines.
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	Note       *string
	NetTotal   decimal.Decimal
	TaxRate    decimal.Decimal
	GrossTotal decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Lines      []OrderLine
}
