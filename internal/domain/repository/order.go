package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketcore/ordersvc/internal/domain/model"
)

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	CustomerID int64
	Status     model.OrderStatus
}

// SalesReportRow aggregates order revenue per lifecycle status.
type SalesReportRow struct {
	Status     model.OrderStatus
	Orders     int64
	Customers  int64
	Items      int64
	MinGross   decimal.Decimal
	MaxGross   decimal.Decimal
	TotalGross decimal.Decimal
}

// OrderRepository persists orders and their lines. Every mutating method takes
// the caller's transaction handle and must not open a transaction of its own.
type OrderRepository interface {
	Insert(ctx context.Context, tx Tx, order *model.Order) (int64, error)
	InsertLines(ctx context.Context, tx Tx, orderID int64, lines []model.OrderLine) error
	UpdateHeader(ctx context.Context, tx Tx, order *model.Order) error

	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetForUpdate locks the order header row, serializing cancel and status
	// changes targeting the same order.
	GetForUpdate(ctx context.Context, tx Tx, id int64) (*model.Order, error)

	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)

	// ListStaleNew returns identifiers of orders still in status new that were
	// created before the cutoff.
	ListStaleNew(ctx context.Context, cutoff time.Time, limit int) ([]int64, error)

	SalesReport(ctx context.Context) ([]SalesReportRow, error)
}
