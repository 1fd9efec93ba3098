package handlers

import (
	"context"

	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, customerID int64, lines []model.LineRequest, note *string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (*model.Order, error)
	ChangeOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
}

// CatalogFacade provides read access to products and customers.
type CatalogFacade interface {
	Products(ctx context.Context, onlyActive bool) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Customer(ctx context.Context, id int64) (*model.Customer, error)
}

// ReportFacade provides revenue aggregations.
type ReportFacade interface {
	SalesReport(ctx context.Context) ([]repository.SalesReportRow, error)
}

// CommerceFacade aggregates the full set of operations used across handlers.
type CommerceFacade interface {
	OrderFacade
	CatalogFacade
	ReportFacade
}
