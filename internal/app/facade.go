package app

import (
	"context"
	"time"

	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
	"github.com/marketcore/ordersvc/internal/usecase"
)

// CommerceFacade aggregates the order engine and catalog reads into the
// surface consumed by HTTP handlers and the background expirer.
type CommerceFacade struct {
	orders  *usecase.OrderUseCase
	catalog *usecase.CatalogUseCase
}

// NewCommerceFacade constructs CommerceFacade.
func NewCommerceFacade(orders *usecase.OrderUseCase, catalog *usecase.CatalogUseCase) *CommerceFacade {
	return &CommerceFacade{orders: orders, catalog: catalog}
}

func (f *CommerceFacade) CreateOrder(ctx context.Context, customerID int64, lines []model.LineRequest, note *string) (*model.Order, error) {
	return f.orders.Create(ctx, customerID, lines, note)
}

func (f *CommerceFacade) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID)
}

func (f *CommerceFacade) ChangeOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.ChangeStatus(ctx, orderID, status)
}

func (f *CommerceFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *CommerceFacade) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *CommerceFacade) SalesReport(ctx context.Context) ([]repository.SalesReportRow, error) {
	return f.orders.SalesReport(ctx)
}

func (f *CommerceFacade) StaleOrders(ctx context.Context, age time.Duration, limit int) ([]int64, error) {
	return f.orders.ListStale(ctx, age, limit)
}

func (f *CommerceFacade) Products(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	return f.catalog.Products(ctx, onlyActive)
}

func (f *CommerceFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *CommerceFacade) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	return f.catalog.Customer(ctx, id)
}
