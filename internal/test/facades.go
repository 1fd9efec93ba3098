package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, int64, []model.LineRequest, *string) (*model.Order, error)
	CancelFn       func(context.Context, int64) (*model.Order, error)
	ChangeStatusFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	OrderFn        func(context.Context, int64) (*model.Order, error)
	OrdersFn       func(context.Context, repository.OrderFilter) ([]model.Order, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, customerID int64, lines []model.LineRequest, note *string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customerID, lines, note)
	}
	return &model.Order{ID: 1, CustomerID: customerID, Status: model.OrderStatusNew, Note: note}, nil
}

// CancelOrder delegates to provided function or returns a cancelled order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// ChangeOrderStatus delegates to provided function or echoes the target status.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// Order delegates to provided function or returns a default order.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusNew}, nil
}

// Orders returns predefined orders matching the filter.
func (s OrderFacadeStub) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusNew}}, nil
}

// CatalogFacadeStub simulates catalog lookups.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context, bool) ([]model.Product, error)
	ProductFn  func(context.Context, int64) (*model.Product, error)
	CustomerFn func(context.Context, int64) (*model.Customer, error)
}

// Products returns preconfigured catalog contents.
func (s CatalogFacadeStub) Products(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, onlyActive)
	}
	return []model.Product{{ID: 1, Name: "widget", NetPrice: decimal.NewFromInt(10), OnHand: 5, Active: true}}, nil
}

// Product returns the configured product or a default one.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "widget", NetPrice: decimal.NewFromInt(10), OnHand: 5, Active: true}, nil
}

// Customer returns the configured customer or a default one.
func (s CatalogFacadeStub) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, id)
	}
	return &model.Customer{ID: id, Name: "Alice", Email: "alice@example.com", Active: true, RegisteredAt: time.Unix(0, 0)}, nil
}

// ReportFacadeStub simulates the sales report aggregation.
type ReportFacadeStub struct {
	ReportFn func(context.Context) ([]repository.SalesReportRow, error)
}

// SalesReport returns the configured rows or a single default row.
func (s ReportFacadeStub) SalesReport(ctx context.Context) ([]repository.SalesReportRow, error) {
	if s.ReportFn != nil {
		return s.ReportFn(ctx)
	}
	return []repository.SalesReportRow{{
		Status:     model.OrderStatusNew,
		Orders:     1,
		Customers:  1,
		Items:      3,
		MinGross:   decimal.NewFromInt(10),
		MaxGross:   decimal.NewFromInt(10),
		TotalGross: decimal.NewFromInt(10),
	}}, nil
}

// CommerceFacadeStub aggregates all facade stubs for router level tests.
type CommerceFacadeStub struct {
	OrderFacadeStub
	CatalogFacadeStub
	ReportFacadeStub
}

// ExpirerFacadeStub mimics expirer interactions with the commerce facade.
type ExpirerFacadeStub struct {
	Batches        [][]int64
	StaleFn        func(context.Context, time.Duration, int) ([]int64, error)
	CancelFn       func(context.Context, int64) (*model.Order, error)
	Cancelled      []int64
	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ExpirerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ExpirerFacadeStub) Unlock() { s.mu.Unlock() }

// StaleOrders returns batches from the configured queue.
func (s *ExpirerFacadeStub) StaleOrders(ctx context.Context, age time.Duration, limit int) ([]int64, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, age, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CancelOrder records cancellation requests.
func (s *ExpirerFacadeStub) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancelled = append(s.Cancelled, orderID)
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}
