package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

// MemoryFactory implements repository.Factory entirely in memory. Transactions
// snapshot the whole state and restore it when the callback fails, which lets
// tests assert the engine's all-or-nothing behaviour without a database.
type MemoryFactory struct {
	mu sync.Mutex

	CustomersByID map[int64]*model.Customer
	ProductsByID  map[int64]*model.Product
	OrdersByID    map[int64]*model.Order
	NextOrderID   int64
	NextLineID    int64

	// Failure injection points.
	BeginErr        error
	InsertOrderErr  error
	InsertLinesErr  error
	UpdateHeaderErr error
	ReleaseErr      error

	// BeginCount tracks how many transactions were opened.
	BeginCount int
}

type memoryTx struct{}

// NewMemoryFactory constructs an empty factory.
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{
		CustomersByID: make(map[int64]*model.Customer),
		ProductsByID:  make(map[int64]*model.Product),
		OrdersByID:    make(map[int64]*model.Order),
		NextOrderID:   1,
		NextLineID:    1,
	}
}

// AddCustomer seeds a customer.
func (f *MemoryFactory) AddCustomer(c model.Customer) {
	f.CustomersByID[c.ID] = &c
}

// AddProduct seeds a product.
func (f *MemoryFactory) AddProduct(p model.Product) {
	f.ProductsByID[p.ID] = &p
}

// AddOrder seeds an order and returns it.
func (f *MemoryFactory) AddOrder(o model.Order) *model.Order {
	if o.ID == 0 {
		o.ID = f.NextOrderID
		f.NextOrderID++
	}
	f.OrdersByID[o.ID] = &o
	return f.OrdersByID[o.ID]
}

// WithinTransaction snapshots state, runs fn, and restores the snapshot if fn
// fails.
func (f *MemoryFactory) WithinTransaction(ctx context.Context, fn func(tx repository.Tx) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}

	f.mu.Lock()
	f.BeginCount++
	products := snapshotProducts(f.ProductsByID)
	orders := snapshotOrders(f.OrdersByID)
	nextOrder, nextLine := f.NextOrderID, f.NextLineID
	f.mu.Unlock()

	if err := fn(memoryTx{}); err != nil {
		f.mu.Lock()
		f.ProductsByID = products
		f.OrdersByID = orders
		f.NextOrderID, f.NextLineID = nextOrder, nextLine
		f.mu.Unlock()
		return err
	}
	return nil
}

func snapshotProducts(src map[int64]*model.Product) map[int64]*model.Product {
	dst := make(map[int64]*model.Product, len(src))
	for id, p := range src {
		clone := *p
		dst[id] = &clone
	}
	return dst
}

func snapshotOrders(src map[int64]*model.Order) map[int64]*model.Order {
	dst := make(map[int64]*model.Order, len(src))
	for id, o := range src {
		clone := *o
		clone.Lines = append([]model.OrderLine(nil), o.Lines...)
		dst[id] = &clone
	}
	return dst
}

func (f *MemoryFactory) Customers() repository.CustomerRepository { return customerStub{f} }
func (f *MemoryFactory) Products() repository.ProductRepository   { return productStub{f} }
func (f *MemoryFactory) Orders() repository.OrderRepository       { return orderStub{f} }

type customerStub struct{ f *MemoryFactory }

func (s customerStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if c, ok := s.f.CustomersByID[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

type productStub struct{ f *MemoryFactory }

func (s productStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if p, ok := s.f.ProductsByID[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s productStub) List(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var result []model.Product
	for _, p := range s.f.ProductsByID {
		if onlyActive && !p.Active {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (s productStub) GetForUpdate(ctx context.Context, tx repository.Tx, id int64) (*model.Product, error) {
	return s.GetByID(ctx, id)
}

func (s productStub) ReserveStock(ctx context.Context, tx repository.Tx, id int64, quantity int) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	p, ok := s.f.ProductsByID[id]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	if p.OnHand < quantity {
		return &domainErrors.InsufficientStockError{ProductID: id, Requested: quantity, Available: p.OnHand}
	}
	p.OnHand -= quantity
	return nil
}

func (s productStub) ReleaseStock(ctx context.Context, tx repository.Tx, id int64, quantity int) error {
	if s.f.ReleaseErr != nil {
		return s.f.ReleaseErr
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	p, ok := s.f.ProductsByID[id]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	p.OnHand += quantity
	return nil
}

type orderStub struct{ f *MemoryFactory }

func (s orderStub) Insert(ctx context.Context, tx repository.Tx, order *model.Order) (int64, error) {
	if s.f.InsertOrderErr != nil {
		return 0, s.f.InsertOrderErr
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	id := s.f.NextOrderID
	s.f.NextOrderID++
	clone := *order
	clone.ID = id
	clone.Lines = nil
	s.f.OrdersByID[id] = &clone
	return id, nil
}

func (s orderStub) InsertLines(ctx context.Context, tx repository.Tx, orderID int64, lines []model.OrderLine) error {
	if s.f.InsertLinesErr != nil {
		return s.f.InsertLinesErr
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	order, ok := s.f.OrdersByID[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for _, line := range lines {
		line.ID = s.f.NextLineID
		s.f.NextLineID++
		line.OrderID = orderID
		order.Lines = append(order.Lines, line)
	}
	return nil
}

func (s orderStub) UpdateHeader(ctx context.Context, tx repository.Tx, order *model.Order) error {
	if s.f.UpdateHeaderErr != nil {
		return s.f.UpdateHeaderErr
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	stored, ok := s.f.OrdersByID[order.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Status = order.Status
	stored.Note = order.Note
	stored.NetTotal = order.NetTotal
	stored.GrossTotal = order.GrossTotal
	stored.UpdatedAt = order.UpdatedAt
	return nil
}

func (s orderStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if o, ok := s.f.OrdersByID[id]; ok {
		clone := *o
		clone.Lines = append([]model.OrderLine(nil), o.Lines...)
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s orderStub) GetForUpdate(ctx context.Context, tx repository.Tx, id int64) (*model.Order, error) {
	return s.GetByID(ctx, id)
}

func (s orderStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var result []model.Order
	for _, o := range s.f.OrdersByID {
		if filter.CustomerID != 0 && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (s orderStub) ListStaleNew(ctx context.Context, cutoff time.Time, limit int) ([]int64, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var ids []int64
	for _, o := range s.f.OrdersByID {
		if o.Status != model.OrderStatusNew || !o.CreatedAt.Before(cutoff) {
			continue
		}
		if len(ids) >= limit {
			break
		}
		ids = append(ids, o.ID)
	}
	return ids, nil
}

func (s orderStub) SalesReport(ctx context.Context) ([]repository.SalesReportRow, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	perStatus := make(map[model.OrderStatus]*repository.SalesReportRow)
	for _, o := range s.f.OrdersByID {
		row, ok := perStatus[o.Status]
		if !ok {
			row = &repository.SalesReportRow{Status: o.Status}
			perStatus[o.Status] = row
		}
		row.Orders++
		row.TotalGross = row.TotalGross.Add(o.GrossTotal)
		for _, line := range o.Lines {
			row.Items += int64(line.Quantity)
		}
	}
	var result []repository.SalesReportRow
	for _, row := range perStatus {
		result = append(result, *row)
	}
	return result, nil
}
