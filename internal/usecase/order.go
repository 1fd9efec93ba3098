package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
	"github.com/marketcore/ordersvc/internal/pkg/pricing"
)

// OrderUseCase is the order transaction engine. Every mutating operation runs
// as one all-or-nothing transaction: validation, price snapshot, inventory
// reservation or release, and persistence either all commit or none do.
type OrderUseCase struct {
	repos   repository.Factory
	taxRate decimal.Decimal
	now     func() time.Time
}

// NewOrderUseCase constructs the engine with the configured flat tax rate.
func NewOrderUseCase(repos repository.Factory, taxRate decimal.Decimal) *OrderUseCase {
	return &OrderUseCase{repos: repos, taxRate: taxRate, now: time.Now}
}

// Create validates the request, snapshots unit prices, computes totals,
// reserves inventory for every line and persists the order, all within one
// transaction. On any failure the caller observes no effect at all.
func (u *OrderUseCase) Create(ctx context.Context, customerID int64, lines []model.LineRequest, note *string) (*model.Order, error) {
	if err := ValidateLineRequests(lines); err != nil {
		return nil, err
	}

	var created *model.Order
	err := u.repos.WithinTransaction(ctx, func(tx repository.Tx) error {
		customer, err := u.repos.Customers().GetByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrCustomerNotFound
			}
			return err
		}
		if !customer.Active {
			return domainErrors.ErrCustomerNotFound
		}

		now := u.now().UTC()
		order := &model.Order{
			CustomerID: customerID,
			Status:     model.OrderStatusNew,
			Note:       note,
			TaxRate:    u.taxRate,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		pricingLines := make([]pricing.Line, 0, len(lines))
		for _, req := range lines {
			// Row lock on the product holds until commit, so the stock
			// observed here still holds at reservation time.
			product, err := u.repos.Products().GetForUpdate(ctx, tx, req.ProductID)
			if err != nil {
				if errors.Is(err, domainErrors.ErrNotFound) {
					return domainErrors.ErrProductNotFound
				}
				return err
			}
			if !product.Active {
				return domainErrors.ErrProductNotFound
			}
			if req.Quantity > product.OnHand {
				return &domainErrors.InsufficientStockError{
					ProductID: product.ID,
					Requested: req.Quantity,
					Available: product.OnHand,
				}
			}

			order.Lines = append(order.Lines, model.OrderLine{
				ProductID:       product.ID,
				Quantity:        req.Quantity,
				UnitPrice:       product.NetPrice,
				DiscountPercent: req.DiscountPercent,
			})
			pricingLines = append(pricingLines, pricing.Line{
				UnitPrice:       product.NetPrice,
				Quantity:        req.Quantity,
				DiscountPercent: req.DiscountPercent,
			})
		}

		totals, err := pricing.Calculate(pricingLines, u.taxRate)
		if err != nil {
			return err
		}
		order.NetTotal = totals.NetTotal
		order.GrossTotal = totals.GrossTotal

		for _, line := range order.Lines {
			if err := u.repos.Products().ReserveStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		id, err := u.repos.Orders().Insert(ctx, tx, order)
		if err != nil {
			return err
		}
		order.ID = id
		for i := range order.Lines {
			order.Lines[i].OrderID = id
		}
		if err := u.repos.Orders().InsertLines(ctx, tx, id, order.Lines); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel releases every line's reserved stock and moves the order to
// cancelled. The header row lock serializes concurrent cancel and status
// changes on the same order.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64) (*model.Order, error) {
	var cancelled *model.Order
	err := u.repos.WithinTransaction(ctx, func(tx repository.Tx) error {
		order, err := u.repos.Orders().GetForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrOrderNotFound
			}
			return err
		}

		switch order.Status {
		case model.OrderStatusCancelled:
			return domainErrors.ErrAlreadyCancelled
		case model.OrderStatusDelivered:
			return &domainErrors.InvalidStateTransitionError{
				From: order.Status,
				To:   model.OrderStatusCancelled,
			}
		}

		for _, line := range order.Lines {
			if err := u.repos.Products().ReleaseStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		order.Status = model.OrderStatusCancelled
		order.UpdatedAt = u.now().UTC()
		if err := u.repos.Orders().UpdateHeader(ctx, tx, order); err != nil {
			return err
		}

		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ChangeStatus moves an order along the lifecycle. Cancellation is delegated
// to Cancel, the only transition with an inventory effect; every other valid
// transition persists status and timestamp only.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if _, ok := model.ParseOrderStatus(string(status)); !ok {
		return nil, domainErrors.ErrInvalidStatus
	}
	if status == model.OrderStatusCancelled {
		return u.Cancel(ctx, orderID)
	}

	var updated *model.Order
	err := u.repos.WithinTransaction(ctx, func(tx repository.Tx) error {
		order, err := u.repos.Orders().GetForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrOrderNotFound
			}
			return err
		}

		if !model.CanTransition(order.Status, status) {
			return &domainErrors.InvalidStateTransitionError{From: order.Status, To: status}
		}

		order.Status = status
		order.UpdatedAt = u.now().UTC()
		if err := u.repos.Orders().UpdateHeader(ctx, tx, order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns an order with its lines.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.repos.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// List returns orders matching the filter, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return u.repos.Orders().List(ctx, filter)
}

// ListStale returns identifiers of orders stuck in status new for longer than
// the given age.
func (u *OrderUseCase) ListStale(ctx context.Context, age time.Duration, limit int) ([]int64, error) {
	cutoff := u.now().UTC().Add(-age)
	return u.repos.Orders().ListStaleNew(ctx, cutoff, limit)
}

// SalesReport aggregates order revenue per status.
func (u *OrderUseCase) SalesReport(ctx context.Context) ([]repository.SalesReportRow, error) {
	return u.repos.Orders().SalesReport(ctx)
}
