package repository

import (
	"context"

	"github.com/marketcore/ordersvc/internal/domain/model"
)

// ProductRepository combines read access to the catalog with the inventory
// store. ReserveStock and ReleaseStock are the only writers of a product's
// on-hand quantity anywhere in the system.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, onlyActive bool) ([]model.Product, error)

	// GetForUpdate reads a product under a row lock held until the
	// transaction ends, so the observed on-hand quantity still holds at
	// reservation time.
	GetForUpdate(ctx context.Context, tx Tx, id int64) (*model.Product, error)

	// ReserveStock atomically decrements on-hand quantity if and only if
	// enough stock is available; otherwise it fails without mutation with
	// InsufficientStockError.
	ReserveStock(ctx context.Context, tx Tx, id int64, quantity int) error

	// ReleaseStock atomically returns quantity to the shelf. The engine calls
	// it at most once per cancelled order per line.
	ReleaseStock(ctx context.Context, tx Tx, id int64, quantity int) error
}
