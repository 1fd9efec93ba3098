package repository

import (
	"context"

	"github.com/marketcore/ordersvc/internal/domain/model"
)

// CustomerRepository exposes the external customer collaborator.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
}
