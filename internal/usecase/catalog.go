package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

// CatalogUseCase exposes read access to the product and customer
// collaborators.
type CatalogUseCase struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, customers repository.CustomerRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, customers: customers}
}

// Products lists catalog items, optionally only active ones.
func (u *CatalogUseCase) Products(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	return u.products.List(ctx, onlyActive)
}

// Product returns one catalog item.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Customer returns one customer record.
func (u *CatalogUseCase) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := u.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}
