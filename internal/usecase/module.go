package usecase

import (
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/marketcore/ordersvc/internal/config"
	"github.com/marketcore/ordersvc/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	NewCatalogUseCase,
)

type orderUseCaseParams struct {
	fx.In

	Repos  repository.Factory
	Config *config.Config
}

func newOrderUseCase(p orderUseCaseParams) *OrderUseCase {
	return NewOrderUseCase(p.Repos, decimal.NewFromFloat(p.Config.TaxRate))
}
