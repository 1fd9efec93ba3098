package di

import (
	"go.uber.org/fx"

	"github.com/marketcore/ordersvc/internal/app"
	"github.com/marketcore/ordersvc/internal/config"
	"github.com/marketcore/ordersvc/internal/logger"
	"github.com/marketcore/ordersvc/internal/server/http/handlers"
	"github.com/marketcore/ordersvc/internal/server/http/router"
	"github.com/marketcore/ordersvc/internal/storage/postgres"
	"github.com/marketcore/ordersvc/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(f *app.CommerceFacade) handlers.CommerceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
