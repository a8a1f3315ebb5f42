package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/routemanager/internal/adapter/catalogcache"
	"github.com/polkiloo/routemanager/internal/app"
	"github.com/polkiloo/routemanager/internal/config"
	"github.com/polkiloo/routemanager/internal/domain/repository"
	"github.com/polkiloo/routemanager/internal/logger"
	"github.com/polkiloo/routemanager/internal/pkg/auth"
	"github.com/polkiloo/routemanager/internal/server/http/handlers"
	"github.com/polkiloo/routemanager/internal/server/http/router"
	"github.com/polkiloo/routemanager/internal/storage"
	"github.com/polkiloo/routemanager/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		catalogcache.Module,
		usecase.Module,
		fx.Provide(func(f repository.Factory) app.HealthChecker { return f }),
		fx.Provide(func(f *app.RouteManagerFacade) handlers.RouteManagerFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
