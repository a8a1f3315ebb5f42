package catalogcache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/routemanager/internal/config"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// Module decorates catalog repositories with a redis cache when REDIS_URL is set.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Decorate(decorateClients, decorateRoutes),
)

type cacheParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// newCache returns a nil Cache when caching is disabled.
func newCache(p cacheParams) (Cache, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("catalog cache disabled")
		return nil, nil
	}

	rc, err := NewRedisCache(p.Ctx, p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error { return rc.Close() },
	})
	p.Logger.Info("catalog cache enabled", slog.Duration("ttl", p.Config.CatalogCacheTTL))
	return rc, nil
}

type decorateParams struct {
	fx.In

	Cache  Cache
	Config *config.Config
	Logger *slog.Logger
}

func decorateClients(p decorateParams, clients repository.ClientRepository) repository.ClientRepository {
	if p.Cache == nil {
		return clients
	}
	return NewClientRepository(clients, p.Cache, p.Config.CatalogCacheTTL, p.Logger)
}

func decorateRoutes(p decorateParams, routes repository.RouteRepository) repository.RouteRepository {
	if p.Cache == nil {
		return routes
	}
	return NewRouteRepository(routes, p.Cache, p.Config.CatalogCacheTTL, p.Logger)
}
