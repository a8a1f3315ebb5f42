package catalogcache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

const (
	keyClients = "catalog:clients"
	keyRoutes  = "catalog:routes"
)

func clientKey(id int64) string { return "catalog:client:" + strconv.FormatInt(id, 10) }
func routeKey(id int64) string  { return "catalog:route:" + strconv.FormatInt(id, 10) }

// readThrough serves key from cache, falling back to load and repopulating.
// Cache failures are logged and never reach the caller.
func readThrough[T any](ctx context.Context, c Cache, logger *slog.Logger, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if hit {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return value, nil
}

// ClientRepository caches client lookups. Creating a client drops the cached
// listing so search results include it.
type ClientRepository struct {
	next   repository.ClientRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

// NewClientRepository wraps next with cache.
func NewClientRepository(next repository.ClientRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *ClientRepository {
	return &ClientRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *ClientRepository) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	created, err := r.next.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Delete(ctx, keyClients); err != nil {
		r.logger.Warn("catalog cache invalidation failed", slog.String("key", keyClients), slog.String("error", err.Error()))
	}
	return created, nil
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	return readThrough(ctx, r.cache, r.logger, clientKey(id), r.ttl, func() (*model.Client, error) {
		return r.next.Get(ctx, id)
	})
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	return readThrough(ctx, r.cache, r.logger, keyClients, r.ttl, func() ([]model.Client, error) {
		return r.next.List(ctx)
	})
}

// RouteRepository caches route lookups.
type RouteRepository struct {
	next   repository.RouteRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ repository.RouteRepository = (*RouteRepository)(nil)

// NewRouteRepository wraps next with cache.
func NewRouteRepository(next repository.RouteRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *RouteRepository {
	return &RouteRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *RouteRepository) Get(ctx context.Context, id int64) (*model.Route, error) {
	return readThrough(ctx, r.cache, r.logger, routeKey(id), r.ttl, func() (*model.Route, error) {
		return r.next.Get(ctx, id)
	})
}

func (r *RouteRepository) List(ctx context.Context) ([]model.Route, error) {
	return readThrough(ctx, r.cache, r.logger, keyRoutes, r.ttl, func() ([]model.Route, error) {
		return r.next.List(ctx)
	})
}
