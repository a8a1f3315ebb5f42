package repository

import (
	"context"

	"github.com/polkiloo/routemanager/internal/domain/model"
)

// RouteRepository exposes delivery routes.
type RouteRepository interface {
	Get(ctx context.Context, id int64) (*model.Route, error)
	List(ctx context.Context) ([]model.Route, error)
}

// ClientRepository exposes clients with their route name denormalized.
type ClientRepository interface {
	Create(ctx context.Context, client model.Client) (*model.Client, error)
	Get(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
}

// ProductRepository manages the product catalog. SKU uniqueness among active
// products is enforced by Create and Update with ErrAlreadyExists.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	FindActiveBySKU(ctx context.Context, sku string) (*model.Product, error)
}
