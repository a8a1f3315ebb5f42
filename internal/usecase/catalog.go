package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// ClientInput carries fields for a new client. RouteID zero leaves it unassigned.
type ClientInput struct {
	Name    string
	Phone   string
	Address string
	RouteID int64
}

// ProductInput carries writable product fields.
type ProductInput struct {
	Name     string
	SKU      string
	Category string
	Price    decimal.Decimal
	Stock    int
	Active   bool
}

// CatalogUseCase serves clients, routes and products.
type CatalogUseCase struct {
	routes   repository.RouteRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(routes repository.RouteRepository, clients repository.ClientRepository, products repository.ProductRepository, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{routes: routes, clients: clients, products: products, logger: logger}
}

// ListClients returns clients whose name, address or route name contains
// query, ignoring case. An empty query returns every client.
func (u *CatalogUseCase) ListClients(ctx context.Context, query string) ([]model.Client, error) {
	clients, err := u.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return clients, nil
	}

	matched := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if matchesClient(c, query) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func matchesClient(c model.Client, query string) bool {
	for _, field := range []string{c.Name, c.Address, c.RouteName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (u *CatalogUseCase) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	return u.clients.Get(ctx, id)
}

// CreateClient validates and stores a client.
func (u *CatalogUseCase) CreateClient(ctx context.Context, in ClientInput) (*model.Client, error) {
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}
	if in.RouteID < 0 {
		return nil, domainErrors.Validation("route_id", "must not be negative")
	}
	if in.RouteID > 0 {
		if _, err := u.routes.Get(ctx, in.RouteID); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.Validation("route_id", "route does not exist")
			}
			return nil, err
		}
	}

	client, err := u.clients.Create(ctx, model.Client{
		Name:    name,
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		RouteID: in.RouteID,
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("client created", slog.Int64("client_id", client.ID))
	return client, nil
}

func (u *CatalogUseCase) ListRoutes(ctx context.Context) ([]model.Route, error) {
	return u.routes.List(ctx)
}

func (u *CatalogUseCase) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	return u.products.ListActive(ctx)
}

func (u *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.Get(ctx, id)
}

// CreateProduct validates and stores a product.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	product, err := u.productFromInput(ctx, 0, in)
	if err != nil {
		return nil, err
	}
	created, err := u.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	u.logger.Info("product created", slog.Int64("product_id", created.ID), slog.String("sku", created.SKU))
	return created, nil
}

// UpdateProduct overwrites the writable fields of product id.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	current, err := u.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := u.productFromInput(ctx, id, in)
	if err != nil {
		return nil, err
	}
	product.ID = current.ID
	product.CreatedAt = current.CreatedAt

	updated, err := u.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	u.logger.Info("product updated", slog.Int64("product_id", updated.ID))
	return updated, nil
}

// productFromInput validates in; selfID is excluded from the SKU uniqueness check.
func (u *CatalogUseCase) productFromInput(ctx context.Context, selfID int64, in ProductInput) (model.Product, error) {
	name, err := requireName("name", in.Name)
	if err != nil {
		return model.Product{}, err
	}

	sku := NormalizeSKU(in.SKU)
	if !ValidateSKU(sku) {
		return model.Product{}, domainErrors.Validation("sku", "must be uppercase letters and digits")
	}

	price, err := validatePrice(in.Price)
	if err != nil {
		return model.Product{}, err
	}
	if in.Stock < 0 {
		return model.Product{}, domainErrors.Validation("stock", "must not be negative")
	}

	if in.Active {
		existing, err := u.products.FindActiveBySKU(ctx, sku)
		switch {
		case err == nil && existing.ID != selfID:
			return model.Product{}, fmt.Errorf("sku %s is used by product %d: %w", sku, existing.ID, domainErrors.ErrAlreadyExists)
		case err != nil && !errors.Is(err, domainErrors.ErrNotFound):
			return model.Product{}, err
		}
	}

	return model.Product{
		Name:     name,
		SKU:      sku,
		Category: strings.TrimSpace(in.Category),
		Price:    price,
		Stock:    in.Stock,
		Active:   in.Active,
	}, nil
}
