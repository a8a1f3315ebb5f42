package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

type routeRepository struct {
	storage *Storage
}

type clientRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// --- RouteRepository implementation ---

func (r *routeRepository) Get(ctx context.Context, id int64) (*model.Route, error) {
	const query = `SELECT id, name, salesperson FROM routes WHERE id=$1`
	var route model.Route
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&route.ID, &route.Name, &route.Salesperson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Persistence("routes.get", err)
	}
	return &route, nil
}

func (r *routeRepository) List(ctx context.Context) ([]model.Route, error) {
	const query = `SELECT id, name, salesperson FROM routes ORDER BY name, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.Persistence("routes.list", err)
	}
	defer rows.Close()

	var result []model.Route
	for rows.Next() {
		var route model.Route
		if err := rows.Scan(&route.ID, &route.Name, &route.Salesperson); err != nil {
			return nil, domainErrors.Persistence("routes.list", err)
		}
		result = append(result, route)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Persistence("routes.list", err)
	}
	return result, nil
}

// --- ClientRepository implementation ---

const clientColumns = `c.id, c.name, c.phone, c.address, COALESCE(c.route_id, 0), COALESCE(r.name, ''), c.created_at`

func scanClient(row pgx.Row, c *model.Client) error {
	return row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.RouteID, &c.RouteName, &c.CreatedAt)
}

func (r *clientRepository) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	const query = `INSERT INTO clients (name, phone, address, route_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, client.Name, client.Phone, client.Address, nullableID(client.RouteID)).
		Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return nil, domainErrors.Persistence("clients.create", err)
	}
	return &client, nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients c LEFT JOIN routes r ON r.id = c.route_id WHERE c.id=$1`
	var c model.Client
	if err := scanClient(r.storage.pool.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Persistence("clients.get", err)
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients c LEFT JOIN routes r ON r.id = c.route_id ORDER BY c.name, c.id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.Persistence("clients.list", err)
	}
	defer rows.Close()

	var result []model.Client
	for rows.Next() {
		var c model.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, domainErrors.Persistence("clients.list", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Persistence("clients.list", err)
	}
	return result, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, sku, category, price, stock, active, created_at, updated_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, sku, category, price, stock, active)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, product.Name, product.SKU, product.Category, product.Price, product.Stock, product.Active).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if uniqueViolationOn(err, "products_active_sku_idx") {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, domainErrors.Persistence("products.create", err)
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET name=$1, sku=$2, category=$3, price=$4, stock=$5, active=$6, updated_at=NOW()
                   WHERE id=$7
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, product.Name, product.SKU, product.Category, product.Price, product.Stock, product.Active, product.ID).
		Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		if uniqueViolationOn(err, "products_active_sku_idx") {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, domainErrors.Persistence("products.update", err)
	}
	return &product, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return r.getOne(ctx, "products.get", query, id)
}

func (r *productRepository) FindActiveBySKU(ctx context.Context, sku string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE sku=$1 AND active`
	return r.getOne(ctx, "products.find_by_sku", query, sku)
}

func (r *productRepository) getOne(ctx context.Context, op, query string, arg any) (*model.Product, error) {
	var p model.Product
	if err := scanProduct(r.storage.pool.QueryRow(ctx, query, arg), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Persistence(op, err)
	}
	return &p, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY name, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.Persistence("products.list_active", err)
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, domainErrors.Persistence("products.list_active", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Persistence("products.list_active", err)
	}
	return result, nil
}
