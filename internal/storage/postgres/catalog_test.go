package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

var (
	routeCols   = []string{"id", "name", "salesperson"}
	clientCols  = []string{"id", "name", "phone", "address", "route_id", "route_name", "created_at"}
	productCols = []string{"id", "name", "sku", "category", "price", "stock", "active", "created_at", "updated_at"}
)

func TestRouteRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &routeRepository{storage: storage}

	mock.ExpectQuery("SELECT id, name, salesperson FROM routes WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(routeCols).AddRow(int64(1), "Ruta Norte", "Luis"))
	route, err := repo.Get(context.Background(), 1)
	if err != nil || route.Name != "Ruta Norte" {
		t.Fatalf("unexpected route %+v err=%v", route, err)
	}

	mock.ExpectQuery("SELECT id, name, salesperson FROM routes WHERE id=").WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, name, salesperson FROM routes ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(routeCols).AddRow(int64(1), "Ruta Norte", "Luis").AddRow(int64(2), "Ruta Sur", "Marta"))
	routes, err := repo.List(context.Background())
	if err != nil || len(routes) != 2 {
		t.Fatalf("unexpected routes %+v err=%v", routes, err)
	}

	mock.ExpectQuery("SELECT id, name, salesperson FROM routes ORDER BY").WillReturnError(errors.New("down"))
	if _, err := repo.List(context.Background()); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestClientRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &clientRepository{storage: storage}
	now := time.Now()

	mock.ExpectQuery("INSERT INTO clients").WithArgs("Tienda Lupita", "555", "Centro 1", int64(2)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))
	client, err := repo.Create(context.Background(), model.Client{Name: "Tienda Lupita", Phone: "555", Address: "Centro 1", RouteID: 2})
	if err != nil || client.ID != 7 {
		t.Fatalf("unexpected client %+v err=%v", client, err)
	}

	mock.ExpectQuery("INSERT INTO clients").WithArgs("Sin ruta", "", "", nil).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(8), now))
	if _, err := repo.Create(context.Background(), model.Client{Name: "Sin ruta"}); err != nil {
		t.Fatalf("unassigned route must be stored as NULL: %v", err)
	}

	mock.ExpectQuery("INSERT INTO clients").WithArgs("X", "", "", int64(99)).WillReturnError(&pgconn.PgError{Code: "23503"})
	if _, err := repo.Create(context.Background(), model.Client{Name: "X", RouteID: 99}); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	mock.ExpectQuery("FROM clients c LEFT JOIN routes r ON r.id = c.route_id WHERE c.id=").WithArgs(int64(7)).WillReturnRows(
		pgxmockv3.NewRows(clientCols).AddRow(int64(7), "Tienda Lupita", "555", "Centro 1", int64(2), "Ruta Sur", now))
	client, err = repo.Get(context.Background(), 7)
	if err != nil || client.RouteName != "Ruta Sur" {
		t.Fatalf("unexpected client %+v err=%v", client, err)
	}

	mock.ExpectQuery("FROM clients c LEFT JOIN routes r ON r.id = c.route_id WHERE c.id=").WithArgs(int64(70)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), 70); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM clients c LEFT JOIN routes r ON r.id = c.route_id ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(clientCols).
			AddRow(int64(7), "Tienda Lupita", "555", "Centro 1", int64(2), "Ruta Sur", now).
			AddRow(int64(8), "Sin ruta", "", "", int64(0), "", now))
	clients, err := repo.List(context.Background())
	if err != nil || len(clients) != 2 || clients[1].RouteID != 0 {
		t.Fatalf("unexpected clients %+v err=%v", clients, err)
	}

	mock.ExpectQuery("FROM clients c LEFT JOIN routes r ON r.id = c.route_id ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(clientCols).AddRow("bad", "x", "", "", int64(0), "", now))
	if _, err := repo.List(context.Background()); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected scan failure as persistence error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestClientRepositoryListRowsError(t *testing.T) {
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows err")}}}
	repo := &clientRepository{storage: storage}

	if _, err := repo.List(context.Background()); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestProductRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &productRepository{storage: storage}
	now := time.Now()
	price := decimal.RequireFromString("18.50")

	mock.ExpectQuery("INSERT INTO products").WithArgs("Agua 1L", "AG-1L", "Bebidas", pgxmockv3.AnyArg(), 40, true).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))
	product, err := repo.Create(context.Background(), model.Product{Name: "Agua 1L", SKU: "AG-1L", Category: "Bebidas", Price: price, Stock: 40, Active: true})
	if err != nil || product.ID != 3 || !product.Price.Equal(price) {
		t.Fatalf("unexpected product %+v err=%v", product, err)
	}

	mock.ExpectQuery("INSERT INTO products").WithArgs("Agua 1L", "AG-1L", "Bebidas", pgxmockv3.AnyArg(), 40, true).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_active_sku_idx"})
	if _, err := repo.Create(context.Background(), model.Product{Name: "Agua 1L", SKU: "AG-1L", Category: "Bebidas", Price: price, Stock: 40, Active: true}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("UPDATE products").WithArgs("Agua 1L", "AG-1L", "Bebidas", pgxmockv3.AnyArg(), 10, true, int64(3)).WillReturnRows(
		pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	if _, err := repo.Update(context.Background(), model.Product{ID: 3, Name: "Agua 1L", SKU: "AG-1L", Category: "Bebidas", Price: price, Stock: 10, Active: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("UPDATE products").WithArgs("X", "X1", "", pgxmockv3.AnyArg(), 0, false, int64(4)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Update(context.Background(), model.Product{ID: 4, Name: "X", SKU: "X1"}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("UPDATE products").WithArgs("X", "AG-1L", "", pgxmockv3.AnyArg(), 0, true, int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_active_sku_idx"})
	if _, err := repo.Update(context.Background(), model.Product{ID: 5, Name: "X", SKU: "AG-1L", Active: true}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM products WHERE id=").WithArgs(int64(3)).WillReturnRows(
		pgxmockv3.NewRows(productCols).AddRow(int64(3), "Agua 1L", "AG-1L", "Bebidas", price, 40, true, now, now))
	if got, err := repo.Get(context.Background(), 3); err != nil || got.Stock != 40 {
		t.Fatalf("unexpected product %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM products WHERE sku=").WithArgs("NOPE").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.FindActiveBySKU(context.Background(), "NOPE"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM products WHERE active ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(productCols).
			AddRow(int64(3), "Agua 1L", "AG-1L", "Bebidas", price, 40, true, now, now).
			AddRow(int64(4), "Galletas", "GA-200", "Botanas", decimal.RequireFromString("12"), 0, true, now, now))
	products, err := repo.ListActive(context.Background())
	if err != nil || len(products) != 2 {
		t.Fatalf("unexpected products %+v err=%v", products, err)
	}

	mock.ExpectQuery("FROM products WHERE active ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(productCols).
			AddRow(int64(3), "Agua 1L", "AG-1L", "Bebidas", price, 40, true, now, now).
			RowError(0, errors.New("row")))
	if _, err := repo.ListActive(context.Background()); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
