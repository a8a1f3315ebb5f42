package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// Store is an in-process repository.Factory used in offline mode and tests.
// All repositories share one mutex so multi-record invariants hold.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	operators map[int64]model.Operator
	routes    map[int64]model.Route
	clients   map[int64]model.Client
	products  map[int64]model.Product
	orders    map[int64]model.Order
	history   map[int64][]model.StatusChange
	invoices  map[int64]model.Invoice

	lastID    map[string]int64
	folioSeq  int64
	lastFolio string
}

var _ repository.Factory = (*Store)(nil)

// New creates a store seeded with fixtures.
func New(f Fixtures) *Store {
	s := &Store{
		now:       time.Now,
		operators: make(map[int64]model.Operator),
		routes:    make(map[int64]model.Route),
		clients:   make(map[int64]model.Client),
		products:  make(map[int64]model.Product),
		orders:    make(map[int64]model.Order),
		history:   make(map[int64][]model.StatusChange),
		invoices:  make(map[int64]model.Invoice),
		lastID:    make(map[string]int64),
	}

	for _, r := range f.Routes {
		r.ID = s.assignID("routes", r.ID)
		s.routes[r.ID] = r
	}
	created := s.now()
	for _, c := range f.Clients {
		c.ID = s.assignID("clients", c.ID)
		if c.CreatedAt.IsZero() {
			c.CreatedAt = created
		}
		s.clients[c.ID] = c
	}
	for _, p := range f.Products {
		p.ID = s.assignID("products", p.ID)
		if p.CreatedAt.IsZero() {
			p.CreatedAt, p.UpdatedAt = created, created
		}
		s.products[p.ID] = p
	}
	return s
}

// assignID returns id, or the next id of the table when id is zero.
func (s *Store) assignID(table string, id int64) int64 {
	if id == 0 {
		id = s.lastID[table] + 1
	}
	if id > s.lastID[table] {
		s.lastID[table] = id
	}
	return id
}

func (s *Store) Operators() repository.OperatorRepository { return operatorRepository{s} }
func (s *Store) Routes() repository.RouteRepository       { return routeRepository{s} }
func (s *Store) Clients() repository.ClientRepository     { return clientRepository{s} }
func (s *Store) Products() repository.ProductRepository   { return productRepository{s} }
func (s *Store) Orders() repository.OrderRepository       { return orderRepository{s} }
func (s *Store) Invoices() repository.InvoiceRepository   { return invoiceRepository{s} }

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// --- OperatorRepository implementation ---

type operatorRepository struct{ s *Store }

func (r operatorRepository) Create(_ context.Context, login, passwordHash string) (*model.Operator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, op := range r.s.operators {
		if op.Login == login {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	op := model.Operator{
		ID:           r.s.assignID("operators", 0),
		Login:        login,
		PasswordHash: passwordHash,
		CreatedAt:    r.s.now(),
	}
	r.s.operators[op.ID] = op
	return &op, nil
}

func (r operatorRepository) GetByLogin(_ context.Context, login string) (*model.Operator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, op := range r.s.operators {
		if op.Login == login {
			return &op, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r operatorRepository) GetByID(_ context.Context, id int64) (*model.Operator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	op, ok := r.s.operators[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &op, nil
}

// --- RouteRepository implementation ---

type routeRepository struct{ s *Store }

func (r routeRepository) Get(_ context.Context, id int64) (*model.Route, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	route, ok := r.s.routes[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &route, nil
}

func (r routeRepository) List(context.Context) ([]model.Route, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]model.Route, 0, len(r.s.routes))
	for _, route := range r.s.routes {
		result = append(result, route)
	}
	slices.SortFunc(result, func(a, b model.Route) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// --- ClientRepository implementation ---

type clientRepository struct{ s *Store }

// withRoute fills the denormalized route name. Caller holds the lock.
func (s *Store) withRoute(c model.Client) model.Client {
	c.RouteName = ""
	if route, ok := s.routes[c.RouteID]; ok {
		c.RouteName = route.Name
	}
	return c
}

func (r clientRepository) Create(_ context.Context, client model.Client) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if client.RouteID != 0 {
		if _, ok := r.s.routes[client.RouteID]; !ok {
			return nil, domainErrors.Persistence("clients.create", fmt.Errorf("route %d does not exist", client.RouteID))
		}
	}
	client.ID = r.s.assignID("clients", 0)
	client.CreatedAt = r.s.now()
	r.s.clients[client.ID] = client

	out := r.s.withRoute(client)
	return &out, nil
}

func (r clientRepository) Get(_ context.Context, id int64) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.clients[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := r.s.withRoute(c)
	return &out, nil
}

func (r clientRepository) List(context.Context) ([]model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]model.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		result = append(result, r.s.withRoute(c))
	}
	slices.SortFunc(result, func(a, b model.Client) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// --- ProductRepository implementation ---

type productRepository struct{ s *Store }

// skuTaken reports whether another active product uses sku. Caller holds the lock.
func (s *Store) skuTaken(sku string, exceptID int64) bool {
	for _, p := range s.products {
		if p.Active && p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (r productRepository) Create(_ context.Context, product model.Product) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.Active && r.s.skuTaken(product.SKU, 0) {
		return nil, domainErrors.ErrAlreadyExists
	}
	product.ID = r.s.assignID("products", 0)
	product.CreatedAt = r.s.now()
	product.UpdatedAt = product.CreatedAt
	r.s.products[product.ID] = product
	return &product, nil
}

func (r productRepository) Update(_ context.Context, product model.Product) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[product.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if product.Active && r.s.skuTaken(product.SKU, product.ID) {
		return nil, domainErrors.ErrAlreadyExists
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = r.s.now()
	r.s.products[product.ID] = product
	return &product, nil
}

func (r productRepository) Get(_ context.Context, id int64) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (r productRepository) ListActive(context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []model.Product
	for _, p := range r.s.products {
		if p.Active {
			result = append(result, p)
		}
	}
	slices.SortFunc(result, func(a, b model.Product) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r productRepository) FindActiveBySKU(_ context.Context, sku string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.products {
		if p.Active && p.SKU == sku {
			return &p, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
