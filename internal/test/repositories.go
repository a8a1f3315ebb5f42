package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// OperatorRepositoryStub stores operators in-memory for tests.
type OperatorRepositoryStub struct {
	ByLogin map[string]*model.Operator
	ByID    map[int64]*model.Operator
	Next    int64
	Err     error
}

// NewOperatorRepositoryStub constructs stub repository with initialized maps.
func NewOperatorRepositoryStub() *OperatorRepositoryStub {
	return &OperatorRepositoryStub{
		ByLogin: make(map[string]*model.Operator),
		ByID:    make(map[int64]*model.Operator),
		Next:    1,
	}
}

// Create registers operator unless already exists or stub has explicit error.
func (s *OperatorRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.Operator, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByLogin[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	op := &model.Operator{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.ByLogin[login] = op
	s.ByID[op.ID] = op
	return op, nil
}

// GetByLogin fetches operator by login or returns not found.
func (s *OperatorRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Operator, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if op, ok := s.ByLogin[login]; ok {
		return op, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches operator by identifier or returns not found.
func (s *OperatorRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Operator, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if op, ok := s.ByID[id]; ok {
		return op, nil
	}
	return nil, domainErrors.ErrNotFound
}

// RouteRepositoryStub overrides selected calls and delegates the rest to Next.
type RouteRepositoryStub struct {
	Next   repository.RouteRepository
	GetFn  func(context.Context, int64) (*model.Route, error)
	ListFn func(context.Context) ([]model.Route, error)
}

func (s *RouteRepositoryStub) Get(ctx context.Context, id int64) (*model.Route, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Next == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Next.Get(ctx, id)
}

func (s *RouteRepositoryStub) List(ctx context.Context) ([]model.Route, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	if s.Next == nil {
		return nil, nil
	}
	return s.Next.List(ctx)
}

// ClientRepositoryStub overrides selected calls and delegates the rest to Next.
type ClientRepositoryStub struct {
	Next     repository.ClientRepository
	CreateFn func(context.Context, model.Client) (*model.Client, error)
	GetFn    func(context.Context, int64) (*model.Client, error)
	ListFn   func(context.Context) ([]model.Client, error)
}

func (s *ClientRepositoryStub) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, client)
	}
	return s.Next.Create(ctx, client)
}

func (s *ClientRepositoryStub) Get(ctx context.Context, id int64) (*model.Client, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Next == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Next.Get(ctx, id)
}

func (s *ClientRepositoryStub) List(ctx context.Context) ([]model.Client, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	if s.Next == nil {
		return nil, nil
	}
	return s.Next.List(ctx)
}

// ProductRepositoryStub overrides selected calls and delegates the rest to Next.
type ProductRepositoryStub struct {
	Next              repository.ProductRepository
	CreateFn          func(context.Context, model.Product) (*model.Product, error)
	UpdateFn          func(context.Context, model.Product) (*model.Product, error)
	GetFn             func(context.Context, int64) (*model.Product, error)
	ListActiveFn      func(context.Context) ([]model.Product, error)
	FindActiveBySKUFn func(context.Context, string) (*model.Product, error)
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	return s.Next.Create(ctx, product)
}

func (s *ProductRepositoryStub) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	return s.Next.Update(ctx, product)
}

func (s *ProductRepositoryStub) Get(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Next == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Next.Get(ctx, id)
}

func (s *ProductRepositoryStub) ListActive(ctx context.Context) ([]model.Product, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx)
	}
	return s.Next.ListActive(ctx)
}

func (s *ProductRepositoryStub) FindActiveBySKU(ctx context.Context, sku string) (*model.Product, error) {
	if s.FindActiveBySKUFn != nil {
		return s.FindActiveBySKUFn(ctx, sku)
	}
	if s.Next == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Next.FindActiveBySKU(ctx, sku)
}

// OrderRepositoryStub overrides selected calls, delegates the rest to Next and
// records the status changes it was asked to apply.
type OrderRepositoryStub struct {
	Next           repository.OrderRepository
	CreateFn       func(context.Context, model.Order) (*model.Order, error)
	GetFn          func(context.Context, int64) (*model.Order, error)
	ListFn         func(context.Context, model.OrderFilter) ([]model.Order, error)
	UpdateStatusFn func(context.Context, model.StatusChange) (*model.Order, error)
	HistoryFn      func(context.Context, int64) ([]model.StatusChange, error)

	mu      sync.Mutex
	Changes []model.StatusChange
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return s.Next.Create(ctx, order)
}

func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Next == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Next.Get(ctx, id)
}

func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Next.List(ctx, filter)
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	s.mu.Lock()
	s.Changes = append(s.Changes, change)
	s.mu.Unlock()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, change)
	}
	return s.Next.UpdateStatus(ctx, change)
}

func (s *OrderRepositoryStub) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, orderID)
	}
	return s.Next.History(ctx, orderID)
}

// InvoiceRepositoryStub overrides selected calls and delegates the rest to Next.
type InvoiceRepositoryStub struct {
	Next          repository.InvoiceRepository
	CreateFn      func(context.Context, model.Invoice) (*model.Invoice, error)
	GetFn         func(context.Context, int64) (*model.Invoice, error)
	ListFn        func(context.Context) ([]model.Invoice, error)
	LastFolioFn   func(context.Context) (string, error)
	FindByOrderFn func(context.Context, int64) (*model.Invoice, error)
	CancelFn      func(context.Context, int64) (*model.Invoice, error)
}

func (s *InvoiceRepositoryStub) Create(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, invoice)
	}
	return s.Next.Create(ctx, invoice)
}

func (s *InvoiceRepositoryStub) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return s.Next.Get(ctx, id)
}

func (s *InvoiceRepositoryStub) List(ctx context.Context) ([]model.Invoice, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Next.List(ctx)
}

func (s *InvoiceRepositoryStub) LastFolio(ctx context.Context) (string, error) {
	if s.LastFolioFn != nil {
		return s.LastFolioFn(ctx)
	}
	return s.Next.LastFolio(ctx)
}

func (s *InvoiceRepositoryStub) FindByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	if s.FindByOrderFn != nil {
		return s.FindByOrderFn(ctx, orderID)
	}
	if s.Next == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Next.FindByOrder(ctx, orderID)
}

func (s *InvoiceRepositoryStub) Cancel(ctx context.Context, id int64) (*model.Invoice, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	return s.Next.Cancel(ctx, id)
}

// HealthCheckerStub returns Err from both the store and facade health calls.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

func (s HealthCheckerStub) Health(context.Context) error {
	return s.Err
}

var (
	_ repository.OperatorRepository = (*OperatorRepositoryStub)(nil)
	_ repository.RouteRepository    = (*RouteRepositoryStub)(nil)
	_ repository.ClientRepository   = (*ClientRepositoryStub)(nil)
	_ repository.ProductRepository  = (*ProductRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.InvoiceRepository  = (*InvoiceRepositoryStub)(nil)
)
