package app

import (
	"context"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/usecase"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RouteManagerFacade is the single entry point used by transports and workers.
type RouteManagerFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	wizard   *usecase.WizardUseCase
	orders   *usecase.OrderUseCase
	invoices *usecase.InvoiceUseCase
	health   HealthChecker
}

func NewRouteManagerFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	wizard *usecase.WizardUseCase,
	orders *usecase.OrderUseCase,
	invoices *usecase.InvoiceUseCase,
	health HealthChecker,
) *RouteManagerFacade {
	return &RouteManagerFacade{
		auth:     auth,
		catalog:  catalog,
		wizard:   wizard,
		orders:   orders,
		invoices: invoices,
		health:   health,
	}
}

func (f *RouteManagerFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *RouteManagerFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *RouteManagerFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *RouteManagerFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *RouteManagerFacade) Clients(ctx context.Context, query string) ([]model.Client, error) {
	return f.catalog.ListClients(ctx, query)
}

func (f *RouteManagerFacade) Client(ctx context.Context, id int64) (*model.Client, error) {
	return f.catalog.GetClient(ctx, id)
}

func (f *RouteManagerFacade) CreateClient(ctx context.Context, in usecase.ClientInput) (*model.Client, error) {
	return f.catalog.CreateClient(ctx, in)
}

func (f *RouteManagerFacade) Routes(ctx context.Context) ([]model.Route, error) {
	return f.catalog.ListRoutes(ctx)
}

func (f *RouteManagerFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListActiveProducts(ctx)
}

func (f *RouteManagerFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.GetProduct(ctx, id)
}

func (f *RouteManagerFacade) CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, in)
}

func (f *RouteManagerFacade) UpdateProduct(ctx context.Context, id int64, in usecase.ProductInput) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, id, in)
}

func (f *RouteManagerFacade) StartWizard(ctx context.Context, operatorID int64) (usecase.WizardSession, error) {
	return f.wizard.Start(ctx, operatorID)
}

func (f *RouteManagerFacade) Wizard(ctx context.Context, operatorID int64, sessionID string) (usecase.WizardSession, error) {
	return f.wizard.Get(ctx, operatorID, sessionID)
}

func (f *RouteManagerFacade) SelectClient(ctx context.Context, operatorID int64, sessionID string, clientID int64) (usecase.WizardSession, error) {
	return f.wizard.SelectClient(ctx, operatorID, sessionID, clientID)
}

func (f *RouteManagerFacade) AddCartItem(ctx context.Context, operatorID int64, sessionID string, productID int64, qty int) (usecase.WizardSession, model.CartChange, error) {
	return f.wizard.AddItem(ctx, operatorID, sessionID, productID, qty)
}

func (f *RouteManagerFacade) UpdateCartItem(ctx context.Context, operatorID int64, sessionID string, productID int64, qty int) (usecase.WizardSession, model.CartChange, error) {
	return f.wizard.UpdateQuantity(ctx, operatorID, sessionID, productID, qty)
}

func (f *RouteManagerFacade) RemoveCartItem(ctx context.Context, operatorID int64, sessionID string, productID int64) (usecase.WizardSession, error) {
	return f.wizard.RemoveItem(ctx, operatorID, sessionID, productID)
}

func (f *RouteManagerFacade) ClearCart(ctx context.Context, operatorID int64, sessionID string) (usecase.WizardSession, error) {
	return f.wizard.ClearCart(ctx, operatorID, sessionID)
}

func (f *RouteManagerFacade) ReviewWizard(ctx context.Context, operatorID int64, sessionID string) (usecase.WizardSession, error) {
	return f.wizard.Review(ctx, operatorID, sessionID)
}

func (f *RouteManagerFacade) CommitWizard(ctx context.Context, operatorID int64, sessionID, notes string) (*model.Order, error) {
	return f.wizard.Commit(ctx, operatorID, sessionID, notes)
}

func (f *RouteManagerFacade) CancelWizard(ctx context.Context, operatorID int64, sessionID string) error {
	return f.wizard.Cancel(ctx, operatorID, sessionID)
}

// ExpireWizardSessions drops idle wizard sessions and returns how many were removed.
func (f *RouteManagerFacade) ExpireWizardSessions(ctx context.Context) int {
	return f.wizard.ExpireSessions(ctx)
}

func (f *RouteManagerFacade) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *RouteManagerFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *RouteManagerFacade) OrderHistory(ctx context.Context, id int64) ([]model.StatusChange, error) {
	return f.orders.History(ctx, id)
}

func (f *RouteManagerFacade) TransitionOrder(ctx context.Context, id, operatorID int64, dir model.Direction) (*model.Order, error) {
	return f.orders.Transition(ctx, id, operatorID, dir)
}

func (f *RouteManagerFacade) CancelOrder(ctx context.Context, id, operatorID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, id, operatorID)
}

func (f *RouteManagerFacade) IssueInvoice(ctx context.Context, orderID int64, series, paymentMethod string) (*model.Invoice, error) {
	return f.invoices.Derive(ctx, orderID, series, paymentMethod)
}

func (f *RouteManagerFacade) Invoices(ctx context.Context) ([]model.Invoice, error) {
	return f.invoices.List(ctx)
}

func (f *RouteManagerFacade) Invoice(ctx context.Context, id int64) (*model.Invoice, error) {
	return f.invoices.Get(ctx, id)
}

func (f *RouteManagerFacade) OrderInvoice(ctx context.Context, orderID int64) (*model.Invoice, error) {
	return f.invoices.ForOrder(ctx, orderID)
}

func (f *RouteManagerFacade) CancelInvoice(ctx context.Context, id int64) (*model.Invoice, error) {
	return f.invoices.Cancel(ctx, id)
}

func (f *RouteManagerFacade) NextFolio(ctx context.Context) (string, error) {
	return f.invoices.NextFolio(ctx)
}
