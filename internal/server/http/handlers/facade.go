package handlers

import (
	"context"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

type HealthFacade interface {
	Health(ctx context.Context) error
}

// CatalogFacade exposes clients, routes and products.
type CatalogFacade interface {
	Clients(ctx context.Context, query string) ([]model.Client, error)
	Client(ctx context.Context, id int64) (*model.Client, error)
	CreateClient(ctx context.Context, in usecase.ClientInput) (*model.Client, error)
	Routes(ctx context.Context) ([]model.Route, error)
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, in usecase.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, in usecase.ProductInput) (*model.Product, error)
}

// WizardFacade drives order composition sessions owned by an operator.
type WizardFacade interface {
	StartWizard(ctx context.Context, operatorID int64) (usecase.WizardSession, error)
	Wizard(ctx context.Context, operatorID int64, sessionID string) (usecase.WizardSession, error)
	SelectClient(ctx context.Context, operatorID int64, sessionID string, clientID int64) (usecase.WizardSession, error)
	AddCartItem(ctx context.Context, operatorID int64, sessionID string, productID int64, qty int) (usecase.WizardSession, model.CartChange, error)
	UpdateCartItem(ctx context.Context, operatorID int64, sessionID string, productID int64, qty int) (usecase.WizardSession, model.CartChange, error)
	RemoveCartItem(ctx context.Context, operatorID int64, sessionID string, productID int64) (usecase.WizardSession, error)
	ClearCart(ctx context.Context, operatorID int64, sessionID string) (usecase.WizardSession, error)
	ReviewWizard(ctx context.Context, operatorID int64, sessionID string) (usecase.WizardSession, error)
	CommitWizard(ctx context.Context, operatorID int64, sessionID, notes string) (*model.Order, error)
	CancelWizard(ctx context.Context, operatorID int64, sessionID string) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	OrderHistory(ctx context.Context, id int64) ([]model.StatusChange, error)
	TransitionOrder(ctx context.Context, id, operatorID int64, dir model.Direction) (*model.Order, error)
	CancelOrder(ctx context.Context, id, operatorID int64) (*model.Order, error)
}

type InvoiceFacade interface {
	IssueInvoice(ctx context.Context, orderID int64, series, paymentMethod string) (*model.Invoice, error)
	Invoices(ctx context.Context) ([]model.Invoice, error)
	Invoice(ctx context.Context, id int64) (*model.Invoice, error)
	OrderInvoice(ctx context.Context, orderID int64) (*model.Invoice, error)
	CancelInvoice(ctx context.Context, id int64) (*model.Invoice, error)
	NextFolio(ctx context.Context) (string, error)
}

// RouteManagerFacade aggregates the full set of operations used across handlers.
type RouteManagerFacade interface {
	AuthFacade
	HealthFacade
	CatalogFacade
	WizardFacade
	OrderFacade
	InvoiceFacade
}
