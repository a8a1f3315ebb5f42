package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Operators() OperatorRepository
	Routes() RouteRepository
	Clients() ClientRepository
	Products() ProductRepository
	Orders() OrderRepository
	Invoices() InvoiceRepository
	HealthCheck(ctx context.Context) error
	Close()
}
