package repository

import (
	"context"

	"github.com/polkiloo/routemanager/internal/domain/model"
)

// InvoiceRepository describes persistence operations with invoices.
type InvoiceRepository interface {
	// Create allocates the next folio and stores the invoice atomically.
	// The order must still be delivered when the invoice is written: an
	// OrderNotDeliveredError is returned otherwise, and a
	// DuplicateInvoiceError when the order already has an active invoice.
	Create(ctx context.Context, invoice model.Invoice) (*model.Invoice, error)
	Get(ctx context.Context, id int64) (*model.Invoice, error)
	List(ctx context.Context) ([]model.Invoice, error)
	// LastFolio returns the highest folio issued, or "" when none exist.
	LastFolio(ctx context.Context) (string, error)
	// FindByOrder returns the active invoice for the order or ErrNotFound.
	FindByOrder(ctx context.Context, orderID int64) (*model.Invoice, error)
	// Cancel marks the invoice cancelled; cancelling twice is a no-op.
	Cancel(ctx context.Context, id int64) (*model.Invoice, error)
}
