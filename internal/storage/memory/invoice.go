package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

type invoiceRepository struct{ s *Store }

// activeInvoice returns the non-cancelled invoice of an order. Caller holds the lock.
func (s *Store) activeInvoice(orderID int64) (model.Invoice, bool) {
	for _, inv := range s.invoices {
		if inv.OrderID == orderID && inv.Active() {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

func (r invoiceRepository) Create(_ context.Context, invoice model.Invoice) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order, ok := r.s.orders[invoice.OrderID]
	if !ok {
		return nil, domainErrors.Persistence("invoices.create", fmt.Errorf("order %d does not exist", invoice.OrderID))
	}
	if order.Status != model.OrderStatusDelivered {
		return nil, &domainErrors.OrderNotDeliveredError{OrderID: invoice.OrderID, Status: string(order.Status)}
	}
	if existing, ok := r.s.activeInvoice(invoice.OrderID); ok {
		return nil, &domainErrors.DuplicateInvoiceError{OrderID: invoice.OrderID, InvoiceID: existing.ID, Folio: existing.Folio}
	}

	folio, err := model.FolioFor(r.s.folioSeq + 1)
	if err != nil {
		return nil, domainErrors.Persistence("invoices.create", err)
	}
	r.s.folioSeq++
	invoice.Folio = folio
	invoice.ID = r.s.assignID("invoices", 0)
	invoice.IssuedAt = r.s.now()
	invoice.CancelledAt = nil
	r.s.invoices[invoice.ID] = invoice
	r.s.lastFolio = invoice.Folio
	return &invoice, nil
}

func (r invoiceRepository) Get(_ context.Context, id int64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &inv, nil
}

func (r invoiceRepository) List(context.Context) ([]model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]model.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		result = append(result, inv)
	}
	slices.SortFunc(result, func(a, b model.Invoice) int {
		if c := b.IssuedAt.Compare(a.IssuedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return result, nil
}

func (r invoiceRepository) LastFolio(context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.lastFolio, nil
}

func (r invoiceRepository) FindByOrder(_ context.Context, orderID int64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.activeInvoice(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &inv, nil
}

func (r invoiceRepository) Cancel(_ context.Context, id int64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if inv.Status != model.InvoiceStatusCancelled {
		now := r.s.now()
		inv.Status = model.InvoiceStatusCancelled
		inv.CancelledAt = &now
		r.s.invoices[id] = inv
	}
	return &inv, nil
}
