package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// InvoiceUseCase derives invoices from delivered orders.
type InvoiceUseCase struct {
	orders   repository.OrderRepository
	invoices repository.InvoiceRepository
	newUUID  func() string
	logger   *slog.Logger
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(orders repository.OrderRepository, invoices repository.InvoiceRepository, logger *slog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{orders: orders, invoices: invoices, newUUID: uuid.NewString, logger: logger}
}

// Derive issues the invoice of a delivered order. The folio is allocated by
// the repository; amounts come from the order total at the fixed 16% rate.
func (u *InvoiceUseCase) Derive(ctx context.Context, orderID int64, series, paymentMethod string) (*model.Invoice, error) {
	series, err := normalizeSeries(series)
	if err != nil {
		return nil, err
	}
	paymentMethod, err = normalizePaymentMethod(paymentMethod)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusDelivered {
		return nil, &domainErrors.OrderNotDeliveredError{OrderID: orderID, Status: string(order.Status)}
	}

	existing, err := u.invoices.FindByOrder(ctx, orderID)
	switch {
	case err == nil:
		return nil, &domainErrors.DuplicateInvoiceError{OrderID: orderID, InvoiceID: existing.ID, Folio: existing.Folio}
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}

	amounts := model.SplitTax(order.Total)
	invoice, err := u.invoices.Create(ctx, model.Invoice{
		Series:        series,
		OrderID:       order.ID,
		ClientID:      order.ClientID,
		Subtotal:      amounts.Subtotal,
		Tax:           amounts.Tax,
		Total:         amounts.Total,
		PaymentMethod: paymentMethod,
		Status:        model.InvoiceStatusActive,
		UUIDSAT:       u.newUUID(),
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("invoice issued",
		slog.Int64("invoice_id", invoice.ID),
		slog.String("folio", invoice.Folio),
		slog.Int64("order_id", orderID),
		slog.String("total", invoice.Total.StringFixed(2)),
	)
	return invoice, nil
}

// Cancel marks the invoice Cancelada. The order keeps its status.
func (u *InvoiceUseCase) Cancel(ctx context.Context, invoiceID int64) (*model.Invoice, error) {
	invoice, err := u.invoices.Cancel(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	u.logger.Info("invoice cancelled", slog.Int64("invoice_id", invoice.ID), slog.String("folio", invoice.Folio))
	return invoice, nil
}

func (u *InvoiceUseCase) Get(ctx context.Context, invoiceID int64) (*model.Invoice, error) {
	return u.invoices.Get(ctx, invoiceID)
}

func (u *InvoiceUseCase) List(ctx context.Context) ([]model.Invoice, error) {
	return u.invoices.List(ctx)
}

// ForOrder returns the active invoice of the order.
func (u *InvoiceUseCase) ForOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	return u.invoices.FindByOrder(ctx, orderID)
}

// NextFolio previews the folio the next invoice would receive. Concurrent
// issuance may take it first.
func (u *InvoiceUseCase) NextFolio(ctx context.Context) (string, error) {
	last, err := u.invoices.LastFolio(ctx)
	if err != nil {
		return "", err
	}
	return model.NextFolio(last)
}

func normalizeSeries(series string) (string, error) {
	series = strings.ToUpper(strings.TrimSpace(series))
	if series == "" {
		return model.DefaultSeries, nil
	}
	if len(series) > 4 || !allLetters(series) {
		return "", domainErrors.Validation("series", "must be up to four letters")
	}
	return series, nil
}

func normalizePaymentMethod(method string) (string, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return model.DefaultPaymentMethod, nil
	}
	if len(method) > 3 {
		return "", domainErrors.Validation("payment_method", "must be a payment method code")
	}
	for _, r := range method {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", domainErrors.Validation("payment_method", "must be a payment method code")
		}
	}
	return method, nil
}

func allLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
