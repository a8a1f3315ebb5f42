package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus describes invoice validity.
type InvoiceStatus string

const (
	InvoiceStatusActive    InvoiceStatus = "Vigente"
	InvoiceStatusCancelled InvoiceStatus = "Cancelada"
	InvoiceStatusPending   InvoiceStatus = "Pendiente"
)

const (
	// DefaultSeries is used when an invoice is requested without a series.
	DefaultSeries = "A"
	// DefaultPaymentMethod is the single-payment method code.
	DefaultPaymentMethod = "PUE"
)

// taxDivisor converts a tax-inclusive amount at the fixed 16% rate to its base.
var taxDivisor = decimal.RequireFromString("1.16")

// Invoice is the tax document issued for one delivered order.
// UUIDSAT is a cosmetic placeholder, not a certified fiscal identifier.
type Invoice struct {
	ID            int64
	Folio         string
	Series        string
	OrderID       int64
	ClientID      int64
	IssuedAt      time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Status        InvoiceStatus
	UUIDSAT       string
	CancelledAt   *time.Time
}

// Active reports whether the invoice still blocks re-invoicing its order.
func (i Invoice) Active() bool {
	return i.Status != InvoiceStatusCancelled
}

// TaxBreakdown splits a tax-inclusive total.
type TaxBreakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// SplitTax derives subtotal and tax from a total that already includes 16% tax.
// Subtotal is rounded to cents and tax absorbs the remainder so that
// Subtotal+Tax == Total.
func SplitTax(total decimal.Decimal) TaxBreakdown {
	subtotal := total.Div(taxDivisor).Round(2)
	return TaxBreakdown{
		Subtotal: subtotal,
		Tax:      total.Sub(subtotal),
		Total:    total,
	}
}
