package dto

import "time"

// InvoiceRequest is the optional body of POST /api/orders/:id/invoice.
type InvoiceRequest struct {
	Series        string `json:"series"`
	PaymentMethod string `json:"payment_method"`
}

type InvoiceResponse struct {
	ID            int64      `json:"id"`
	Folio         string     `json:"folio"`
	Series        string     `json:"series"`
	OrderID       int64      `json:"order_id"`
	ClientID      int64      `json:"client_id"`
	IssuedAt      time.Time  `json:"issued_at"`
	Subtotal      string     `json:"subtotal"`
	Tax           string     `json:"tax"`
	Total         string     `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	UUIDSAT       string     `json:"uuid_sat"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type FolioResponse struct {
	Folio string `json:"folio"`
}
