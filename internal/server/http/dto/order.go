package dto

import "time"

type OrderLineResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// OrderResponse describes an order along with the directions its current
// status accepts.
type OrderResponse struct {
	ID         int64               `json:"id"`
	ClientID   int64               `json:"client_id"`
	ClientName string              `json:"client_name,omitempty"`
	OperatorID int64               `json:"operator_id"`
	Lines      []OrderLineResponse `json:"lines"`
	Total      string              `json:"total"`
	Status     string              `json:"status"`
	Allowed    []string            `json:"allowed"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type StatusChangeResponse struct {
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	OperatorID int64     `json:"operator_id"`
	ChangedAt  time.Time `json:"changed_at"`
}
