package dto

import "time"

type SelectClientRequest struct {
	ClientID int64 `json:"client_id"`
}

// CartItemRequest adds Quantity units of a product to the cart.
type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CommitRequest struct {
	Notes string `json:"notes"`
}

type CartLineResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// AmountsResponse is the subtotal/IVA split shown before committing.
type AmountsResponse struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type WizardResponse struct {
	ID        string             `json:"id"`
	Step      string             `json:"step"`
	Client    *ClientResponse    `json:"client,omitempty"`
	Lines     []CartLineResponse `json:"lines"`
	Total     string             `json:"total"`
	Amounts   *AmountsResponse   `json:"amounts,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// CartChangeResponse reports a cart mutation. Clamped is set when the
// requested quantity exceeded stock.
type CartChangeResponse struct {
	Session  WizardResponse `json:"session"`
	Quantity int            `json:"quantity"`
	Removed  bool           `json:"removed"`
	Clamped  bool           `json:"clamped"`
}
