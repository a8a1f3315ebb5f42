package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RouteResponse describes a delivery route.
type RouteResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Salesperson string `json:"salesperson"`
}

// ClientRequest is the payload of POST /api/clients.
type ClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	RouteID int64  `json:"route_id"`
}

type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address"`
	RouteID   int64     `json:"route_id,omitempty"`
	RouteName string    `json:"route_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRequest creates or replaces a product. Price accepts both JSON
// numbers and strings.
type ProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Active   *bool           `json:"active"`
}

// ProductResponse renders money as a fixed two-decimal string.
type ProductResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}
