package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route is a delivery territory served by one salesperson.
type Route struct {
	ID          int64
	Name        string
	Salesperson string
}

// Client is a customer that places orders. RouteID is zero when unassigned.
type Client struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	RouteID   int64
	RouteName string
	CreatedAt time.Time
}

// Product is a sellable catalog item; Stock is the units currently available.
type Product struct {
	ID        int64
	Name      string
	SKU       string
	Category  string
	Price     decimal.Decimal
	Stock     int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
