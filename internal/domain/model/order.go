package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pendiente"
	OrderStatusEnRoute   OrderStatus = "En Ruta"
	OrderStatusDelivered OrderStatus = "Entregado"
	OrderStatusCancelled OrderStatus = "Cancelado"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusEnRoute,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderLine is an immutable snapshot of a product at commit time.
type OrderLine struct {
	ProductID   int64
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Order is a committed client order. Lines never change after creation.
type Order struct {
	ID         int64
	ClientID   int64
	ClientName string
	OperatorID int64
	Lines      []OrderLine
	Total      decimal.Decimal
	Status     OrderStatus
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StatusChange is one entry of an order's status history. From is empty for
// the creation entry.
type StatusChange struct {
	ID         int64
	OrderID    int64
	From       OrderStatus
	To         OrderStatus
	OperatorID int64
	ChangedAt  time.Time
}

// OrderFilter narrows order listings; zero values match everything.
type OrderFilter struct {
	Status   OrderStatus
	ClientID int64
}

// Matches reports whether order satisfies the filter.
func (f OrderFilter) Matches(order Order) bool {
	if f.Status != "" && order.Status != f.Status {
		return false
	}
	if f.ClientID != 0 && order.ClientID != f.ClientID {
		return false
	}
	return true
}
