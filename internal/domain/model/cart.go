package model

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
)

// CartLine is a product being composed into an order. UnitPrice is the price
// seen when the product was first added.
type CartLine struct {
	ProductID   int64
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal returns UnitPrice × Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartChange describes the outcome of a cart mutation. Clamped is set when the
// requested quantity exceeded stock and was reduced.
type CartChange struct {
	Line    CartLine
	Removed bool
	Clamped bool
}

// Cart accumulates order lines for a single wizard session. It is not safe for
// concurrent use.
//
// Quantities above stock are clamped, not rejected; callers learn about it
// through CartChange.Clamped.
type Cart struct {
	lines []CartLine
}

// AddItem adds qty units of product, merging with an existing line.
func (c *Cart) AddItem(product Product, qty int) (CartChange, error) {
	if qty < 1 {
		return CartChange{}, domainErrors.Validation("quantity", "must be at least 1")
	}
	if !product.Active {
		return CartChange{}, domainErrors.Validation("product_id", "product is not active")
	}
	if product.Stock < 1 {
		return CartChange{}, domainErrors.Validation("product_id", "product is out of stock")
	}

	idx := c.index(product.ID)
	if idx < 0 {
		c.lines = append(c.lines, CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			SKU:         product.SKU,
			UnitPrice:   product.Price,
		})
		idx = len(c.lines) - 1
	}

	line := &c.lines[idx]
	wanted := line.Quantity + qty
	clamped := wanted > product.Stock
	if clamped {
		wanted = product.Stock
	}
	line.Quantity = wanted
	return CartChange{Line: *line, Clamped: clamped}, nil
}

// RemoveItem deletes the line for productID. It reports whether a line existed.
func (c *Cart) RemoveItem(productID int64) bool {
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return true
}

// UpdateQuantity overwrites the quantity of productID's line, clamped to stock.
// A quantity of zero or less removes the line. ok is false when the product is
// not in the cart.
func (c *Cart) UpdateQuantity(productID int64, qty, stock int) (change CartChange, ok bool) {
	idx := c.index(productID)
	if idx < 0 {
		return CartChange{}, false
	}
	line := c.lines[idx]
	if qty <= 0 {
		c.RemoveItem(productID)
		line.Quantity = 0
		return CartChange{Line: line, Removed: true}, true
	}

	clamped := qty > stock
	if clamped {
		qty = stock
	}
	if qty < 1 {
		c.RemoveItem(productID)
		line.Quantity = 0
		return CartChange{Line: line, Removed: true, Clamped: true}, true
	}

	c.lines[idx].Quantity = qty
	return CartChange{Line: c.lines[idx], Clamped: clamped}, true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID.
func (c *Cart) Line(productID int64) (CartLine, bool) {
	idx := c.index(productID)
	if idx < 0 {
		return CartLine{}, false
	}
	return c.lines[idx], true
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Total returns Σ(UnitPrice × Quantity).
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// OrderLines snapshots the cart as immutable order lines.
func (c *Cart) OrderLines() []OrderLine {
	out := make([]OrderLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}

func (c *Cart) index(productID int64) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
