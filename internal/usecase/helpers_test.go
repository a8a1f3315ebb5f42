package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newStore() *memory.Store {
	return memory.New(memory.DemoFixtures())
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seedOrder stores a Pendiente order for client 1 with a single line worth total.
func seedOrder(t *testing.T, store *memory.Store, total string) *model.Order {
	t.Helper()
	amount := decimal.RequireFromString(total)
	order, err := store.Orders().Create(context.Background(), model.Order{
		ClientID:   1,
		OperatorID: 1,
		Lines: []model.OrderLine{{
			ProductID: 1, ProductName: "Refresco Cola 2L", SKU: "RF-COLA-2L",
			Quantity: 1, UnitPrice: amount, Subtotal: amount,
		}},
		Total:  amount,
		Status: model.OrderStatusPending,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

// deliver walks an order from Pendiente to Entregado.
func deliver(t *testing.T, orders *OrderUseCase, orderID int64) {
	t.Helper()
	for i := 0; i < 2; i++ {
		if _, err := orders.Transition(context.Background(), orderID, 1, model.DirectionAdvance); err != nil {
			t.Fatalf("advance order %d: %v", orderID, err)
		}
	}
}
