package repository

import (
	"context"

	"github.com/polkiloo/routemanager/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the order with its lines and the initial history entry.
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// UpdateStatus moves the order to status only if it is still in expected,
	// recording change in the history. Returns ErrConflict when the order is
	// no longer in expected and ErrNotFound when it does not exist.
	UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error)
	History(ctx context.Context, orderID int64) ([]model.StatusChange, error)
}
