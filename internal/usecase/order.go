package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
)

// OrderUseCase drives committed orders through their status lifecycle.
type OrderUseCase struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, logger: logger}
}

// Transition moves the order one step in direction dir on behalf of operatorID.
//
// The write is conditional on the status read here; if another request moved
// the order in between, the call fails with a stale InvalidTransitionError and
// nothing is recorded.
func (u *OrderUseCase) Transition(ctx context.Context, orderID, operatorID int64, dir model.Direction) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	target, ok := order.Status.Target(dir)
	if !ok {
		return nil, &domainErrors.InvalidTransitionError{
			OrderID:   orderID,
			Current:   string(order.Status),
			Requested: requestedStatus(order.Status, dir),
		}
	}

	updated, err := u.orders.UpdateStatus(ctx, model.StatusChange{
		OrderID:    orderID,
		From:       order.Status,
		To:         target,
		OperatorID: operatorID,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			return nil, &domainErrors.InvalidTransitionError{
				OrderID:   orderID,
				Current:   string(order.Status),
				Requested: string(target),
				Stale:     true,
			}
		}
		return nil, err
	}

	u.logger.Info("order status changed",
		slog.Int64("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(target)),
		slog.Int64("operator_id", operatorID),
	)
	return updated, nil
}

// Cancel moves the order to Cancelado.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, operatorID int64) (*model.Order, error) {
	return u.Transition(ctx, orderID, operatorID, model.DirectionCancel)
}

func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.Get(ctx, orderID)
}

// List returns orders matching filter, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domainErrors.Validation("status", "unknown order status")
	}
	if filter.ClientID < 0 {
		return nil, domainErrors.Validation("client_id", "must not be negative")
	}
	return u.orders.List(ctx, filter)
}

// History returns status changes of the order, oldest first.
func (u *OrderUseCase) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	return u.orders.History(ctx, orderID)
}

// requestedStatus names the status a rejected direction was aiming for along
// the linear Pendiente → En Ruta → Entregado path.
func requestedStatus(current model.OrderStatus, dir model.Direction) string {
	if dir == model.DirectionCancel {
		return string(model.OrderStatusCancelled)
	}
	path := []model.OrderStatus{model.OrderStatusPending, model.OrderStatusEnRoute, model.OrderStatusDelivered}
	for i, s := range path {
		if s != current {
			continue
		}
		switch {
		case dir == model.DirectionAdvance && i+1 < len(path):
			return string(path[i+1])
		case dir == model.DirectionRevert && i > 0:
			return string(path[i-1])
		}
	}
	return string(dir)
}
