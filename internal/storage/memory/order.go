package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

type orderRepository struct{ s *Store }

// cloneOrder detaches the lines slice from the stored record.
func cloneOrder(o model.Order) model.Order {
	o.Lines = slices.Clone(o.Lines)
	return o
}

func (r orderRepository) Create(_ context.Context, order model.Order) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	client, ok := r.s.clients[order.ClientID]
	if !ok {
		return nil, domainErrors.Persistence("orders.create", fmt.Errorf("client %d does not exist", order.ClientID))
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	order.ID = r.s.assignID("orders", 0)
	order.ClientName = client.Name
	order.CreatedAt = r.s.now()
	order.UpdatedAt = order.CreatedAt
	order = cloneOrder(order)
	r.s.orders[order.ID] = order
	r.s.history[order.ID] = []model.StatusChange{{
		ID:         r.s.assignID("history", 0),
		OrderID:    order.ID,
		To:         order.Status,
		OperatorID: order.OperatorID,
		ChangedAt:  order.CreatedAt,
	}}

	out := cloneOrder(order)
	return &out, nil
}

func (r orderRepository) Get(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (r orderRepository) List(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []model.Order
	for _, o := range r.s.orders {
		if filter.Matches(o) {
			result = append(result, cloneOrder(o))
		}
	}
	slices.SortFunc(result, func(a, b model.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return result, nil
}

func (r orderRepository) UpdateStatus(_ context.Context, change model.StatusChange) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[change.OrderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != change.From {
		return nil, domainErrors.ErrConflict
	}

	now := r.s.now()
	o.Status = change.To
	o.UpdatedAt = now
	r.s.orders[o.ID] = o

	change.ID = r.s.assignID("history", 0)
	change.ChangedAt = now
	r.s.history[o.ID] = append(r.s.history[o.ID], change)

	out := cloneOrder(o)
	return &out, nil
}

func (r orderRepository) History(_ context.Context, orderID int64) ([]model.StatusChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entries, ok := r.s.history[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return slices.Clone(entries), nil
}
