package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderSelect = `SELECT o.id, o.client_id, c.name, o.operator_id, o.total, o.status, o.notes, o.created_at, o.updated_at
                     FROM orders o JOIN clients c ON c.id = o.client_id`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.ClientID, &o.ClientName, &o.OperatorID, &o.Total, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (client_id, operator_id, total, status, notes)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder, order.ClientID, order.OperatorID, order.Total, order.Status, order.Notes).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		const insertLine = `INSERT INTO order_lines (order_id, line_no, product_id, product_name, sku, quantity, unit_price, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		for i, line := range order.Lines {
			if _, err := tx.Exec(ctx, insertLine, order.ID, i+1, line.ProductID, line.ProductName, line.SKU, line.Quantity, line.UnitPrice, line.Subtotal); err != nil {
				return err
			}
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, from_status, to_status, operator_id, changed_at)
                               VALUES ($1, NULL, $2, $3, $4)`
		_, err := tx.Exec(ctx, insertHistory, order.ID, order.Status, order.OperatorID, order.CreatedAt)
		return err
	})
	if err != nil {
		return nil, domainErrors.Persistence("orders.create", err)
	}
	return &order, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := r.get(ctx, r.storage.pool, id)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, domainErrors.Persistence("orders.get", err)
	}
	return order, err
}

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *orderRepository) get(ctx context.Context, q querier, id int64) (*model.Order, error) {
	var order model.Order
	if err := scanOrder(q.QueryRow(ctx, orderSelect+` WHERE o.id=$1`, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	orders := []model.Order{order}
	if err := attachLines(ctx, q, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("o.status=$%d", len(args)))
	}
	if filter.ClientID != 0 {
		args = append(args, filter.ClientID)
		conds = append(conds, fmt.Sprintf("o.client_id=$%d", len(args)))
	}

	query := orderSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domainErrors.Persistence("orders.list", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, domainErrors.Persistence("orders.list", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Persistence("orders.list", err)
	}
	rows.Close()

	if err := attachLines(ctx, r.storage.pool, result); err != nil {
		return nil, domainErrors.Persistence("orders.list", err)
	}
	return result, nil
}

// attachLines loads the lines of every order in one round trip.
func attachLines(ctx context.Context, q querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const query = `SELECT order_id, product_id, product_name, sku, quantity, unit_price, subtotal
                   FROM order_lines WHERE order_id = ANY($1) ORDER BY order_id, line_no`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			line    model.OrderLine
		)
		if err := rows.Scan(&orderID, &line.ProductID, &line.ProductName, &line.SKU, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	return rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3 RETURNING updated_at`
		var changedAt time.Time
		err := tx.QueryRow(ctx, update, change.To, change.OrderID, change.From).Scan(&changedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, change.OrderID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domainErrors.ErrNotFound
			}
			return domainErrors.ErrConflict
		}
		if err != nil {
			return err
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, from_status, to_status, operator_id, changed_at)
                               VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, insertHistory, change.OrderID, change.From, change.To, change.OperatorID, changedAt); err != nil {
			return err
		}

		// Read back before commit so a successful transition is never reported as failed.
		updated, err = r.get(ctx, tx, change.OrderID)
		return err
	})
	if err != nil {
		return nil, domainErrors.Persistence("orders.update_status", err)
	}
	return updated, nil
}

func (r *orderRepository) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	const query = `SELECT id, order_id, COALESCE(from_status, ''), to_status, operator_id, changed_at
                   FROM order_status_history WHERE order_id=$1 ORDER BY changed_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, domainErrors.Persistence("orders.history", err)
	}
	defer rows.Close()

	var result []model.StatusChange
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.From, &c.To, &c.OperatorID, &c.ChangedAt); err != nil {
			return nil, domainErrors.Persistence("orders.history", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Persistence("orders.history", err)
	}
	// Every order has its creation entry, so no rows means no order.
	if len(result) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return result, nil
}
