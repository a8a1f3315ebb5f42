package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

// folioLockKey serialises folio allocation across processes.
const folioLockKey int64 = 0x464f4c494f

type invoiceRepository struct {
	storage *Storage
}

const invoiceColumns = `id, folio, series, order_id, client_id, issued_at, subtotal, tax, total, payment_method, status, uuid_sat, cancelled_at`

func scanInvoice(row pgx.Row, inv *model.Invoice) error {
	return row.Scan(&inv.ID, &inv.Folio, &inv.Series, &inv.OrderID, &inv.ClientID, &inv.IssuedAt,
		&inv.Subtotal, &inv.Tax, &inv.Total, &inv.PaymentMethod, &inv.Status, &inv.UUIDSAT, &inv.CancelledAt)
}

func (r *invoiceRepository) Create(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, folioLockKey); err != nil {
			return err
		}

		var status model.OrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, invoice.OrderID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		if status != model.OrderStatusDelivered {
			return &domainErrors.OrderNotDeliveredError{OrderID: invoice.OrderID, Status: string(status)}
		}

		var existing model.Invoice
		err = tx.QueryRow(ctx, `SELECT id, folio FROM invoices WHERE order_id=$1 AND status <> $2`, invoice.OrderID, model.InvoiceStatusCancelled).
			Scan(&existing.ID, &existing.Folio)
		if err == nil {
			return &domainErrors.DuplicateInvoiceError{OrderID: invoice.OrderID, InvoiceID: existing.ID, Folio: existing.Folio}
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		var last int64
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(folio_seq), 0) FROM invoices`).Scan(&last); err != nil {
			return err
		}
		folio, err := model.FolioFor(last + 1)
		if err != nil {
			return err
		}
		invoice.Folio = folio

		const insert = `INSERT INTO invoices (folio, folio_seq, series, order_id, client_id, subtotal, tax, total, payment_method, status, uuid_sat)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                        RETURNING id, issued_at`
		err = tx.QueryRow(ctx, insert, invoice.Folio, last+1, invoice.Series, invoice.OrderID, invoice.ClientID,
			invoice.Subtotal, invoice.Tax, invoice.Total, invoice.PaymentMethod, invoice.Status, invoice.UUIDSAT).
			Scan(&invoice.ID, &invoice.IssuedAt)
		if uniqueViolationOn(err, "invoices_active_order_idx") {
			return &domainErrors.DuplicateInvoiceError{OrderID: invoice.OrderID}
		}
		return err
	})
	if err != nil {
		return nil, domainErrors.Persistence("invoices.create", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id=$1`
	return r.getOne(ctx, "invoices.get", query, id)
}

func (r *invoiceRepository) FindByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id=$1 AND status <> 'Cancelada'`
	return r.getOne(ctx, "invoices.find_by_order", query, orderID)
}

func (r *invoiceRepository) getOne(ctx context.Context, op, query string, args ...any) (*model.Invoice, error) {
	var inv model.Invoice
	if err := scanInvoice(r.storage.pool.QueryRow(ctx, query, args...), &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Persistence(op, err)
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issued_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.Persistence("invoices.list", err)
	}
	defer rows.Close()

	var result []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, domainErrors.Persistence("invoices.list", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Persistence("invoices.list", err)
	}
	return result, nil
}

func (r *invoiceRepository) LastFolio(ctx context.Context) (string, error) {
	const query = `SELECT folio FROM invoices ORDER BY folio_seq DESC LIMIT 1`
	var folio string
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&folio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", domainErrors.Persistence("invoices.last_folio", err)
	}
	return folio, nil
}

func (r *invoiceRepository) Cancel(ctx context.Context, id int64) (*model.Invoice, error) {
	const query = `UPDATE invoices SET status=$1, cancelled_at=COALESCE(cancelled_at, NOW())
                   WHERE id=$2
                   RETURNING ` + invoiceColumns
	return r.getOne(ctx, "invoices.cancel", query, model.InvoiceStatusCancelled, id)
}
