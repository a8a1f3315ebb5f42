package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
)

var invoiceCols = []string{"id", "folio", "series", "order_id", "client_id", "issued_at", "subtotal", "tax", "total", "payment_method", "status", "uuid_sat", "cancelled_at"}

func newInvoice() model.Invoice {
	total := decimal.RequireFromString("450.00")
	split := model.SplitTax(total)
	return model.Invoice{
		Series:        "A",
		OrderID:       10,
		ClientID:      3,
		Subtotal:      split.Subtotal,
		Tax:           split.Tax,
		Total:         total,
		PaymentMethod: "Efectivo",
		Status:        model.InvoiceStatusActive,
		UUIDSAT:       "2f1c8f8e-7a4e-4c4b-9c55-3c7d2a1b0e11",
	}
}

func expectOrderStatus(mock pgxmockv3.PgxPoolIface, orderID int64, status model.OrderStatus) {
	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(folioLockKey).WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT status FROM orders WHERE id=.* FOR UPDATE").WithArgs(orderID).
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(status))
}

func expectFolioAllocation(mock pgxmockv3.PgxPoolIface, orderID, last int64) {
	expectOrderStatus(mock, orderID, model.OrderStatusDelivered)
	mock.ExpectQuery("SELECT id, folio FROM invoices WHERE order_id=").WithArgs(orderID, model.InvoiceStatusCancelled).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(pgxmockv3.NewRows([]string{"max"}).AddRow(last))
}

func TestInvoiceRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &invoiceRepository{storage: storage}
	now := time.Now()

	expectFolioAllocation(mock, 10, 41)
	mock.ExpectQuery("INSERT INTO invoices").
		WithArgs("FAC-000042", int64(42), "A", int64(10), int64(3), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
			"Efectivo", model.InvoiceStatusActive, "2f1c8f8e-7a4e-4c4b-9c55-3c7d2a1b0e11").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "issued_at"}).AddRow(int64(5), now))
	mock.ExpectCommit()

	invoice, err := repo.Create(context.Background(), newInvoice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.ID != 5 || invoice.Folio != "FAC-000042" || !invoice.IssuedAt.Equal(now) {
		t.Fatalf("unexpected invoice %+v", invoice)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestInvoiceRepositoryCreateFirstFolio(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &invoiceRepository{storage: storage}

	expectFolioAllocation(mock, 10, 0)
	mock.ExpectQuery("INSERT INTO invoices").WithArgs(append([]any{"FAC-000001", int64(1)}, anyArgs(9)...)...).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "issued_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectCommit()

	invoice, err := repo.Create(context.Background(), newInvoice())
	if err != nil || invoice.Folio != "FAC-000001" {
		t.Fatalf("unexpected invoice %+v err=%v", invoice, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestInvoiceRepositoryCreateDuplicate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &invoiceRepository{storage: storage}

	t.Run("active invoice found under lock", func(t *testing.T) {
		expectOrderStatus(mock, 10, model.OrderStatusDelivered)
		mock.ExpectQuery("SELECT id, folio FROM invoices WHERE order_id=").WithArgs(int64(10), model.InvoiceStatusCancelled).
			WillReturnRows(pgxmockv3.NewRows([]string{"id", "folio"}).AddRow(int64(4), "FAC-000007"))
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), newInvoice())
		var dup *domainErrors.DuplicateInvoiceError
		if !errors.As(err, &dup) || dup.Folio != "FAC-000007" || dup.InvoiceID != 4 {
			t.Fatalf("expected duplicate invoice error, got %v", err)
		}
	})

	t.Run("unique index backstop", func(t *testing.T) {
		expectFolioAllocation(mock, 10, 7)
		mock.ExpectQuery("INSERT INTO invoices").WithArgs(anyArgs(11)...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "invoices_active_order_idx"})
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), newInvoice()); !errors.Is(err, domainErrors.ErrDuplicateInvoice) {
			t.Fatalf("expected duplicate invoice, got %v", err)
		}
	})

	t.Run("lock failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(folioLockKey).WillReturnError(errors.New("timeout"))
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), newInvoice()); !errors.Is(err, domainErrors.ErrPersistence) {
			t.Fatalf("expected persistence error, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestInvoiceRepositoryCreateChecksOrderUnderLock(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &invoiceRepository{storage: storage}

	t.Run("order reverted before the insert", func(t *testing.T) {
		expectOrderStatus(mock, 10, model.OrderStatusEnRoute)
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), newInvoice())
		var notDelivered *domainErrors.OrderNotDeliveredError
		if !errors.As(err, &notDelivered) || notDelivered.Status != string(model.OrderStatusEnRoute) {
			t.Fatalf("expected order not delivered, got %v", err)
		}
	})

	t.Run("folio sequence exhausted", func(t *testing.T) {
		expectFolioAllocation(mock, 10, model.MaxFolioSeq)
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), newInvoice())
		if !errors.Is(err, model.ErrFolioExhausted) || !errors.Is(err, domainErrors.ErrPersistence) {
			t.Fatalf("expected exhausted folio sequence, got %v", err)
		}
	})

	t.Run("order missing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(folioLockKey).WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
		mock.ExpectQuery("SELECT status FROM orders WHERE id=.* FOR UPDATE").WithArgs(int64(10)).WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), newInvoice()); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestInvoiceRepositoryQueries(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &invoiceRepository{storage: storage}
	now := time.Now()
	inv := newInvoice()

	row := func(id int64, folio string, status model.InvoiceStatus, cancelledAt *time.Time) []any {
		return []any{id, folio, "A", inv.OrderID, inv.ClientID, now, inv.Subtotal, inv.Tax, inv.Total, "Efectivo", status, inv.UUIDSAT, cancelledAt}
	}

	mock.ExpectQuery("FROM invoices WHERE id=").WithArgs(int64(5)).WillReturnRows(
		pgxmockv3.NewRows(invoiceCols).AddRow(row(5, "FAC-000042", model.InvoiceStatusActive, nil)...))
	got, err := repo.Get(context.Background(), 5)
	if err != nil || got.Folio != "FAC-000042" || got.CancelledAt != nil {
		t.Fatalf("unexpected invoice %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM invoices WHERE id=").WithArgs(int64(6)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), 6); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM invoices WHERE order_id=").WithArgs(int64(10)).WillReturnRows(
		pgxmockv3.NewRows(invoiceCols).AddRow(row(5, "FAC-000042", model.InvoiceStatusActive, nil)...))
	if got, err := repo.FindByOrder(context.Background(), 10); err != nil || got.ID != 5 {
		t.Fatalf("unexpected invoice %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM invoices WHERE order_id=").WithArgs(int64(11)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.FindByOrder(context.Background(), 11); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM invoices ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(invoiceCols).
			AddRow(row(6, "FAC-000043", model.InvoiceStatusActive, nil)...).
			AddRow(row(5, "FAC-000042", model.InvoiceStatusCancelled, &now)...))
	list, err := repo.List(context.Background())
	if err != nil || len(list) != 2 || list[1].CancelledAt == nil {
		t.Fatalf("unexpected list %+v err=%v", list, err)
	}

	mock.ExpectQuery("SELECT folio FROM invoices ORDER BY folio_seq DESC").WillReturnRows(pgxmockv3.NewRows([]string{"folio"}).AddRow("FAC-000043"))
	if folio, err := repo.LastFolio(context.Background()); err != nil || folio != "FAC-000043" {
		t.Fatalf("unexpected folio %q err=%v", folio, err)
	}

	mock.ExpectQuery("SELECT folio FROM invoices ORDER BY folio_seq DESC").WillReturnError(pgx.ErrNoRows)
	if folio, err := repo.LastFolio(context.Background()); err != nil || folio != "" {
		t.Fatalf("expected empty folio, got %q err=%v", folio, err)
	}

	mock.ExpectQuery("SELECT folio FROM invoices ORDER BY folio_seq DESC").WillReturnError(errors.New("down"))
	if _, err := repo.LastFolio(context.Background()); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestInvoiceRepositoryCancel(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &invoiceRepository{storage: storage}
	now := time.Now()
	inv := newInvoice()

	mock.ExpectQuery("UPDATE invoices SET status=").WithArgs(model.InvoiceStatusCancelled, int64(5)).WillReturnRows(
		pgxmockv3.NewRows(invoiceCols).AddRow(int64(5), "FAC-000042", "A", inv.OrderID, inv.ClientID, now, inv.Subtotal, inv.Tax, inv.Total, "Efectivo", model.InvoiceStatusCancelled, inv.UUIDSAT, &now))
	got, err := repo.Cancel(context.Background(), 5)
	if err != nil || got.Status != model.InvoiceStatusCancelled || got.CancelledAt == nil {
		t.Fatalf("unexpected invoice %+v err=%v", got, err)
	}

	mock.ExpectQuery("UPDATE invoices SET status=").WithArgs(model.InvoiceStatusCancelled, int64(6)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Cancel(context.Background(), 6); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
