package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrOrderNotDelivered = errors.New("order not delivered")
	ErrDuplicateInvoice  = errors.New("duplicate invoice")
	ErrPersistence       = errors.New("persistence failure")
)

// ValidationError reports malformed or incomplete input.
type ValidationError struct {
	Field  string
	Reason string
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidTransitionError reports a rejected order status change. Stale is set
// when the order changed concurrently between read and write.
type InvalidTransitionError struct {
	OrderID   int64
	Current   string
	Requested string
	Stale     bool
}

func (e *InvalidTransitionError) Error() string {
	if e.Stale {
		return fmt.Sprintf("order %d: status changed concurrently, expected %q before moving to %q", e.OrderID, e.Current, e.Requested)
	}
	return fmt.Sprintf("order %d: cannot move from %q to %q", e.OrderID, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// OrderNotDeliveredError is returned when invoicing an order that is not delivered.
type OrderNotDeliveredError struct {
	OrderID int64
	Status  string
}

func (e *OrderNotDeliveredError) Error() string {
	return fmt.Sprintf("order %d is %q, only delivered orders can be invoiced", e.OrderID, e.Status)
}

func (e *OrderNotDeliveredError) Is(target error) bool { return target == ErrOrderNotDelivered }

// DuplicateInvoiceError is returned when the order already has an active invoice.
type DuplicateInvoiceError struct {
	OrderID   int64
	InvoiceID int64
	Folio     string
}

func (e *DuplicateInvoiceError) Error() string {
	if e.Folio == "" {
		return fmt.Sprintf("order %d already has an active invoice", e.OrderID)
	}
	return fmt.Sprintf("order %d already has active invoice %s", e.OrderID, e.Folio)
}

func (e *DuplicateInvoiceError) Is(target error) bool { return target == ErrDuplicateInvoice }

// PersistenceError wraps store failures unrelated to business rules.
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence wraps err unless it is nil or already carries a domain meaning.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomain(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func isDomain(err error) bool {
	for _, sentinel := range []error{
		ErrAlreadyExists, ErrNotFound, ErrConflict, ErrInvalidCredentials,
		ErrValidation, ErrInvalidTransition, ErrOrderNotDelivered, ErrDuplicateInvoice, ErrPersistence,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
