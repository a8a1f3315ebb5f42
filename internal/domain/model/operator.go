package model

import "time"

// Operator is a dashboard user allowed to build orders and issue invoices.
type Operator struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
