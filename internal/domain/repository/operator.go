package repository

import (
	"context"

	"github.com/polkiloo/routemanager/internal/domain/model"
)

// OperatorRepository describes persistence operations for dashboard operators.
type OperatorRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.Operator, error)
	GetByLogin(ctx context.Context, login string) (*model.Operator, error)
	GetByID(ctx context.Context, id int64) (*model.Operator, error)
}
