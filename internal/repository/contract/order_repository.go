package contract

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
)

// OrderRepository is read-only; orders are written by the billing webhooks.
type OrderRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
}
