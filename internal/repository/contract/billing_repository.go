package contract

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
)

type BillingCustomerRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BillingCustomer, error)
	// Upsert inserts or replaces the customer id for (user, provider).
	Upsert(ctx context.Context, customer *entity.BillingCustomer) error
}
