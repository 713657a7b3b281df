package unitofwork

import (
	"context"

	"pharaohvault-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	BillingCustomerRepository() contract.BillingCustomerRepository
	CancellationRequestRepository() contract.CancellationRequestRepository
	WithdrawalRequestRepository() contract.WithdrawalRequestRepository
	OrderRepository() contract.OrderRepository
	MetalPriceRepository() contract.MetalPriceRepository
}
