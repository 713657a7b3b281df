package contract

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
)

type WithdrawalRequestRepository interface {
	Create(ctx context.Context, request *entity.WithdrawalRequest) error
	Update(ctx context.Context, request *entity.WithdrawalRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WithdrawalRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WithdrawalRequest, error)
}
