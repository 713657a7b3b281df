package contract

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
)

type CancellationRequestRepository interface {
	Create(ctx context.Context, request *entity.CancellationRequest) error
	Update(ctx context.Context, request *entity.CancellationRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error)
}
