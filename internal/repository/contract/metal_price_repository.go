package contract

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
)

type MetalPriceRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MetalPrice, error)
	// UpsertAll writes one row per metal symbol.
	UpsertAll(ctx context.Context, prices []*entity.MetalPrice) error
}
