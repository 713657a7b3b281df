package implementation

import (
	"context"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/mapper"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/internal/repository/contract"
	"pharaohvault-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetalPriceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MetalPriceMapper
}

func NewMetalPriceRepository(db *gorm.DB) contract.MetalPriceRepository {
	return &MetalPriceRepositoryImpl{
		db:     db,
		mapper: mapper.NewMetalPriceMapper(),
	}
}

func (r *MetalPriceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MetalPrice, error) {
	var models []*model.MetalPrice
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	prices := make([]*entity.MetalPrice, len(models))
	for i, m := range models {
		prices[i] = r.mapper.ToEntity(m)
	}
	return prices, nil
}

func (r *MetalPriceRepositoryImpl) UpsertAll(ctx context.Context, prices []*entity.MetalPrice) error {
	if len(prices) == 0 {
		return nil
	}
	models := make([]*model.MetalPrice, len(prices))
	for i, p := range prices {
		models[i] = r.mapper.ToModel(p)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "metal_symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "currency", "last_updated"}),
	}).Create(&models).Error
}
