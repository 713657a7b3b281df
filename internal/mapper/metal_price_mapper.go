package mapper

import (
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/pkg/metal"
)

type MetalPriceMapper struct{}

func NewMetalPriceMapper() *MetalPriceMapper {
	return &MetalPriceMapper{}
}

func (m *MetalPriceMapper) ToEntity(p *model.MetalPrice) *entity.MetalPrice {
	if p == nil {
		return nil
	}
	return &entity.MetalPrice{
		MetalSymbol: metal.Metal(p.MetalSymbol),
		Price:       p.Price,
		Currency:    p.Currency,
		LastUpdated: p.LastUpdated,
	}
}

func (m *MetalPriceMapper) ToModel(p *entity.MetalPrice) *model.MetalPrice {
	if p == nil {
		return nil
	}
	return &model.MetalPrice{
		MetalSymbol: string(p.MetalSymbol),
		Price:       p.Price,
		Currency:    p.Currency,
		LastUpdated: p.LastUpdated,
	}
}
