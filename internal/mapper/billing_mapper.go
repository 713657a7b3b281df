package mapper

import (
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/model"
)

type BillingMapper struct{}

func NewBillingMapper() *BillingMapper {
	return &BillingMapper{}
}

func (m *BillingMapper) ToEntity(c *model.BillingCustomer) *entity.BillingCustomer {
	if c == nil {
		return nil
	}
	return &entity.BillingCustomer{
		Id:         c.Id,
		UserId:     c.UserId,
		Provider:   c.Provider,
		CustomerId: c.CustomerId,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *BillingMapper) ToModel(c *entity.BillingCustomer) *model.BillingCustomer {
	if c == nil {
		return nil
	}
	return &model.BillingCustomer{
		Id:         c.Id,
		UserId:     c.UserId,
		Provider:   c.Provider,
		CustomerId: c.CustomerId,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
