package implementation

import (
	"context"
	"errors"
	"time"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/mapper"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/internal/repository/contract"
	"pharaohvault-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillingCustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewBillingCustomerRepository(db *gorm.DB) contract.BillingCustomerRepository {
	return &BillingCustomerRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *BillingCustomerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BillingCustomer, error) {
	var m model.BillingCustomer
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BillingCustomerRepositoryImpl) Upsert(ctx context.Context, customer *entity.BillingCustomer) error {
	m := r.mapper.ToModel(customer)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"customer_id": m.CustomerId,
			"updated_at":  time.Now(),
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}
