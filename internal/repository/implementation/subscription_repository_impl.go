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
	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Omit("User").Create(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Omit("User").Save(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Subscription{}, "id = ?", id).Error
}

func (r *SubscriptionRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.Subscription{})
	return res.RowsAffected, res.Error
}

func (r *SubscriptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var m model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var models []*model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SubscriptionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Subscription{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) UpdateCheckout(ctx context.Context, id uuid.UUID, marker entity.CheckoutMarker) error {
	return r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"checkout_session_id":    marker.SessionId,
			"checkout_client_secret": marker.ClientSecret,
			"checkout_redirect_url":  marker.RedirectURL,
			"checkout_state":         string(marker.State),
		}).Error
}

func (r *SubscriptionRepositoryImpl) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to lifecycle.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SubscriptionRepositoryImpl) SumInvestments(ctx context.Context, specs ...specification.Specification) (*contract.InvestmentTotals, error) {
	var totals contract.InvestmentTotals
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Subscription{}), specs...)
	err := query.
		Select("COALESCE(SUM(accumulated_value), 0) AS total_invested, COALESCE(SUM(monthly_investment * quantity), 0) AS monthly_invested").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
