package implementation

import (
	"context"
	"errors"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/mapper"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/internal/repository/contract"
	"pharaohvault-be/internal/repository/specification"

	"gorm.io/gorm"
)

type withdrawalRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewWithdrawalRequestRepository(db *gorm.DB) contract.WithdrawalRequestRepository {
	return &withdrawalRequestRepositoryImpl{db: db, mapper: mapper.NewRequestMapper()}
}

func (r *withdrawalRequestRepositoryImpl) Create(ctx context.Context, request *entity.WithdrawalRequest) error {
	m := r.mapper.WithdrawalToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.WithdrawalToEntity(m)
	return nil
}

func (r *withdrawalRequestRepositoryImpl) Update(ctx context.Context, request *entity.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Model(&model.WithdrawalRequest{}).
		Where("id = ?", request.Id).
		Updates(map[string]interface{}{
			"status":           string(request.Status),
			"resolution_notes": request.ResolutionNotes,
			"processed_at":     request.ProcessedAt,
		}).Error
}

func (r *withdrawalRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WithdrawalRequest, error) {
	var m model.WithdrawalRequest
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

	return r.mapper.WithdrawalToEntity(&m), nil
}

func (r *withdrawalRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WithdrawalRequest, error) {
	var models []*model.WithdrawalRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	requests := make([]*entity.WithdrawalRequest, 0, len(models))
	for _, m := range models {
		requests = append(requests, r.mapper.WithdrawalToEntity(m))
	}
	return requests, nil
}
