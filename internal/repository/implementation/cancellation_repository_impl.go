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

type cancellationRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewCancellationRequestRepository(db *gorm.DB) contract.CancellationRequestRepository {
	return &cancellationRequestRepositoryImpl{db: db, mapper: mapper.NewRequestMapper()}
}

func (r *cancellationRequestRepositoryImpl) Create(ctx context.Context, request *entity.CancellationRequest) error {
	m := r.mapper.CancellationToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.CancellationToEntity(m)
	return nil
}

// Update only touches the reviewable fields.
func (r *cancellationRequestRepositoryImpl) Update(ctx context.Context, request *entity.CancellationRequest) error {
	return r.db.WithContext(ctx).Model(&model.CancellationRequest{}).
		Where("id = ?", request.Id).
		Updates(map[string]interface{}{
			"status":           string(request.Status),
			"resolution_notes": request.ResolutionNotes,
			"processed_at":     request.ProcessedAt,
		}).Error
}

func (r *cancellationRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationRequest, error) {
	var m model.CancellationRequest
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

	return r.mapper.CancellationToEntity(&m), nil
}

func (r *cancellationRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationRequest, error) {
	var models []*model.CancellationRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	requests := make([]*entity.CancellationRequest, 0, len(models))
	for _, m := range models {
		requests = append(requests, r.mapper.CancellationToEntity(m))
	}
	return requests, nil
}
