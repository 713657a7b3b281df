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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileColumns are the only columns Update writes; credentials and role
// have their own paths.
var profileColumns = []string{"full_name", "phone", "updated_at"}

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) scoped(ctx context.Context, specs ...specification.Specification) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.User{})
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	row := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(row)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}
	res := r.db.WithContext(ctx).
		Model(&model.User{Id: user.Id}).
		Select(profileColumns).
		Updates(r.mapper.ToModel(user))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the row; subscriptions and their requests cascade.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var row model.User
	if err := r.scoped(ctx, specs...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&row), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var rows []*model.User
	if err := r.scoped(ctx, specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	if err := r.scoped(ctx, specs...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"role": string(role), "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
