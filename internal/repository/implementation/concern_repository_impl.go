package implementation

import (
	"context"
	"errors"

	"carenote-be/internal/entity"
	"carenote-be/internal/mapper"
	"carenote-be/internal/model"
	"carenote-be/internal/repository/contract"
	"carenote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConcernRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConcernMapper
}

func NewConcernRepository(db *gorm.DB) contract.ConcernRepository {
	return &ConcernRepositoryImpl{
		db:     db,
		mapper: mapper.NewConcernMapper(),
	}
}

func (r *ConcernRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConcernRepositoryImpl) Create(ctx context.Context, concern *entity.Concern) error {
	m := r.mapper.ToModel(concern)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*concern = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConcernRepositoryImpl) Update(ctx context.Context, concern *entity.Concern) error {
	m := r.mapper.ToModel(concern)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*concern = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConcernRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Concern{}, id).Error
}

func (r *ConcernRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Concern, error) {
	var m model.Concern
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConcernRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Concern, error) {
	var models []*model.Concern
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConcernRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Concern{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
