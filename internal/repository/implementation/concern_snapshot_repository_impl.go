package implementation

import (
	"context"

	"carenote-be/internal/entity"
	"carenote-be/internal/mapper"
	"carenote-be/internal/model"
	"carenote-be/internal/repository/contract"
	"carenote-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ConcernSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConcernSnapshotMapper
}

func NewConcernSnapshotRepository(db *gorm.DB) contract.ConcernSnapshotRepository {
	return &ConcernSnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewConcernSnapshotMapper(),
	}
}

func (r *ConcernSnapshotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConcernSnapshotRepositoryImpl) Create(ctx context.Context, snapshot *entity.ConcernSnapshot) error {
	m := r.mapper.ToModel(snapshot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snapshot = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConcernSnapshotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConcernSnapshot, error) {
	var models []*model.ConcernSnapshot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConcernSnapshotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConcernSnapshot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
