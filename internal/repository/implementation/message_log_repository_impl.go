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

type MessageLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageLogMapper
}

func NewMessageLogRepository(db *gorm.DB) contract.MessageLogRepository {
	return &MessageLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageLogMapper(),
	}
}

func (r *MessageLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageLogRepositoryImpl) Create(ctx context.Context, log *entity.MessageLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageLog, error) {
	var models []*model.MessageLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
