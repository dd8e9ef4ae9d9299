package implementation

import (
	"context"
	"errors"

	"carenote-be/internal/entity"
	"carenote-be/internal/mapper"
	"carenote-be/internal/model"
	"carenote-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CareSummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareSummaryMapper
}

func NewCareSummaryRepository(db *gorm.DB) contract.CareSummaryRepository {
	return &CareSummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewCareSummaryMapper(),
	}
}

func (r *CareSummaryRepositoryImpl) Upsert(ctx context.Context, summary *entity.CareSummary) error {
	m := r.mapper.ToModel(summary)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *CareSummaryRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.CareSummary, error) {
	var m model.CareSummary
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
