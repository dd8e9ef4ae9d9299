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

type FollowUpStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FollowUpStateMapper
}

func NewFollowUpStateRepository(db *gorm.DB) contract.FollowUpStateRepository {
	return &FollowUpStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewFollowUpStateMapper(),
	}
}

func (r *FollowUpStateRepositoryImpl) Upsert(ctx context.Context, state *entity.FollowUpState) error {
	m := r.mapper.ToModel(state)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "conversation_ref", "scheduled_for",
			"last_summary_created_at", "last_user_message_at", "last_bot_message_at",
			"case_label", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*state = *r.mapper.ToEntity(m)
	return nil
}

func (r *FollowUpStateRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.FollowUpState, error) {
	var m model.FollowUpState
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
