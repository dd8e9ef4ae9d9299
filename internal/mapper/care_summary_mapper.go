package mapper

import (
	"carenote-be/internal/entity"
	"carenote-be/internal/model"
)

type CareSummaryMapper struct{}

func NewCareSummaryMapper() *CareSummaryMapper {
	return &CareSummaryMapper{}
}

func (m *CareSummaryMapper) ToEntity(s *model.CareSummary) *entity.CareSummary {
	if s == nil {
		return nil
	}
	return &entity.CareSummary{
		UserId:    s.UserId,
		Content:   s.Content,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *CareSummaryMapper) ToModel(s *entity.CareSummary) *model.CareSummary {
	if s == nil {
		return nil
	}
	return &model.CareSummary{
		UserId:    s.UserId,
		Content:   s.Content,
		UpdatedAt: s.UpdatedAt,
	}
}
