package mapper

import (
	"carenote-be/internal/entity"
	"carenote-be/internal/model"
)

type ConcernSnapshotMapper struct{}

func NewConcernSnapshotMapper() *ConcernSnapshotMapper {
	return &ConcernSnapshotMapper{}
}

func (m *ConcernSnapshotMapper) ToEntity(s *model.ConcernSnapshot) *entity.ConcernSnapshot {
	if s == nil {
		return nil
	}
	return &entity.ConcernSnapshot{
		Id:        s.Id,
		ConcernId: s.ConcernId,
		Content:   s.Content,
		Reason:    entity.SnapshotReason(s.Reason),
		CreatedAt: s.CreatedAt,
	}
}

func (m *ConcernSnapshotMapper) ToModel(s *entity.ConcernSnapshot) *model.ConcernSnapshot {
	if s == nil {
		return nil
	}
	return &model.ConcernSnapshot{
		Id:        s.Id,
		ConcernId: s.ConcernId,
		Content:   s.Content,
		Reason:    string(s.Reason),
		CreatedAt: s.CreatedAt,
	}
}

func (m *ConcernSnapshotMapper) ToEntities(snapshots []*model.ConcernSnapshot) []*entity.ConcernSnapshot {
	entities := make([]*entity.ConcernSnapshot, len(snapshots))
	for i, s := range snapshots {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
