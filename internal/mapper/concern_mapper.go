package mapper

import (
	"time"

	"carenote-be/internal/entity"
	"carenote-be/internal/model"
)

type ConcernMapper struct{}

func NewConcernMapper() *ConcernMapper {
	return &ConcernMapper{}
}

func (m *ConcernMapper) ToEntity(c *model.Concern) *entity.Concern {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Concern{
		Id:             c.Id,
		UserId:         c.UserId,
		Title:          c.Title,
		Status:         entity.ConcernStatus(c.Status),
		SummaryContent: c.SummaryContent,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ConcernMapper) ToModel(c *entity.Concern) *model.Concern {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Concern{
		Id:             c.Id,
		UserId:         c.UserId,
		Title:          c.Title,
		Status:         string(c.Status),
		SummaryContent: c.SummaryContent,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ConcernMapper) ToEntities(concerns []*model.Concern) []*entity.Concern {
	entities := make([]*entity.Concern, len(concerns))
	for i, c := range concerns {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
