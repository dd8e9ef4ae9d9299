package mapper

import (
	"time"

	"carenote-be/internal/entity"
	"carenote-be/internal/model"
)

type PatientMapper struct{}

func NewPatientMapper() *PatientMapper {
	return &PatientMapper{}
}

func (m *PatientMapper) ToEntity(p *model.Patient) *entity.Patient {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Patient{
		Id:              p.Id,
		FullName:        p.FullName,
		Language:        p.Language,
		ConversationRef: p.ConversationRef,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *PatientMapper) ToModel(p *entity.Patient) *model.Patient {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Patient{
		Id:              p.Id,
		FullName:        p.FullName,
		Language:        p.Language,
		ConversationRef: p.ConversationRef,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}
