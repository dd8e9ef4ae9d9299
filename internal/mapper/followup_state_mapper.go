package mapper

import (
	"time"

	"carenote-be/internal/entity"
	"carenote-be/internal/model"
)

type FollowUpStateMapper struct{}

func NewFollowUpStateMapper() *FollowUpStateMapper {
	return &FollowUpStateMapper{}
}

func (m *FollowUpStateMapper) ToEntity(s *model.FollowUpState) *entity.FollowUpState {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.FollowUpState{
		UserId:               s.UserId,
		Status:               entity.FollowUpStatus(s.Status),
		ConversationRef:      s.ConversationRef,
		ScheduledFor:         s.ScheduledFor,
		LastSummaryCreatedAt: s.LastSummaryCreatedAt,
		LastUserMessageAt:    s.LastUserMessageAt,
		LastBotMessageAt:     s.LastBotMessageAt,
		CaseLabel:            s.CaseLabel,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}

func (m *FollowUpStateMapper) ToModel(s *entity.FollowUpState) *model.FollowUpState {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.FollowUpState{
		UserId:               s.UserId,
		Status:               string(s.Status),
		ConversationRef:      s.ConversationRef,
		ScheduledFor:         s.ScheduledFor,
		LastSummaryCreatedAt: s.LastSummaryCreatedAt,
		LastUserMessageAt:    s.LastUserMessageAt,
		LastBotMessageAt:     s.LastBotMessageAt,
		CaseLabel:            s.CaseLabel,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}
