package mapper

import (
	"encoding/json"

	"carenote-be/internal/entity"
	"carenote-be/internal/model"

	"gorm.io/datatypes"
)

type MessageLogMapper struct{}

func NewMessageLogMapper() *MessageLogMapper {
	return &MessageLogMapper{}
}

func (m *MessageLogMapper) ToEntity(l *model.MessageLog) *entity.MessageLog {
	if l == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(l.Payload) > 0 {
		// Best effort: a malformed payload column never blocks reads.
		_ = json.Unmarshal(l.Payload, &payload)
	}

	return &entity.MessageLog{
		Id:        l.Id,
		UserId:    l.UserId,
		Direction: entity.MessageDirection(l.Direction),
		Body:      l.Body,
		Payload:   payload,
		CreatedAt: l.CreatedAt,
	}
}

func (m *MessageLogMapper) ToModel(l *entity.MessageLog) *model.MessageLog {
	if l == nil {
		return nil
	}

	var payload datatypes.JSON
	if l.Payload != nil {
		if raw, err := json.Marshal(l.Payload); err == nil {
			payload = raw
		}
	}

	return &model.MessageLog{
		Id:        l.Id,
		UserId:    l.UserId,
		Direction: string(l.Direction),
		Body:      l.Body,
		Payload:   payload,
		CreatedAt: l.CreatedAt,
	}
}

func (m *MessageLogMapper) ToEntities(logs []*model.MessageLog) []*entity.MessageLog {
	entities := make([]*entity.MessageLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
