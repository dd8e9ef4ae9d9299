package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Direction string         `gorm:"type:varchar(16);not null"`
	Body      string         `gorm:"type:text"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (MessageLog) TableName() string {
	return "message_logs"
}
