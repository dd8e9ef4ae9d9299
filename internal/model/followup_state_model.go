package model

import (
	"time"

	"github.com/google/uuid"
)

type FollowUpState struct {
	UserId               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status               string     `gorm:"type:varchar(32);not null;default:'not_scheduled'"`
	ConversationRef      string     `gorm:"type:varchar(255)"`
	ScheduledFor         *time.Time `gorm:"index"`
	LastSummaryCreatedAt *time.Time
	LastUserMessageAt    *time.Time
	LastBotMessageAt     *time.Time
	CaseLabel            *string   `gorm:"type:varchar(255)"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (FollowUpState) TableName() string {
	return "followup_states"
}
