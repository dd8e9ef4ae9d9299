package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName        string    `gorm:"type:varchar(255);not null"`
	Language        string    `gorm:"type:varchar(8);not null;default:'en'"`
	ConversationRef string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Patient) TableName() string {
	return "patients"
}
