package model

import (
	"time"

	"github.com/google/uuid"
)

type Concern struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Status         string    `gorm:"type:varchar(32);not null;index"`
	SummaryContent *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Concern) TableName() string {
	return "concerns"
}
