package model

import (
	"time"

	"github.com/google/uuid"
)

type CareSummary struct {
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content   string    `gorm:"type:text;not null;default:''"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CareSummary) TableName() string {
	return "care_summaries"
}
